package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Mayank06R/our-voice-rights/internal/mgnrega/metrics"
	"github.com/Mayank06R/our-voice-rights/internal/mgnrega/models"
	"github.com/Mayank06R/our-voice-rights/internal/mgnrega/pipeline"
	"github.com/Mayank06R/our-voice-rights/internal/mgnrega/store"
	dErrors "github.com/Mayank06R/our-voice-rights/pkg/domain-errors"
)

// Fetcher pulls raw records from the upstream open-data API.
type Fetcher interface {
	Fetch(ctx context.Context, limit int) ([]models.RawRecord, error)
}

// Ingester runs the fetch -> filter -> map -> upsert pipeline once per
// call. It keeps no internal schedule; any external trigger (cron,
// orchestrator, manual run) drives it, safely even concurrently since
// upserts are idempotent per natural key.
type Ingester struct {
	fetcher    Fetcher
	store      store.Store
	state      string
	fetchLimit int
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

// IngesterOption configures an Ingester.
type IngesterOption func(*Ingester)

// WithIngestLogger sets the structured logger.
func WithIngestLogger(logger *slog.Logger) IngesterOption {
	return func(i *Ingester) { i.logger = logger }
}

// WithIngestMetrics attaches Prometheus collectors.
func WithIngestMetrics(m *metrics.Metrics) IngesterOption {
	return func(i *Ingester) { i.metrics = m }
}

// WithIngestFetchLimit overrides the upstream row cap.
func WithIngestFetchLimit(limit int) IngesterOption {
	return func(i *Ingester) { i.fetchLimit = limit }
}

// NewIngester constructs an Ingester scoped to one target state.
func NewIngester(fetcher Fetcher, st store.Store, state string, opts ...IngesterOption) (*Ingester, error) {
	if fetcher == nil {
		return nil, fmt.Errorf("fetcher is required")
	}
	if st == nil {
		return nil, fmt.Errorf("store is required")
	}
	if state == "" {
		return nil, fmt.Errorf("target state is required")
	}

	ing := &Ingester{
		fetcher:    fetcher,
		store:      st,
		state:      state,
		fetchLimit: 1000,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(ing)
	}
	return ing, nil
}

// Run executes one ingestion pass. A failed fetch aborts the run; a
// failed per-record upsert is logged and counted, and the loop
// continues, so partial progress stays committed as valid per-key
// state. The run summary is persisted best-effort.
func (i *Ingester) Run(ctx context.Context) (*models.SyncResult, error) {
	res := &models.SyncResult{
		RunID:   uuid.NewString(),
		Started: time.Now(),
	}
	log := i.logger.With("run_id", res.RunID, "state", i.state)

	records, err := i.fetcher.Fetch(ctx, i.fetchLimit)
	if err != nil {
		log.Error("upstream fetch failed", "error", err.Error())
		return nil, dErrors.Wrap(err, dErrors.CodeUpstreamUnavailable, "ingestion fetch failed")
	}
	res.Fetched = len(records)
	i.metrics.AddFetched(len(records))

	matched := pipeline.FilterByState(records, i.state)
	res.Matched = len(matched)

	for _, raw := range matched {
		rec := pipeline.MapForStore(raw)
		if err := i.store.Upsert(ctx, rec); err != nil {
			res.Failed++
			i.metrics.IncUpsertFailure()
			log.Warn("record upsert failed",
				"district", rec.District,
				"fin_year", rec.FinYear,
				"month", rec.Month,
				"error", err.Error(),
			)
			continue
		}
		res.Upserted++
		i.metrics.IncUpserted()
	}

	res.Finished = time.Now()
	i.metrics.ObserveSync(res.Finished.Sub(res.Started))

	if err := i.store.RecordSyncRun(ctx, *res); err != nil {
		log.Warn("failed to record sync run summary", "error", err.Error())
	}

	log.Info("ingestion run complete",
		"fetched", res.Fetched,
		"matched", res.Matched,
		"upserted", res.Upserted,
		"failed", res.Failed,
		"duration_ms", res.Finished.Sub(res.Started).Milliseconds(),
	)
	return res, nil
}
