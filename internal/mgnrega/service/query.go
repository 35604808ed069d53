package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Mayank06R/our-voice-rights/internal/mgnrega/metrics"
	"github.com/Mayank06R/our-voice-rights/internal/mgnrega/models"
	"github.com/Mayank06R/our-voice-rights/internal/mgnrega/pipeline"
	"github.com/Mayank06R/our-voice-rights/internal/mgnrega/store"
	dErrors "github.com/Mayank06R/our-voice-rights/pkg/domain-errors"
)

// HistoryWindow bounds how many persisted months GetHistory returns.
const HistoryWindow = 12

// Query exposes the three read views: the region-unique district list
// and the live performance snapshot (both over the upstream source) and
// the bounded history series (over the store). The live and historical
// paths are independent pipelines over the same upstream and may
// disagree at any instant; Query makes no attempt to reconcile them.
type Query struct {
	fetcher    Fetcher
	store      store.Store
	cache      *DistrictCache
	fetchLimit int
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

// QueryOption configures a Query service.
type QueryOption func(*Query)

// WithQueryLogger sets the structured logger.
func WithQueryLogger(logger *slog.Logger) QueryOption {
	return func(q *Query) { q.logger = logger }
}

// WithQueryMetrics attaches Prometheus collectors.
func WithQueryMetrics(m *metrics.Metrics) QueryOption {
	return func(q *Query) { q.metrics = m }
}

// WithDistrictCache attaches the Redis-backed district-list cache.
func WithDistrictCache(cache *DistrictCache) QueryOption {
	return func(q *Query) { q.cache = cache }
}

// WithQueryFetchLimit overrides the upstream row cap.
func WithQueryFetchLimit(limit int) QueryOption {
	return func(q *Query) { q.fetchLimit = limit }
}

// NewQuery constructs the query service.
func NewQuery(fetcher Fetcher, st store.Store, opts ...QueryOption) (*Query, error) {
	if fetcher == nil {
		return nil, fmt.Errorf("fetcher is required")
	}
	if st == nil {
		return nil, fmt.Errorf("store is required")
	}

	q := &Query{
		fetcher:    fetcher,
		store:      st,
		fetchLimit: 1000,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q, nil
}

// ListDistricts returns the unique, alphabetically ordered districts of
// a state as seen in the latest upstream batch.
func (q *Query) ListDistricts(ctx context.Context, state string) ([]models.District, error) {
	if strings.TrimSpace(state) == "" {
		q.metrics.CountQuery("list_districts", "bad_request")
		return nil, dErrors.New(dErrors.CodeBadRequest, "'state' is required")
	}

	if cached, ok := q.cache.Get(ctx, state); ok {
		q.metrics.CountQuery("list_districts", "ok")
		return cached, nil
	}

	records, err := q.fetcher.Fetch(ctx, q.fetchLimit)
	if err != nil {
		q.metrics.CountQuery("list_districts", "error")
		q.logger.ErrorContext(ctx, "district list fetch failed", "state", state, "error", err.Error())
		return nil, dErrors.Wrap(err, dErrors.CodeUpstreamUnavailable, "failed to fetch district list")
	}
	if len(records) == 0 {
		q.metrics.CountQuery("list_districts", "not_found")
		return nil, dErrors.New(dErrors.CodeNotFound, "no district data found")
	}

	matched := pipeline.FilterByState(records, state)
	deduped := pipeline.DedupeByDistrict(matched)

	list := make([]models.District, 0, len(deduped))
	for _, raw := range deduped {
		st, _ := raw[models.FieldState].(string)
		district, _ := raw[models.FieldDistrict].(string)
		list = append(list, models.District{State: st, District: district})
	}
	pipeline.SortDistricts(list)

	q.cache.Set(ctx, state, list)
	q.metrics.CountQuery("list_districts", "ok")
	return list, nil
}

// GetPerformance returns the live snapshot for the first upstream
// record whose district name contains the requested district, compared
// case-insensitively. The loose substring match deliberately accepts
// partial names.
func (q *Query) GetPerformance(ctx context.Context, state, district string) (*models.Performance, error) {
	if strings.TrimSpace(state) == "" || strings.TrimSpace(district) == "" {
		q.metrics.CountQuery("performance", "bad_request")
		return nil, dErrors.New(dErrors.CodeBadRequest, "Both 'state' and 'district' are required")
	}

	records, err := q.fetcher.Fetch(ctx, q.fetchLimit)
	if err != nil {
		q.metrics.CountQuery("performance", "error")
		q.logger.ErrorContext(ctx, "performance fetch failed",
			"state", state, "district", district, "error", err.Error())
		return nil, dErrors.Wrap(err, dErrors.CodeUpstreamUnavailable, "failed to fetch performance data")
	}
	if len(records) == 0 {
		q.metrics.CountQuery("performance", "not_found")
		return nil, dErrors.New(dErrors.CodeNotFound, "no records found in dataset")
	}

	wantDistrict := strings.ToUpper(strings.TrimSpace(district))
	for _, raw := range pipeline.FilterByState(records, state) {
		name, _ := raw[models.FieldDistrict].(string)
		if strings.Contains(strings.ToUpper(name), wantDistrict) {
			perf := pipeline.MapForDisplay(raw)
			q.metrics.CountQuery("performance", "ok")
			return &perf, nil
		}
	}

	q.metrics.CountQuery("performance", "not_found")
	return nil, dErrors.New(dErrors.CodeNotFound, "no data found for this district")
}

// GetHistory returns up to HistoryWindow persisted months for a
// district, oldest first, with parallel "<month> <fin_year>" labels.
func (q *Query) GetHistory(ctx context.Context, state, district string) (*models.History, error) {
	if strings.TrimSpace(state) == "" || strings.TrimSpace(district) == "" {
		q.metrics.CountQuery("history", "bad_request")
		return nil, dErrors.New(dErrors.CodeBadRequest, "Both 'state' and 'district' parameters are required")
	}

	rows, err := q.store.History(ctx, state, district, HistoryWindow)
	if err != nil {
		q.metrics.CountQuery("history", "error")
		q.logger.ErrorContext(ctx, "history query failed",
			"state", state, "district", district, "error", err.Error())
		return nil, dErrors.Wrap(err, dErrors.CodeStorageFailure, "failed to read history")
	}
	if len(rows) == 0 {
		q.metrics.CountQuery("history", "not_found")
		return nil, dErrors.New(dErrors.CodeNotFound, "no history data found")
	}

	// The store returns newest first; flip to chronological order.
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}

	months := make([]string, len(rows))
	for i, r := range rows {
		months[i] = r.Month + " " + r.FinYear
	}

	q.metrics.CountQuery("history", "ok")
	return &models.History{
		District: strings.ToUpper(strings.TrimSpace(district)),
		Months:   months,
		Data:     rows,
	}, nil
}
