package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Mayank06R/our-voice-rights/internal/mgnrega/service"
	"github.com/Mayank06R/our-voice-rights/internal/mgnrega/store"
	"github.com/Mayank06R/our-voice-rights/internal/mgnrega/upstream"
	"github.com/Mayank06R/our-voice-rights/internal/platform/config"
	"github.com/Mayank06R/our-voice-rights/internal/platform/logger"
	"github.com/Mayank06R/our-voice-rights/internal/platform/postgres"
)

// main runs one ingestion pass and exits. Scheduling is an external
// concern: cron or any orchestrator invokes this binary on its own
// cadence, and overlapping runs are safe because upserts are
// idempotent per natural key.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("postgres connection failed", "error", err.Error())
		os.Exit(1)
	}
	defer db.Close()

	st, err := store.NewPostgres(ctx, db)
	if err != nil {
		log.Error("store bootstrap failed", "error", err.Error())
		os.Exit(1)
	}

	fetcher, err := upstream.New(cfg.UpstreamBaseURL, cfg.APIKey, cfg.ResourceID)
	if err != nil {
		log.Error("upstream client misconfigured", "error", err.Error())
		os.Exit(1)
	}

	ing, err := service.NewIngester(fetcher, st, cfg.TargetState,
		service.WithIngestLogger(log),
		service.WithIngestFetchLimit(cfg.FetchLimit),
	)
	if err != nil {
		log.Error("ingester construction failed", "error", err.Error())
		os.Exit(1)
	}

	res, err := ing.Run(ctx)
	if err != nil {
		log.Error("ingestion run failed", "error", err.Error())
		os.Exit(1)
	}
	if res.Failed > 0 {
		log.Warn("ingestion finished with per-record failures",
			"run_id", res.RunID, "failed", res.Failed, "upserted", res.Upserted)
	}
}
