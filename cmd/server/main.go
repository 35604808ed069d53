package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/Mayank06R/our-voice-rights/internal/mgnrega/handler"
	"github.com/Mayank06R/our-voice-rights/internal/mgnrega/metrics"
	"github.com/Mayank06R/our-voice-rights/internal/mgnrega/service"
	"github.com/Mayank06R/our-voice-rights/internal/mgnrega/store"
	"github.com/Mayank06R/our-voice-rights/internal/mgnrega/upstream"
	"github.com/Mayank06R/our-voice-rights/internal/platform/config"
	"github.com/Mayank06R/our-voice-rights/internal/platform/httpserver"
	"github.com/Mayank06R/our-voice-rights/internal/platform/logger"
	"github.com/Mayank06R/our-voice-rights/internal/platform/middleware"
	"github.com/Mayank06R/our-voice-rights/internal/platform/postgres"
	platformredis "github.com/Mayank06R/our-voice-rights/internal/platform/redis"
)

// main wires dependencies and keeps the server lifecycle small.
// Business logic lives in the internal/mgnrega packages.
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

	redisClient, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		// The cache is optional; run uncached rather than refuse to start.
		log.Warn("redis unavailable, district cache disabled", "error", err.Error())
		redisClient = nil
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	fetcher, err := upstream.New(cfg.UpstreamBaseURL, cfg.APIKey, cfg.ResourceID)
	if err != nil {
		log.Error("upstream client misconfigured", "error", err.Error())
		os.Exit(1)
	}

	m := metrics.New()
	query, err := service.NewQuery(fetcher, st,
		service.WithQueryLogger(log),
		service.WithQueryMetrics(m),
		service.WithQueryFetchLimit(cfg.FetchLimit),
		service.WithDistrictCache(service.NewDistrictCache(redisClient, config.DistrictCacheTTL)),
	)
	if err != nil {
		log.Error("query service construction failed", "error", err.Error())
		os.Exit(1)
	}

	router := chi.NewRouter()
	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(log))
	router.Use(middleware.Timeout(45 * time.Second))

	api := handler.New(query, db, cfg.TargetState, log)
	api.Register(router)
	router.Handle("/metrics", promhttp.Handler())

	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting our-voice-rights API", "addr", cfg.Addr, "state", cfg.TargetState)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server exited with error", "error", err.Error())
		os.Exit(1)
	}
}
