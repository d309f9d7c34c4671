// cmd/admission-api/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"admission-workers/internal/api"
	"admission-workers/internal/common/config"
	"admission-workers/internal/common/database"
	"admission-workers/internal/common/logger"
)

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting admission API...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 10*time.Second)

	// Backends are optional here, unlike in the worker manager: a missing one
	// disables its endpoints instead of blocking startup, so the API stays
	// useful while the rest of the stack comes up.
	deps := api.Dependencies{Logger: log}

	if pg, err := database.NewPostgres(cfg.Database.Postgres); err != nil {
		zapLog.Warn("postgres unavailable, analyses will not be persisted", zap.Error(err))
	} else if err := pg.Ping(startupCtx); err != nil {
		zapLog.Warn("postgres unreachable, analyses will not be persisted", zap.Error(err))
		pg.Close()
	} else {
		defer pg.Close()
		deps.DB = pg.DB
		zapLog.Info("PostgreSQL connected successfully")
	}

	if rdb, err := database.NewRedis(cfg.Database.Redis); err != nil {
		zapLog.Warn("redis unavailable, analysis caching disabled", zap.Error(err))
	} else if err := rdb.Ping(startupCtx); err != nil {
		zapLog.Warn("redis unreachable, analysis caching disabled", zap.Error(err))
		rdb.Close()
	} else {
		defer rdb.Close()
		deps.Redis = rdb.Client
		zapLog.Info("Redis connected successfully")
	}

	if esClient, err := database.NewElasticsearch(cfg.Database.Elasticsearch); err != nil {
		zapLog.Warn("elasticsearch unavailable, college search degrades to the classifier", zap.Error(err))
	} else if err := esClient.Ping(); err != nil {
		zapLog.Warn("elasticsearch unreachable, college search degrades to the classifier", zap.Error(err))
	} else {
		deps.ES = esClient.Client
		zapLog.Info("Elasticsearch connected successfully")
	}

	cancelStartup()

	server := api.NewServer(cfg, deps)

	srv := &http.Server{
		Addr:         cfg.HTTP.API.ListenAddress,
		Handler:      server.Routes(),
		ReadTimeout:  config.GetDuration(cfg.HTTP.API.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.HTTP.API.WriteTimeout),
	}

	go func() {
		zapLog.Info("API server listening", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("API server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, draining connections...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("API server shutdown failed", zap.Error(err))
	}

	zapLog.Info("Admission API stopped gracefully")
}
