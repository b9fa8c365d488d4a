// Package main provides a local development server that runs the whole
// pipeline in-process against an in-memory object store. It exists so the
// chain can be exercised end to end without deploying the functions.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/betterway/betterway/internal/api"
	"github.com/betterway/betterway/internal/config"
	"github.com/betterway/betterway/internal/history"
	"github.com/betterway/betterway/internal/journal"
	"github.com/betterway/betterway/internal/notify"
	"github.com/betterway/betterway/internal/pipeline"
	"github.com/betterway/betterway/internal/planner/tmb"
	"github.com/betterway/betterway/internal/provider/resilience"
	"github.com/betterway/betterway/internal/storage"
	"github.com/betterway/betterway/internal/telemetry"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "betterway-devserver"

	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting BetterWay dev server")

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	ctx := context.Background()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	tp, err := telemetry.Init(ctx, telemetry.ConfigFromEnv(serviceName, Version))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	// Everything runs against an in-memory store; nothing leaves the process
	// except calls to the TMB planner API.
	store := storage.NewMemoryStore()

	registry := resilience.NewRegistry()
	client := tmb.NewClient(tmb.ClientConfig{
		AppID:    cfg.TMBAppID,
		AppKey:   cfg.TMBAppKey,
		BaseURL:  cfg.TMBBaseURL,
		Registry: registry,
		Logger:   log,
	})

	historyService := history.NewService(history.ServiceConfig{
		Repo:   history.NewMemoryRepository(),
		Logger: log,
	})

	chain := pipeline.NewChain(pipeline.ChainConfig{
		Fetch: pipeline.NewFetchJob(pipeline.FetchConfig{
			Planner:     client,
			Store:       store,
			Origin:      cfg.Home(),
			Destination: cfg.Work(),
			PlanPrefix:  cfg.PlanPrefix,
			Logger:      log,
		}),
		Transform: pipeline.NewTransformJob(pipeline.TransformConfig{
			Store:     store,
			CSVPrefix: cfg.CSVPrefix,
			Logger:    log,
		}),
		Notify: pipeline.NewNotifyJob(pipeline.NotifyConfig{
			Store:     store,
			Publisher: &notify.LogPublisher{Logger: log},
			History:   historyService,
			Logger:    log,
		}),
		Journal: pipeline.NewJournalJob(pipeline.JournalConfig{
			Journal: journal.New(journal.Config{
				Store:  store,
				Key:    cfg.JournalKey,
				Logger: log,
			}),
			Logger: log,
		}),
		Logger: log,
	})

	router := api.NewRouter(api.RouterConfig{
		Version:   Version,
		BuildTime: BuildTime,
		Logger:    log,
		Registry:  registry,
		Chain:     chain,
		Store:     store,
		History:   historyService,
	})

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}
