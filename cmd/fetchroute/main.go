// Package main provides the entrypoint for the scheduled fetchroute function:
// it retrieves the day's journey plan from TMB and stores the raw snapshot.
package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/rs/zerolog"

	"github.com/betterway/betterway/internal/config"
	"github.com/betterway/betterway/internal/pipeline"
	"github.com/betterway/betterway/internal/planner/tmb"
	"github.com/betterway/betterway/internal/provider/resilience"
	"github.com/betterway/betterway/internal/storage/s3store"
	"github.com/betterway/betterway/internal/telemetry"
)

// Version is set at compile time via ldflags.
var Version = "dev"

func main() {
	const serviceName = "betterway-fetchroute"

	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	ctx := context.Background()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	tp, err := telemetry.Init(ctx, telemetry.ConfigFromEnv(serviceName, Version))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}

	store, err := s3store.NewFromDefaults(ctx, cfg.Bucket, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize object store")
	}

	client := tmb.NewClient(tmb.ClientConfig{
		AppID:    cfg.TMBAppID,
		AppKey:   cfg.TMBAppKey,
		BaseURL:  cfg.TMBBaseURL,
		Registry: resilience.NewRegistry(),
		Logger:   log,
	})

	job := pipeline.NewFetchJob(pipeline.FetchConfig{
		Planner:     client,
		Store:       store,
		Origin:      cfg.Home(),
		Destination: cfg.Work(),
		PlanPrefix:  cfg.PlanPrefix,
		Logger:      log,
	})

	lambda.Start(func(ctx context.Context) error {
		ctx, span := tp.Tracer.Start(ctx, "fetchroute.run")
		defer span.End()

		key, err := job.Run(ctx)
		if err != nil {
			log.Error().Err(err).Msg("fetch job failed")
			return err
		}
		log.Info().Str("key", key).Msg("fetch job completed")
		return nil
	})
}
