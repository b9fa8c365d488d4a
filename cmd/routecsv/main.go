// Package main provides the entrypoint for the routecsv function: it reacts
// to stored journey plan snapshots and flattens them into CSV route tables.
package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/rs/zerolog"

	"github.com/betterway/betterway/internal/config"
	"github.com/betterway/betterway/internal/pipeline"
	"github.com/betterway/betterway/internal/storage/s3store"
	"github.com/betterway/betterway/internal/telemetry"
)

// Version is set at compile time via ldflags.
var Version = "dev"

func main() {
	const serviceName = "betterway-routecsv"

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

	job := pipeline.NewTransformJob(pipeline.TransformConfig{
		Store:     store,
		CSVPrefix: cfg.CSVPrefix,
		Logger:    log,
	})

	lambda.Start(func(ctx context.Context, event events.S3Event) error {
		ctx, span := tp.Tracer.Start(ctx, "routecsv.run")
		defer span.End()

		for _, record := range event.Records {
			key := record.S3.Object.URLDecodedKey
			if key == "" {
				key = record.S3.Object.Key
			}

			csvKey, err := job.Run(ctx, key)
			if err != nil {
				log.Error().Err(err).Str("key", key).Msg("transform job failed")
				return err
			}
			log.Info().Str("key", key).Str("csv_key", csvKey).Msg("transform job completed")
		}
		return nil
	})
}
