// Package main provides the entrypoint for the journalog function: it records
// every stored pipeline object in a rolling journal capped at 100 entries.
package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/rs/zerolog"

	"github.com/betterway/betterway/internal/config"
	"github.com/betterway/betterway/internal/journal"
	"github.com/betterway/betterway/internal/pipeline"
	"github.com/betterway/betterway/internal/storage/s3store"
	"github.com/betterway/betterway/internal/telemetry"
)

// Version is set at compile time via ldflags.
var Version = "dev"

func main() {
	const serviceName = "betterway-journalog"

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

	job := pipeline.NewJournalJob(pipeline.JournalConfig{
		Journal: journal.New(journal.Config{
			Store:  store,
			Key:    cfg.JournalKey,
			Logger: log,
		}),
		Logger: log,
	})

	lambda.Start(func(ctx context.Context, event events.S3Event) error {
		ctx, span := tp.Tracer.Start(ctx, "journalog.run")
		defer span.End()

		for _, record := range event.Records {
			key := record.S3.Object.URLDecodedKey
			if key == "" {
				key = record.S3.Object.Key
			}

			if err := job.Run(ctx, key, record.EventTime); err != nil {
				log.Error().Err(err).Str("key", key).Msg("journal job failed")
				return err
			}
		}
		return nil
	})
}
