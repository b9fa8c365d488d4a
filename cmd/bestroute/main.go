// Package main provides the entrypoint for the bestroute function: it ranks
// stored CSV route tables and publishes the fastest route of the day.
package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/rs/zerolog"

	"github.com/betterway/betterway/internal/config"
	"github.com/betterway/betterway/internal/database"
	"github.com/betterway/betterway/internal/history"
	"github.com/betterway/betterway/internal/notify"
	"github.com/betterway/betterway/internal/notify/pubsubnotify"
	"github.com/betterway/betterway/internal/notify/snsnotify"
	"github.com/betterway/betterway/internal/pipeline"
	"github.com/betterway/betterway/internal/storage/s3store"
	"github.com/betterway/betterway/internal/telemetry"
)

// Version is set at compile time via ldflags.
var Version = "dev"

func main() {
	const serviceName = "betterway-bestroute"

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

	publisher, err := newPublisher(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize publisher")
	}

	var historyService *history.Service
	if cfg.DatabaseURL != "" {
		pool, err := database.Connect(ctx, database.DefaultConfig(cfg.DatabaseURL))
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		historyService = history.NewService(history.ServiceConfig{
			Repo:   history.NewPostgresRepository(pool),
			Logger: log,
		})
		log.Info().Msg("selection history enabled")
	}

	job := pipeline.NewNotifyJob(pipeline.NotifyConfig{
		Store:     store,
		Publisher: publisher,
		History:   historyService,
		Logger:    log,
	})

	lambda.Start(func(ctx context.Context, event events.S3Event) error {
		ctx, span := tp.Tracer.Start(ctx, "bestroute.run")
		defer span.End()

		for _, record := range event.Records {
			key := record.S3.Object.URLDecodedKey
			if key == "" {
				key = record.S3.Object.Key
			}

			selection, err := job.Run(ctx, key)
			if err != nil {
				log.Error().Err(err).Str("key", key).Msg("notify job failed")
				return err
			}
			log.Info().
				Str("key", key).
				Str("label", selection.Label).
				Msg("notify job completed")
		}
		return nil
	})
}

// newPublisher selects the notification channel from configuration.
func newPublisher(ctx context.Context, cfg config.Config, log zerolog.Logger) (notify.Publisher, error) {
	switch cfg.Notifier {
	case config.NotifierPubSub:
		return pubsubnotify.New(ctx, pubsubnotify.Config{
			ProjectID: cfg.PubSubProjectID,
			Topic:     cfg.PubSubTopic,
			Logger:    log,
		})
	case config.NotifierLog:
		return &notify.LogPublisher{Logger: log}, nil
	default:
		return snsnotify.NewFromDefaults(ctx, cfg.SNSTopicARN, log)
	}
}
