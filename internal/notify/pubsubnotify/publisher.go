// Package pubsubnotify publishes notifications to a Google Pub/Sub topic for
// deployments running on GCP.
package pubsubnotify

import (
	"context"
	"fmt"

	"cloud.google.com/go/pubsub/v2"
	"github.com/rs/zerolog"

	"github.com/betterway/betterway/internal/notify"
)

// Config holds configuration for the Pub/Sub publisher.
type Config struct {
	// ProjectID is the GCP project (required).
	ProjectID string

	// Topic is the Pub/Sub topic name (required).
	Topic string

	// Logger for publisher operations.
	Logger zerolog.Logger
}

// Publisher delivers notifications to a Pub/Sub topic. The message subject
// travels as a "subject" attribute; the body is the message payload.
type Publisher struct {
	client    *pubsub.Client
	publisher *pubsub.Publisher
	topic     string
	logger    zerolog.Logger
}

// New creates a Pub/Sub publisher.
func New(ctx context.Context, cfg Config) (*Publisher, error) {
	client, err := pubsub.NewClient(ctx, cfg.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("creating pubsub client: %w", err)
	}

	return &Publisher{
		client:    client,
		publisher: client.Publisher(cfg.Topic),
		topic:     cfg.Topic,
		logger:    cfg.Logger,
	}, nil
}

// Publish delivers the message to the configured topic and waits for the
// server acknowledgement.
func (p *Publisher) Publish(ctx context.Context, msg notify.Message) error {
	result := p.publisher.Publish(ctx, &pubsub.Message{
		Data: []byte(msg.Body),
		Attributes: map[string]string{
			"subject": msg.Subject,
		},
	})

	id, err := result.Get(ctx)
	if err != nil {
		return fmt.Errorf("publishing to pubsub: %w", err)
	}

	p.logger.Info().
		Str("topic", p.topic).
		Str("message_id", id).
		Str("subject", msg.Subject).
		Msg("notification published to pubsub")
	return nil
}

// Close releases the underlying Pub/Sub client.
func (p *Publisher) Close() error {
	return p.client.Close()
}
