// Package snsnotify publishes notifications to an AWS SNS topic.
package snsnotify

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/rs/zerolog"

	"github.com/betterway/betterway/internal/notify"
)

// API is the subset of the SNS client the publisher depends on.
type API interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// Config holds configuration for the SNS publisher.
type Config struct {
	// TopicARN is the SNS topic to publish to (required).
	TopicARN string

	// API is the SNS client to use (optional; tests inject a fake).
	API API

	// Logger for publisher operations.
	Logger zerolog.Logger
}

// Publisher delivers notifications to an SNS topic.
type Publisher struct {
	api      API
	topicARN string
	logger   zerolog.Logger
}

// New creates an SNS publisher from the given configuration.
func New(cfg Config) *Publisher {
	return &Publisher{
		api:      cfg.API,
		topicARN: cfg.TopicARN,
		logger:   cfg.Logger,
	}
}

// NewFromDefaults creates an SNS publisher using the default AWS credential chain.
func NewFromDefaults(ctx context.Context, topicARN string, logger zerolog.Logger) (*Publisher, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	return New(Config{
		TopicARN: topicARN,
		API:      sns.NewFromConfig(awsCfg),
		Logger:   logger,
	}), nil
}

// Publish delivers the message to the configured topic.
func (p *Publisher) Publish(ctx context.Context, msg notify.Message) error {
	_, err := p.api.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(p.topicARN),
		Subject:  aws.String(msg.Subject),
		Message:  aws.String(msg.Body),
	})
	if err != nil {
		return fmt.Errorf("publishing to SNS: %w", err)
	}

	p.logger.Info().
		Str("topic_arn", p.topicARN).
		Str("subject", msg.Subject).
		Msg("notification published to SNS")
	return nil
}
