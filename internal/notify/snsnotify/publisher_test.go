package snsnotify

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/rs/zerolog"

	"github.com/betterway/betterway/internal/notify"
)

type fakeSNS struct {
	input *sns.PublishInput
	err   error
}

func (f *fakeSNS) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sns.PublishOutput{}, nil
}

func TestPublisher_Publish(t *testing.T) {
	fake := &fakeSNS{}
	publisher := New(Config{
		TopicARN: "arn:aws:sns:eu-west-1:123456789012:route-updates",
		API:      fake,
		Logger:   zerolog.Nop(),
	})

	err := publisher.Publish(context.Background(), notify.BestRouteMessage("WALK & TRANSIT"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if fake.input == nil {
		t.Fatal("expected a publish call")
	}
	if *fake.input.TopicArn != "arn:aws:sns:eu-west-1:123456789012:route-updates" {
		t.Errorf("unexpected topic: %s", *fake.input.TopicArn)
	}
	if *fake.input.Subject != "Update on today's route" {
		t.Errorf("unexpected subject: %s", *fake.input.Subject)
	}
	if *fake.input.Message != "The best way to go today is WALK & TRANSIT" {
		t.Errorf("unexpected message: %s", *fake.input.Message)
	}
}

func TestPublisher_PublishError(t *testing.T) {
	fake := &fakeSNS{err: errors.New("access denied")}
	publisher := New(Config{
		TopicARN: "arn:aws:sns:eu-west-1:123456789012:route-updates",
		API:      fake,
		Logger:   zerolog.Nop(),
	})

	err := publisher.Publish(context.Background(), notify.BestRouteMessage("WALK"))
	if err == nil {
		t.Fatal("expected an error")
	}
}
