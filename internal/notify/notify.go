// Package notify defines the notification boundary used to announce the
// day's best route.
package notify

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Message is a notification with a subject line and a plain-text body.
type Message struct {
	Subject string
	Body    string
}

// Publisher delivers notifications to interested subscribers.
type Publisher interface {
	Publish(ctx context.Context, msg Message) error
}

// BestRouteMessage builds the daily best-route notification for a mode label
// such as "WALK & TRANSIT".
func BestRouteMessage(label string) Message {
	return Message{
		Subject: "Update on today's route",
		Body:    fmt.Sprintf("The best way to go today is %s", label),
	}
}

// LogPublisher writes notifications to a logger instead of a real channel.
// Used by the dev server and as a fallback when no publisher is configured.
type LogPublisher struct {
	Logger zerolog.Logger
}

// Publish logs the message.
func (p *LogPublisher) Publish(ctx context.Context, msg Message) error {
	p.Logger.Info().
		Str("subject", msg.Subject).
		Str("body", msg.Body).
		Msg("notification published")
	return nil
}
