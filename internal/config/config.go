// Package config loads pipeline configuration from the environment into an
// explicit structure. Nothing in the repository reads configuration from
// module-level state; every component receives what it needs from here.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/betterway/betterway/internal/planner"
)

// Notifier channel selection values.
const (
	NotifierSNS    = "sns"
	NotifierPubSub = "pubsub"
	NotifierLog    = "log"
)

// Config holds the full pipeline configuration.
type Config struct {
	// TMB API credentials.
	TMBAppID  string `validate:"required"`
	TMBAppKey string `validate:"required"`
	// TMBBaseURL overrides the API base URL; empty means the production API.
	TMBBaseURL string

	// Commute endpoints.
	HomeLat float64 `validate:"gte=-90,lte=90"`
	HomeLon float64 `validate:"gte=-180,lte=180"`
	WorkLat float64 `validate:"gte=-90,lte=90"`
	WorkLon float64 `validate:"gte=-180,lte=180"`

	// Object storage layout.
	Bucket     string `validate:"required"`
	PlanPrefix string `validate:"required"`
	CSVPrefix  string `validate:"required"`
	JournalKey string `validate:"required"`

	// Notification channel: sns, pubsub or log.
	Notifier        string `validate:"oneof=sns pubsub log"`
	SNSTopicARN     string `validate:"required_if=Notifier sns"`
	PubSubProjectID string `validate:"required_if=Notifier pubsub"`
	PubSubTopic     string `validate:"required_if=Notifier pubsub"`

	// DatabaseURL enables selection history when set.
	DatabaseURL string
}

// Home returns the home coordinate.
func (c Config) Home() planner.Coordinate {
	return planner.Coordinate{Lat: c.HomeLat, Lon: c.HomeLon}
}

// Work returns the work coordinate.
func (c Config) Work() planner.Coordinate {
	return planner.Coordinate{Lat: c.WorkLat, Lon: c.WorkLon}
}

// FromEnv builds and validates a Config from environment variables.
// Coordinate defaults point at the original Barcelona commute.
func FromEnv() (Config, error) {
	cfg := Config{
		TMBAppID:        os.Getenv("TMB_APP_ID"),
		TMBAppKey:       os.Getenv("TMB_APP_KEY"),
		TMBBaseURL:      os.Getenv("TMB_BASE_URL"),
		HomeLat:         envFloat("HOME_LAT", 41.423043),
		HomeLon:         envFloat("HOME_LON", 2.184006),
		WorkLat:         envFloat("WORK_LAT", 41.406232),
		WorkLon:         envFloat("WORK_LON", 2.192273),
		Bucket:          getEnvOrDefault("ROUTES_BUCKET", "tmbinfo"),
		PlanPrefix:      getEnvOrDefault("PLAN_PREFIX", "routes_from_api"),
		CSVPrefix:       getEnvOrDefault("CSV_PREFIX", "routes_csv"),
		JournalKey:      getEnvOrDefault("JOURNAL_KEY", "logs/logs.txt"),
		Notifier:        getEnvOrDefault("NOTIFIER", NotifierSNS),
		SNSTopicARN:     os.Getenv("SNS_TOPIC_ARN"),
		PubSubProjectID: os.Getenv("PUBSUB_PROJECT_ID"),
		PubSubTopic:     os.Getenv("PUBSUB_TOPIC"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
	}

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func envFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return parsed
}
