// Package models defines the request and response shapes of the dev server API.
package models

import (
	"time"

	"github.com/betterway/betterway/internal/provider/resilience"
)

// Health status values.
const (
	HealthStatusOK       = "ok"
	HealthStatusDegraded = "degraded"
)

// Health is the liveness check response.
type Health struct {
	Status  string                 `json:"status"`
	Time    time.Time              `json:"time"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// SystemStatus reports the state of the upstream providers.
type SystemStatus struct {
	Status    string                      `json:"status"`
	Time      time.Time                   `json:"time"`
	Providers []*resilience.ProviderHealth `json:"providers"`
}
