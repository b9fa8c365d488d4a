// Package handler provides HTTP handlers for the dev server API.
package handler

import (
	"net/http"
	"time"

	"github.com/betterway/betterway/internal/api/models"
	"github.com/betterway/betterway/internal/api/response"
	"github.com/betterway/betterway/internal/provider/resilience"
)

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version   string
	buildTime string
	registry  *resilience.Registry
}

// NewOpsHandler creates a new OpsHandler.
func NewOpsHandler(version, buildTime string, registry *resilience.Registry) *OpsHandler {
	return &OpsHandler{
		version:   version,
		buildTime: buildTime,
		registry:  registry,
	}
}

// HealthCheck handles GET /v1/ops/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, models.Health{
		Status: models.HealthStatusOK,
		Time:   time.Now(),
		Details: map[string]interface{}{
			"version":   h.version,
			"buildTime": h.buildTime,
		},
	})
}

// SystemStatus handles GET /v1/ops/status - upstream provider status.
func (h *OpsHandler) SystemStatus(w http.ResponseWriter, r *http.Request) {
	providers := h.registry.AllHealth()

	status := models.HealthStatusOK
	for _, p := range providers {
		if !p.Healthy() {
			status = models.HealthStatusDegraded
			break
		}
	}

	response.JSON(w, r, http.StatusOK, models.SystemStatus{
		Status:    status,
		Time:      time.Now(),
		Providers: providers,
	})
}
