package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/x402labs/discovery-mcp/internal/models"
	"github.com/x402labs/discovery-mcp/internal/service"
)

// StatusHandler serves GET /health in HTTP transport mode: adapter
// liveness plus an upstream reachability probe.
type StatusHandler struct {
	ds *service.DiscoveryService
}

func NewStatusHandler(ds *service.DiscoveryService) *StatusHandler {
	return &StatusHandler{ds: ds}
}

func (h *StatusHandler) Health(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{"adapter": "ok"}
	overallStatus := "healthy"

	// Short timeout so the probe never blocks the status endpoint
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	body, err := h.ds.Catalog(ctx)
	if err != nil {
		checks["discovery_api"] = "unavailable: " + err.Error()
		overallStatus = "degraded"
	} else {
		checks["discovery_api"] = "ok"
		var cat models.CatalogResponse
		if json.Unmarshal(body, &cat) == nil {
			checks["discovery_api"] = fmt.Sprintf("ok (%d services indexed)", len(cat.Services))
		}
	}

	statusCode := http.StatusOK
	if overallStatus == "degraded" {
		statusCode = http.StatusServiceUnavailable
	}

	models.WriteJSON(w, statusCode, models.HealthResponse{
		Status:  overallStatus,
		Version: version,
		Checks:  checks,
	})
}
