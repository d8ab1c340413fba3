package tools

import (
	"context"
	"strings"

	"github.com/x402labs/discovery-mcp/internal/models"
	"github.com/x402labs/discovery-mcp/internal/service"
)

// HealthCheckTool reports the live status of one service endpoint as
// observed by the upstream health monitor.
func HealthCheckTool(ds *service.DiscoveryService) Tool {
	return Tool{
		Name: "x402_health_check",
		Description: "Check the live health status of a specific x402 service endpoint. " +
			"Use this before calling a service to verify it is online, or to investigate " +
			"a service that recently returned an error. Returns status, latency and uptime.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"url": map[string]interface{}{
					"type":        "string",
					"description": "The service endpoint URL to check, as listed in the catalog",
				},
			},
			"required": []string{"url"},
		},
		Execute: func(ctx context.Context, input map[string]interface{}) (string, error) {
			serviceURL := stringArg(input, "url")
			if serviceURL == "" {
				return "", models.NewValidationError("url", "is required")
			}
			if !strings.HasPrefix(serviceURL, "http://") && !strings.HasPrefix(serviceURL, "https://") {
				return "", models.NewValidationError("url", "must be an http(s) URL")
			}

			body, err := ds.CheckHealth(ctx, serviceURL)
			if err != nil {
				return "", err
			}
			return string(body), nil
		},
	}
}
