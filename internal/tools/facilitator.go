package tools

import (
	"context"
	"strings"

	"github.com/x402labs/discovery-mcp/internal/models"
	"github.com/x402labs/discovery-mcp/internal/service"
)

// FacilitatorCheckTool verifies x402 facilitator compatibility for a
// payment network or a specific facilitator URL. Exactly one of the two
// arguments must be supplied.
func FacilitatorCheckTool(ds *service.DiscoveryService) Tool {
	return Tool{
		Name: "x402_facilitator_check",
		Description: "Check whether a payment network or facilitator URL is compatible with " +
			"the x402 settlement flow. Returns a boolean verdict plus details. Supply either " +
			"a network name or a facilitator URL, not both.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"network": map[string]interface{}{
					"type":        "string",
					"description": "Payment network name (e.g. 'base', 'base-sepolia')",
				},
				"url": map[string]interface{}{
					"type":        "string",
					"description": "Facilitator endpoint URL to verify",
				},
			},
		},
		Execute: func(ctx context.Context, input map[string]interface{}) (string, error) {
			network := stringArg(input, "network")
			facilitatorURL := stringArg(input, "url")
			if network == "" && facilitatorURL == "" {
				return "", models.NewValidationError("network", "one of network or url is required")
			}
			if network != "" && facilitatorURL != "" {
				return "", models.NewValidationError("network", "network and url are mutually exclusive")
			}
			if facilitatorURL != "" && !strings.HasPrefix(facilitatorURL, "http://") && !strings.HasPrefix(facilitatorURL, "https://") {
				return "", models.NewValidationError("url", "must be an http(s) URL")
			}

			body, err := ds.FacilitatorCheck(ctx, network, facilitatorURL)
			if err != nil {
				return "", err
			}
			return string(body), nil
		},
	}
}
