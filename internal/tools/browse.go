package tools

import (
	"context"

	"github.com/x402labs/discovery-mcp/internal/service"
)

// BrowseTool returns the full free catalog grouped by category.
func BrowseTool(ds *service.DiscoveryService) Tool {
	return Tool{
		Name: "x402_browse",
		Description: "Browse the complete free x402 service catalog, grouped by category. " +
			"Use this for an overview of what x402-payable services exist, or to explore " +
			"available capabilities before narrowing down with x402_discover.",
		InputSchema: map[string]interface{}{
			"type":       "object",
			"properties": map[string]interface{}{},
		},
		Execute: func(ctx context.Context, input map[string]interface{}) (string, error) {
			body, err := ds.Catalog(ctx)
			if err != nil {
				return "", err
			}
			return string(body), nil
		},
	}
}
