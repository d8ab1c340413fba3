package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/x402labs/discovery-mcp/internal/models"
	"github.com/x402labs/discovery-mcp/internal/service"
)

const defaultMaxPriceUSD = 0.50

// DiscoverTool searches the catalog for services matching a capability
// or free-text query. Ranking happens upstream; results are relayed in
// the order the Discovery API returns them.
func DiscoverTool(ds *service.DiscoveryService) Tool {
	return Tool{
		Name: "x402_discover",
		Description: "Search the x402 service catalog for APIs that match a capability or query. " +
			"Use this when you need to find a paid service to accomplish a task — for example " +
			"web research, data enrichment, AI generation, or any specialized computation. " +
			"Returns a quality-ranked service list.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"capability": map[string]interface{}{
					"type":        "string",
					"description": "Filter by capability tag. Options: " + strings.Join(models.Categories, ", "),
				},
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Free-text search matched against service name and description",
				},
				"max_price_usd": map[string]interface{}{
					"type":        "number",
					"description": "Maximum acceptable price per call in USD (default: 0.50)",
				},
				"category": map[string]interface{}{
					"type":        "string",
					"description": "Restrict results to one primary category",
					"enum":        models.Categories,
				},
			},
		},
		Execute: func(ctx context.Context, input map[string]interface{}) (string, error) {
			p := models.DiscoverParams{
				Capability:  stringArg(input, "capability"),
				Query:       stringArg(input, "query"),
				Category:    stringArg(input, "category"),
				MaxPriceUSD: defaultMaxPriceUSD,
			}
			if p.Capability == "" && p.Query == "" {
				return "", models.NewValidationError("capability", "one of capability or query is required")
			}
			if price, ok := floatArg(input, "max_price_usd"); ok {
				if price <= 0 {
					return "", models.NewValidationError("max_price_usd", "must be greater than zero")
				}
				p.MaxPriceUSD = price
			} else if _, present := input["max_price_usd"]; present {
				return "", models.NewValidationError("max_price_usd", "must be a number")
			}
			if p.Category != "" && !models.ValidCategory(p.Category) {
				return "", models.NewValidationError("category", fmt.Sprintf("unknown category %q", p.Category))
			}

			body, err := ds.Discover(ctx, p)
			if err != nil {
				return "", err
			}
			return string(body), nil
		},
	}
}
