package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/x402labs/discovery-mcp/internal/models"
	"github.com/x402labs/discovery-mcp/internal/service"
)

// RegisterTool lists a new x402-payable service with the discovery
// layer. The only mutating tool; the remote side owns the record.
func RegisterTool(ds *service.DiscoveryService) Tool {
	return Tool{
		Name: "x402_register",
		Description: "Register a new x402-payable service with the discovery layer. " +
			"Use this to list your own API endpoint so other agents can find it at runtime. " +
			"Registration is free and immediate; the new entry is health-checked shortly after.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"name": map[string]interface{}{
					"type":        "string",
					"description": "Human-readable service name (e.g. 'My Research API')",
				},
				"url": map[string]interface{}{
					"type":        "string",
					"description": "Fully-qualified endpoint URL (must be https://)",
				},
				"price_usd": map[string]interface{}{
					"type":        "number",
					"description": "Price per call in USD (e.g. 0.01)",
				},
				"category": map[string]interface{}{
					"type":        "string",
					"description": "Primary category for the service",
					"enum":        models.Categories,
				},
				"description": map[string]interface{}{
					"type":        "string",
					"description": "One sentence describing what the service does",
				},
				"network": map[string]interface{}{
					"type":        "string",
					"description": "Settlement network for payments (e.g. 'base', 'base-sepolia')",
				},
			},
			"required": []string{"name", "url", "price_usd", "category"},
		},
		Execute: func(ctx context.Context, input map[string]interface{}) (string, error) {
			req := &models.RegisterRequest{
				Name:        strings.TrimSpace(stringArg(input, "name")),
				URL:         stringArg(input, "url"),
				Category:    stringArg(input, "category"),
				Description: stringArg(input, "description"),
				Network:     stringArg(input, "network"),
			}
			if req.Name == "" {
				return "", models.NewValidationError("name", "is required")
			}
			if req.URL == "" {
				return "", models.NewValidationError("url", "is required")
			}
			if !strings.HasPrefix(req.URL, "https://") {
				return "", models.NewValidationError("url", "must be an https:// URL")
			}
			price, ok := floatArg(input, "price_usd")
			if !ok {
				return "", models.NewValidationError("price_usd", "is required and must be a number")
			}
			if price < 0 {
				return "", models.NewValidationError("price_usd", "must not be negative")
			}
			req.PriceUSD = price
			if req.Category == "" {
				return "", models.NewValidationError("category", "is required")
			}
			if !models.ValidCategory(req.Category) {
				return "", models.NewValidationError("category", fmt.Sprintf("unknown category %q", req.Category))
			}

			body, err := ds.Register(ctx, req)
			if err != nil {
				return "", err
			}
			return string(body), nil
		},
	}
}
