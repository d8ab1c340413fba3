package tools

import (
	"context"
	"regexp"

	"github.com/x402labs/discovery-mcp/internal/models"
	"github.com/x402labs/discovery-mcp/internal/service"
)

var walletPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// TrustTool looks up the ERC-8004 identity and reputation aggregated
// upstream for a service operator's wallet.
func TrustTool(ds *service.DiscoveryService) Tool {
	return Tool{
		Name: "x402_trust",
		Description: "Look up the on-chain trust profile (ERC-8004 identity and reputation) " +
			"of a service operator's wallet address. Use this to judge whether a service " +
			"found via x402_discover is operated by an established, reputable party.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"wallet": map[string]interface{}{
					"type":        "string",
					"description": "EVM wallet address of the service operator (0x-prefixed, 40 hex chars)",
				},
			},
			"required": []string{"wallet"},
		},
		Execute: func(ctx context.Context, input map[string]interface{}) (string, error) {
			wallet := stringArg(input, "wallet")
			if wallet == "" {
				return "", models.NewValidationError("wallet", "is required")
			}
			if !walletPattern.MatchString(wallet) {
				return "", models.NewValidationError("wallet", "must be a 0x-prefixed 40-hex-character address")
			}

			body, err := ds.Trust(ctx, wallet)
			if err != nil {
				return "", err
			}
			return string(body), nil
		},
	}
}
