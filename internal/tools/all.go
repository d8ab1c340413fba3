package tools

import (
	"fmt"

	"github.com/x402labs/discovery-mcp/internal/service"
)

// All builds the authoritative tool set backed by the given Discovery
// API client. Earlier revisions shipped an x402_health alias; only the
// names declared here are registered.
func All(ds *service.DiscoveryService) (*Registry, error) {
	r := NewRegistry()
	for _, t := range []Tool{
		DiscoverTool(ds),
		BrowseTool(ds),
		HealthCheckTool(ds),
		RegisterTool(ds),
		TrustTool(ds),
		FacilitatorCheckTool(ds),
	} {
		if err := r.Register(t); err != nil {
			return nil, fmt.Errorf("register tools: %w", err)
		}
	}
	return r, nil
}
