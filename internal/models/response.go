package models

// HealthResponse is returned by the local GET /health endpoint when the
// adapter runs in HTTP transport mode.
type HealthResponse struct {
	Status  string            `json:"status"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks,omitempty"`
}

// Service mirrors one catalog entry as the Discovery API publishes it.
// Tool results relay the raw upstream JSON; this shape exists for the
// local status probe and for test fixtures.
type Service struct {
	ServiceID      string   `json:"service_id"`
	Name           string   `json:"name"`
	EndpointURL    string   `json:"endpoint_url"`
	Description    string   `json:"description,omitempty"`
	Category       string   `json:"category,omitempty"`
	CapabilityTags []string `json:"capability_tags,omitempty"`
	PricePerCall   float64  `json:"price_per_call"`
	QualityTier    string   `json:"quality_tier,omitempty"`
	UptimePct      float64  `json:"uptime_pct,omitempty"`
	Network        string   `json:"network,omitempty"`
}

// CatalogResponse is the body of GET /catalog.
type CatalogResponse struct {
	Services []Service `json:"services"`
}
