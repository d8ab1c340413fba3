package models

// DiscoverParams are the query parameters forwarded to GET /discover.
// Filtering and ranking happen upstream; nothing is re-ordered locally.
type DiscoverParams struct {
	Capability  string
	Query       string
	MaxPriceUSD float64
	Category    string
}

// RegisterRequest is the body of POST /register.
type RegisterRequest struct {
	Name        string  `json:"name"`
	URL         string  `json:"url"`
	PriceUSD    float64 `json:"price_usd"`
	Category    string  `json:"category"`
	Description string  `json:"description,omitempty"`
	Network     string  `json:"network,omitempty"`
}

// Categories is the set of primary service categories the Discovery API
// accepts for registration and discovery filtering.
var Categories = []string{
	"research", "data", "compute", "monitoring",
	"verification", "routing", "storage", "translation",
	"classification", "generation", "extraction",
	"summarization", "enrichment", "validation", "other",
}

// ValidCategory reports whether c is a known category.
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}
