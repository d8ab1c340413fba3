// Package service wraps the remote x402 Discovery API. Every method
// issues exactly one HTTP request; ranking, health polling, and trust
// scoring all happen upstream.
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/x402labs/discovery-mcp/internal/models"
)

// maxResponseBytes caps how much of an upstream body is read. Catalog
// responses are small; anything past this is a misbehaving upstream.
const maxResponseBytes = 4 << 20

// DiscoveryService is a stateless client for the Discovery API. It holds
// no mutable state across calls, so concurrent use needs no locking.
type DiscoveryService struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewDiscoveryService creates a client bound to one base URL. timeout
// bounds each outbound call; there are no retries.
func NewDiscoveryService(baseURL, apiKey string, timeout time.Duration) *DiscoveryService {
	return &DiscoveryService{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the configured upstream base URL.
func (s *DiscoveryService) BaseURL() string {
	return s.baseURL
}

// Discover forwards a ranked catalog search to GET /discover.
func (s *DiscoveryService) Discover(ctx context.Context, p models.DiscoverParams) (json.RawMessage, error) {
	q := url.Values{}
	if p.Capability != "" {
		q.Set("capability", p.Capability)
	}
	if p.Query != "" {
		q.Set("query", p.Query)
	}
	if p.MaxPriceUSD > 0 {
		q.Set("max_price_usd", strconv.FormatFloat(p.MaxPriceUSD, 'f', -1, 64))
	}
	if p.Category != "" {
		q.Set("category", p.Category)
	}
	return s.get(ctx, "/discover", q)
}

// Catalog fetches the full free catalog from GET /catalog.
func (s *DiscoveryService) Catalog(ctx context.Context) (json.RawMessage, error) {
	return s.get(ctx, "/catalog", nil)
}

// CheckHealth asks the upstream health checker about one service URL.
func (s *DiscoveryService) CheckHealth(ctx context.Context, serviceURL string) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("url", serviceURL)
	return s.get(ctx, "/health", q)
}

// Register creates a new catalog entry via POST /register. This is the
// only mutating call; no local record of the registration is kept.
func (s *DiscoveryService) Register(ctx context.Context, req *models.RegisterRequest) (json.RawMessage, error) {
	return s.post(ctx, "/register", req)
}

// Trust looks up the ERC-8004 identity and reputation of a wallet.
func (s *DiscoveryService) Trust(ctx context.Context, wallet string) (json.RawMessage, error) {
	return s.get(ctx, "/trust/"+url.PathEscape(wallet), nil)
}

// FacilitatorCheck verifies x402 facilitator compatibility for a
// network name or a facilitator URL (exactly one is set by the caller).
func (s *DiscoveryService) FacilitatorCheck(ctx context.Context, network, facilitatorURL string) (json.RawMessage, error) {
	q := url.Values{}
	if network != "" {
		q.Set("network", network)
	}
	if facilitatorURL != "" {
		q.Set("url", facilitatorURL)
	}
	return s.get(ctx, "/facilitator/check", q)
}

func (s *DiscoveryService) get(ctx context.Context, path string, q url.Values) (json.RawMessage, error) {
	endpoint := s.baseURL + path
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	return s.do(req, path)
}

func (s *DiscoveryService) post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return s.do(req, path)
}

// do performs the single round trip and relays the JSON body unmodified.
// Non-2xx statuses and undecodable bodies come back as *models.UpstreamError
// with the upstream payload carried verbatim.
func (s *DiscoveryService) do(req *http.Request, path string) (json.RawMessage, error) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &models.UpstreamError{Endpoint: path, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &models.UpstreamError{Endpoint: path, StatusCode: resp.StatusCode, Err: err}
	}

	log.Debug().
		Str("method", req.Method).
		Str("endpoint", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("upstream call")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &models.UpstreamError{
			Endpoint:   path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}
	if !json.Valid(body) {
		return nil, &models.UpstreamError{
			Endpoint:   path,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("response body is not valid JSON"),
		}
	}
	return json.RawMessage(body), nil
}
