package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/x402labs/discovery-mcp/internal/config"
	"github.com/x402labs/discovery-mcp/internal/models"
	"github.com/x402labs/discovery-mcp/internal/service"
	"github.com/x402labs/discovery-mcp/internal/tools"
)

func stubDiscovery(t *testing.T, handler http.HandlerFunc) *service.DiscoveryService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return service.NewDiscoveryService(srv.URL, "", 5*time.Second)
}

func callTool(t *testing.T, tool tools.Tool, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Name = tool.Name
	req.Params.Arguments = args

	res, err := toolHandler(tool)(context.Background(), req)
	if err != nil {
		t.Fatalf("handler returned protocol error: %v", err)
	}
	return res
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) != 1 {
		t.Fatalf("content blocks = %d, want 1", len(res.Content))
	}
	tc, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content[0] is %T, want TextContent", res.Content[0])
	}
	return tc.Text
}

// ─── Tool handler mapping ─────────────────────────────────────────────────────

func TestToolHandlerRelaysSuccessBody(t *testing.T) {
	ds := stubDiscovery(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"services":[{"service_id":"a/1"}]}`))
	})

	res := callTool(t, tools.BrowseTool(ds), map[string]interface{}{})
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, res))
	}
	if got := resultText(t, res); got != `{"services":[{"service_id":"a/1"}]}` {
		t.Errorf("result = %s", got)
	}
}

func TestToolHandlerMapsValidationToToolError(t *testing.T) {
	ds := stubDiscovery(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("validation failure must not reach the upstream")
	})

	res := callTool(t, tools.TrustTool(ds), map[string]interface{}{"wallet": "not-a-wallet"})
	if !res.IsError {
		t.Fatal("expected tool error result")
	}
}

func TestToolHandlerMapsUpstreamToToolError(t *testing.T) {
	ds := stubDiscovery(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"detail":"maintenance"}`))
	})

	res := callTool(t, tools.BrowseTool(ds), map[string]interface{}{})
	if !res.IsError {
		t.Fatal("expected tool error result")
	}
}

func TestToolHandlerAcceptsNilArguments(t *testing.T) {
	ds := stubDiscovery(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"services":[]}`))
	})

	res := callTool(t, tools.BrowseTool(ds), nil)
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, res))
	}
}

// ─── MCP server assembly ──────────────────────────────────────────────────────

func TestNewMCPServerDeclaresAllTools(t *testing.T) {
	ds := stubDiscovery(t, nil)
	reg, err := tools.All(ds)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if _, err := newMCPServer(reg); err != nil {
		t.Fatalf("newMCPServer: %v", err)
	}
}

// ─── HTTP transport ───────────────────────────────────────────────────────────

func TestStreamableMountRespondsAtMCP(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"services":[]}`))
	}))
	t.Cleanup(upstream.Close)

	srv, err := New(&config.Config{
		Environment:      config.DefaultEnvironment,
		LogLevel:         config.DefaultLogLevel,
		Transport:        config.TransportHTTP,
		HTTPHost:         config.DefaultHTTPHost,
		HTTPPort:         config.DefaultHTTPPort,
		DiscoveryBaseURL: upstream.URL,
		TimeoutSeconds:   5,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ts := httptest.NewServer(srv.router())
	t.Cleanup(ts.Close)

	initialize := `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{` +
		`"protocolVersion":"2025-03-26","capabilities":{},` +
		`"clientInfo":{"name":"test-client","version":"1.0"}}}`
	req, err := http.NewRequest(http.MethodPost, ts.URL+"/mcp", strings.NewReader(initialize))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/event-stream")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("POST /mcp: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("POST /mcp status = %d, want 200", resp.StatusCode)
	}

	var rpc struct {
		Jsonrpc string `json:"jsonrpc"`
		Result  struct {
			ServerInfo struct {
				Name string `json:"name"`
			} `json:"serverInfo"`
		} `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&rpc); err != nil {
		t.Fatalf("decode initialize response: %v", err)
	}
	if rpc.Jsonrpc != "2.0" {
		t.Errorf("jsonrpc = %q, want 2.0", rpc.Jsonrpc)
	}
	if rpc.Result.ServerInfo.Name != serverName {
		t.Errorf("serverInfo.name = %q, want %q", rpc.Result.ServerInfo.Name, serverName)
	}
}

// ─── Status endpoint ──────────────────────────────────────────────────────────

func TestStatusHealthy(t *testing.T) {
	ds := stubDiscovery(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"services":[{"service_id":"a/1"},{"service_id":"b/2"}]}`))
	})

	rr := httptest.NewRecorder()
	NewStatusHandler(ds).Health(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	var body models.HealthResponse
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Status != "healthy" {
		t.Errorf("status = %q, want healthy", body.Status)
	}
	if body.Checks["discovery_api"] != "ok (2 services indexed)" {
		t.Errorf("discovery_api check = %q", body.Checks["discovery_api"])
	}
}

func TestStatusDegradedWhenUpstreamDown(t *testing.T) {
	ds := stubDiscovery(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"detail":"broken"}`))
	})

	rr := httptest.NewRecorder()
	NewStatusHandler(ds).Health(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rr.Code)
	}
	var body models.HealthResponse
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Status != "degraded" {
		t.Errorf("status = %q, want degraded", body.Status)
	}
}
