package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"
	"github.com/x402labs/discovery-mcp/internal/models"
	"github.com/x402labs/discovery-mcp/internal/tools"
)

const (
	serverName = "x402-discovery"
	version    = "1.0.0"
)

const instructions = "Use these tools when you need to find or interact with paid API services " +
	"in the x402 ecosystem. x402 services charge micro-payments per call (typically " +
	"$0.001-$0.50) and require no API keys — payment IS the auth."

// newMCPServer declares every registered tool on a fresh MCP server.
// Schemas are passed through raw so the host sees exactly what the
// tool files declare.
func newMCPServer(reg *tools.Registry) (*mcpserver.MCPServer, error) {
	s := mcpserver.NewMCPServer(serverName, version,
		mcpserver.WithToolCapabilities(false),
		mcpserver.WithInstructions(instructions),
		mcpserver.WithRecovery(),
	)

	for _, t := range reg.All() {
		schema, err := json.Marshal(t.InputSchema)
		if err != nil {
			return nil, fmt.Errorf("marshal schema for %s: %w", t.Name, err)
		}
		s.AddTool(mcp.NewToolWithRawSchema(t.Name, t.Description, schema), toolHandler(t))
	}
	return s, nil
}

// toolHandler adapts a tools.Tool to the MCP call convention. Both
// error kinds surface as tool errors, never as protocol failures, so
// one failing call never affects the session.
func toolHandler(t tools.Tool) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := req.GetArguments()
		if args == nil {
			args = map[string]interface{}{}
		}

		out, err := t.Execute(ctx, args)
		if err != nil {
			var vErr *models.ValidationError
			var uErr *models.UpstreamError
			switch {
			case errors.As(err, &vErr):
				log.Debug().Str("tool", t.Name).Str("field", vErr.Field).Msg("argument rejected")
			case errors.As(err, &uErr):
				log.Warn().Str("tool", t.Name).Int("status", uErr.StatusCode).Msg("upstream call failed")
			default:
				log.Warn().Err(err).Str("tool", t.Name).Msg("tool execution error")
			}
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(out), nil
	}
}
