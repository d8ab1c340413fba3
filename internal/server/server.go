// Package server assembles the tool registry into an MCP server and
// runs it over the configured transport.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/x402labs/discovery-mcp/internal/config"
	"github.com/x402labs/discovery-mcp/internal/middleware"
	"github.com/x402labs/discovery-mcp/internal/service"
	"github.com/x402labs/discovery-mcp/internal/tools"
)

type Server struct {
	cfg *config.Config
	mcp *mcpserver.MCPServer
	ds  *service.DiscoveryService
}

func New(cfg *config.Config) (*Server, error) {
	ds := service.NewDiscoveryService(cfg.DiscoveryBaseURL, cfg.APIKey, cfg.RequestTimeout())

	reg, err := tools.All(ds)
	if err != nil {
		return nil, err
	}

	mcpSrv, err := newMCPServer(reg)
	if err != nil {
		return nil, fmt.Errorf("build mcp server: %w", err)
	}

	log.Info().
		Str("upstream", ds.BaseURL()).
		Str("transport", cfg.Transport).
		Int("tools", len(reg.All())).
		Bool("auth_configured", cfg.APIKey != "").
		Msg("adapter configuration")

	return &Server{cfg: cfg, mcp: mcpSrv, ds: ds}, nil
}

func (s *Server) Run(ctx context.Context) error {
	if s.cfg.Transport == config.TransportHTTP {
		return s.runHTTP(ctx)
	}
	return s.runStdio(ctx)
}

// runStdio speaks MCP over stdin/stdout. All logging goes to stderr so
// the protocol stream stays clean.
func (s *Server) runStdio(ctx context.Context) error {
	log.Info().Msg("serving MCP over stdio")
	stdio := mcpserver.NewStdioServer(s.mcp)
	return stdio.Listen(ctx, os.Stdin, os.Stdout)
}

// router assembles the HTTP transport surface: the streamable MCP
// handler at /mcp next to a local status endpoint.
func (s *Server) router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)

	statusH := NewStatusHandler(s.ds)
	r.Get("/health", statusH.Health)
	r.Mount("/mcp", mcpserver.NewStreamableHTTPServer(s.mcp))
	return r
}

// runHTTP serves the router with graceful shutdown on context
// cancellation.
func (s *Server) runHTTP(ctx context.Context) error {
	httpSrv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", s.cfg.HTTPHost, s.cfg.HTTPPort),
		Handler:      s.router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Info().Str("addr", httpSrv.Addr).Msg("serving MCP over HTTP")

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("graceful shutdown initiated")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
