package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/x402labs/discovery-mcp/internal/config"
	"github.com/x402labs/discovery-mcp/internal/server"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "discovery-mcp",
		Short:        "MCP adapter for the x402 service discovery API",
		Long:         "Exposes the x402 Discovery API as MCP tools over stdio or HTTP, so agent hosts can discover and interact with x402-payable services natively.",
		RunE:         run,
		SilenceUsage: true,
	}
	root.Flags().String("transport", "", `transport override: "stdio" or "http"`)
	root.Flags().String("base-url", "", "Discovery API base URL override")
	return root
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if v, _ := cmd.Flags().GetString("transport"); v != "" {
		if v != config.TransportStdio && v != config.TransportHTTP {
			return fmt.Errorf("unknown transport %q", v)
		}
		cfg.Transport = v
	}
	if v, _ := cmd.Flags().GetString("base-url"); v != "" {
		if err := config.ValidateBaseURL(v); err != nil {
			return err
		}
		cfg.DiscoveryBaseURL = strings.TrimRight(v, "/")
	}

	setupLogging(cfg)

	srv, err := server.New(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil && ctx.Err() == nil {
		log.Error().Err(err).Msg("server exited")
		return err
	}
	return nil
}

// setupLogging writes to stderr only; stdout carries the MCP stream in
// stdio mode.
func setupLogging(cfg *config.Config) {
	var out io.Writer = os.Stderr
	if cfg.Environment == "development" {
		out = zerolog.ConsoleWriter{Out: os.Stderr}
	}
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	log.Logger = zerolog.New(out).Level(level).With().Timestamp().Logger()
}
