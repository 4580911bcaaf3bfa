package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/axdriver/axdriver/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an MCP server exposing automation tools",
	Long: `Start a Model Context Protocol (MCP) server that exposes the automation
engine as tools, so agents can drive the desktop without per-action shell
overhead.

Supported transports:
  stdio             Standard I/O (default, for MCP clients)
  streamable-http   Streamable HTTP transport (for remote agents)

Examples:
  axdriver serve
  axdriver serve --transport streamable-http --port 8080
  axdriver serve --cache-ttl 0`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", "stdio", "Transport: stdio, streamable-http")
	serveCmd.Flags().Int("port", 8080, "HTTP port for streamable-http transport")
	serveCmd.Flags().Int("cache-ttl", 500, "Element cache TTL in milliseconds (0 to disable)")
}

func runServe(cmd *cobra.Command, args []string) error {
	transport, _ := cmd.Flags().GetString("transport")
	port, _ := cmd.Flags().GetInt("port")
	cacheTTLMs, _ := cmd.Flags().GetInt("cache-ttl")

	desktop, err := newDesktop()
	if err != nil {
		return fmt.Errorf("failed to create desktop handle: %w", err)
	}

	cfg := server.Config{
		Transport: transport,
		Port:      port,
		CacheTTL:  time.Duration(cacheTTLMs) * time.Millisecond,
		Timeout:   cmdTimeout(),
	}
	return server.New(desktop, cfg).Serve(cfg)
}
