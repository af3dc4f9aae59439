package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	tripmcp "github.com/ajitpratap0/tripplanner/internal/mcp"
)

func mcpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start the MCP (Model Context Protocol) server over stdio",
		Long: `Starts an MCP JSON-RPC 2.0 server that reads from stdin and writes to stdout.
All diagnostic logs go to stderr so that stdout remains exclusively MCP protocol traffic.

Tools exposed:
  plan_trip     — validate a trip and return its summary
  list_regions  — supported destinations with places to visit
  region_info   — places and a random fun fact for one region
  random_quote  — a random travel quote

plan_trip accepts narrate=true to add a Claude-written blurb when
ANTHROPIC_API_KEY is configured; without it the flag is ignored.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := newLogger()

			srv := tripmcp.NewServer(newNarrator(logger), logger, engineOptions(logger)...)

			errLogger := log.New(os.Stderr, "mcp: ", log.LstdFlags)

			logger.Info("mcp: tripplanner MCP server starting", "transport", "stdio")

			return mcpserver.ServeStdio(
				srv.MCPServer(),
				mcpserver.WithErrorLogger(errLogger),
			)
		},
	}

	return cmd
}
