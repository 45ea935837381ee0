package cmd

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/digest-dev/digestctl/internal/mcptools"
	"github.com/digest-dev/digestctl/internal/pipeline"
)

var mcpServeCmd = &cobra.Command{
	Use:   "mcp-serve",
	Short: "Run MCP server on stdio",
	Long: `Starts a Model Context Protocol (MCP) server that exposes the
aggregation pipeline over stdio transport, so MCP clients can read
accomplishments and refresh the daily note.

Available tools:
  - list_accomplishments: Aggregated accomplishments for a date
  - update_daily_note: Merge a date's accomplishments into the daily note

Example usage in Claude Desktop config:
  {
    "mcpServers": {
      "digestctl": {
        "command": "/path/to/digestctl",
        "args": ["mcp-serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	rootCmd.AddCommand(mcpServeCmd)
}

func runMCPServe(cmd *cobra.Command, args []string) error {
	plan := func(date time.Time) pipeline.Options {
		return planOptions(date)
	}
	server := mcptools.CreateMCPServer(plan)

	// Log to stderr (stdout is reserved for MCP protocol)
	log.SetOutput(os.Stderr)
	log.Printf("Starting digestctl MCP server (stdio transport)")
	log.Printf("Projects root: %s", appConfig.ProjectsRoot)
	log.Printf("Vault path: %s", appConfig.VaultPath)

	// Run server with stdio transport
	// This blocks until the transport is closed
	return server.Run(context.Background(), &mcp.StdioTransport{})
}
