// Package mcptools exposes the aggregation pipeline over the Model
// Context Protocol, so MCP clients can read accomplishments and refresh
// the daily note without shelling out.
package mcptools

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/digest-dev/digestctl/internal/accomplishment"
	"github.com/digest-dev/digestctl/internal/pipeline"
)

// Planner builds pipeline options for a target date. The CLI binds this
// to the loaded configuration; tests bind it to temp directories.
type Planner func(date time.Time) pipeline.Options

// NewInMemoryServer creates an MCP server wired to a client transport,
// for in-process testing.
func NewInMemoryServer(plan Planner) (*mcp.Server, mcp.Transport) {
	clientTransport, serverTransport := mcp.NewInMemoryTransports()

	server := CreateMCPServer(plan)

	go func() {
		_, _ = server.Connect(context.Background(), serverTransport, nil)
	}()

	return server, clientTransport
}

// CreateMCPServer creates an MCP server with the digestctl tools registered.
func CreateMCPServer(plan Planner) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "digestctl",
		Version: "1.0.0",
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_accomplishments",
		Description: "List dated accomplishments aggregated from all project logs",
	}, ListAccomplishmentsHandler(plan))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_daily_note",
		Description: "Merge the day's accomplishments into the daily note's managed section",
	}, UpdateDailyNoteHandler(plan))

	return server
}

// resolveDate parses an optional YYYY-MM-DD tool argument, defaulting to today.
func resolveDate(s string) (time.Time, error) {
	if s == "" {
		return accomplishment.NormalizeDate(time.Now()), nil
	}
	d, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD)", s)
	}
	return d, nil
}
