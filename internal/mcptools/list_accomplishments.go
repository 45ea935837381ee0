package mcptools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/digest-dev/digestctl/internal/pipeline"
)

// ListAccomplishmentsHandler returns the handler for the list_accomplishments MCP tool.
func ListAccomplishmentsHandler(plan Planner) func(ctx context.Context, req *mcp.CallToolRequest, input ListAccomplishmentsInput) (*mcp.CallToolResult, ListAccomplishmentsOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ListAccomplishmentsInput) (*mcp.CallToolResult, ListAccomplishmentsOutput, error) {
		date, err := resolveDate(input.Date)
		if err != nil {
			return nil, ListAccomplishmentsOutput{}, err
		}

		col, err := pipeline.Collect(plan(date))
		if err != nil {
			return nil, ListAccomplishmentsOutput{}, err
		}

		out := ListAccomplishmentsOutput{
			Date:     date.Format("2006-01-02"),
			Projects: len(col.Sources),
			Skipped:  col.Skipped,
			// Non-nil so an empty result serializes as [] rather than null,
			// matching the declared output schema.
			Accomplishments: []AccomplishmentResult{},
		}
		for _, e := range col.Day.Entries {
			out.Accomplishments = append(out.Accomplishments, AccomplishmentResult{
				Date:    e.Date.Format("2006-01-02"),
				Project: e.Project,
				Content: e.Text,
			})
		}
		return nil, out, nil
	}
}
