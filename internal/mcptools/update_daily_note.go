package mcptools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/digest-dev/digestctl/internal/pipeline"
)

// UpdateDailyNoteHandler returns the handler for the update_daily_note MCP tool.
func UpdateDailyNoteHandler(plan Planner) func(ctx context.Context, req *mcp.CallToolRequest, input UpdateDailyNoteInput) (*mcp.CallToolResult, UpdateDailyNoteOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input UpdateDailyNoteInput) (*mcp.CallToolResult, UpdateDailyNoteOutput, error) {
		date, err := resolveDate(input.Date)
		if err != nil {
			return nil, UpdateDailyNoteOutput{}, err
		}

		res, err := pipeline.Run(plan(date))
		if err != nil {
			return nil, UpdateDailyNoteOutput{}, err
		}

		action := "updated"
		if res.Note.Created {
			action = "created"
		} else if !res.Note.Changed {
			action = "unchanged"
		}

		return nil, UpdateDailyNoteOutput{
			Date:     date.Format("2006-01-02"),
			NotePath: res.Note.Path,
			Action:   action,
			Entries:  len(res.Day.Entries),
		}, nil
	}
}
