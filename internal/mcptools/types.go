package mcptools

// ListAccomplishmentsInput is the input schema for the list_accomplishments MCP tool.
type ListAccomplishmentsInput struct {
	Date string `json:"date,omitempty" jsonschema-description:"Target date (YYYY-MM-DD), defaults to today"`
}

// AccomplishmentResult is one accomplishment in tool output.
type AccomplishmentResult struct {
	Date    string `json:"date"`
	Project string `json:"project"`
	Content string `json:"content"`
}

// ListAccomplishmentsOutput is the output schema for the list_accomplishments MCP tool.
type ListAccomplishmentsOutput struct {
	Date            string                 `json:"date"`
	Projects        int                    `json:"projects"`
	Skipped         int                    `json:"skipped"`
	Accomplishments []AccomplishmentResult `json:"accomplishments"`
}

// UpdateDailyNoteInput is the input schema for the update_daily_note MCP tool.
type UpdateDailyNoteInput struct {
	Date string `json:"date,omitempty" jsonschema-description:"Target date (YYYY-MM-DD), defaults to today"`
}

// UpdateDailyNoteOutput is the output schema for the update_daily_note MCP tool.
type UpdateDailyNoteOutput struct {
	Date     string `json:"date"`
	NotePath string `json:"note_path"`
	Action   string `json:"action"`
	Entries  int    `json:"entries"`
}
