package tools

import (
	"context"

	"github.com/HendryAvila/tianav/internal/portal"
	"github.com/mark3labs/mcp-go/mcp"
)

// CloseProjectTool handles the tia_close_project MCP tool.
type CloseProjectTool struct {
	session *portal.Session
}

// NewCloseProjectTool creates a CloseProjectTool.
func NewCloseProjectTool(session *portal.Session) *CloseProjectTool {
	return &CloseProjectTool{session: session}
}

// Definition returns the MCP tool definition for registration.
func (t *CloseProjectTool) Definition() mcp.Tool {
	return mcp.NewTool("tia_close_project",
		mcp.WithDescription("Close the active project. Cached software lookups are dropped."),
	)
}

// Handle processes the tia_close_project tool call.
func (t *CloseProjectTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if !t.session.Close() {
		return mcp.NewToolResultText("No project was open."), nil
	}
	return mcp.NewToolResultText("Project closed."), nil
}
