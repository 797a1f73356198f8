package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/HendryAvila/tianav/internal/navigator"
	"github.com/HendryAvila/tianav/internal/portal"
	"github.com/mark3labs/mcp-go/mcp"
)

// ProjectStatusTool handles the tia_project_status MCP tool.
type ProjectStatusTool struct {
	session *portal.Session
	nav     *navigator.Navigator
}

// NewProjectStatusTool creates a ProjectStatusTool.
func NewProjectStatusTool(session *portal.Session, nav *navigator.Navigator) *ProjectStatusTool {
	return &ProjectStatusTool{session: session, nav: nav}
}

// Definition returns the MCP tool definition for registration.
func (t *ProjectStatusTool) Definition() mcp.Tool {
	return mcp.NewTool("tia_project_status",
		mcp.WithDescription(
			"Show the active project: session id, project name, where it was opened from, "+
				"and how many devices and device groups it has.",
		),
	)
}

// Handle processes the tia_project_status tool call.
func (t *ProjectStatusTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st := t.session.Status()
	if !st.Open {
		return mcp.NewToolResultText(
			"# Project Status\n\nNo project is open. Use `tia_open_project` to open one.\n",
		), nil
	}

	p, err := t.session.Project()
	if err != nil {
		return failure("tia_project_status", err)
	}
	groups, err := p.DeviceGroups()
	if err != nil {
		return failure("tia_project_status", err)
	}
	devices, err := t.nav.CollectDevices("")
	if err != nil {
		return failure("tia_project_status", err)
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"# Project Status\n\n"+
			"**Project:** %s\n"+
			"**Session:** `%s`\n"+
			"**Origin:** %s\n"+
			"**Opened:** %s\n"+
			"**Devices:** %d\n"+
			"**Device groups:** %d\n",
		st.Project, st.SessionID, st.Origin, st.OpenedAt.UTC().Format(time.RFC3339),
		len(devices), len(groups),
	)), nil
}
