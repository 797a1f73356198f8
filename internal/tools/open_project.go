package tools

import (
	"context"
	"fmt"

	"github.com/HendryAvila/tianav/internal/portal"
	"github.com/mark3labs/mcp-go/mcp"
)

// OpenProjectTool handles the tia_open_project MCP tool.
type OpenProjectTool struct {
	session *portal.Session
	catalog portal.SnapshotLoader
}

// NewOpenProjectTool creates an OpenProjectTool. catalog may be nil, in
// which case only files can be opened.
func NewOpenProjectTool(session *portal.Session, catalog portal.SnapshotLoader) *OpenProjectTool {
	return &OpenProjectTool{session: session, catalog: catalog}
}

// Definition returns the MCP tool definition for registration.
func (t *OpenProjectTool) Definition() mcp.Tool {
	return mcp.NewTool("tia_open_project",
		mcp.WithDescription(
			"Open a project view and make it the active project. "+
				"Pass either 'snapshot' (a name from tia_list_snapshots) or 'file' "+
				"(a YAML snapshot on disk). Replaces any open project.",
		),
		mcp.WithString("snapshot",
			mcp.Description("Name of a stored snapshot"),
		),
		mcp.WithString("file",
			mcp.Description("Path to a YAML snapshot file"),
		),
	)
}

// Handle processes the tia_open_project tool call.
func (t *OpenProjectTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := req.GetString("snapshot", "")
	file := req.GetString("file", "")

	var (
		st  portal.Status
		err error
	)
	switch {
	case name != "" && file != "":
		return mcp.NewToolResultError("Pass either 'snapshot' or 'file', not both"), nil
	case name != "" && t.catalog == nil:
		return mcp.NewToolResultError("The snapshot catalog is unavailable; open a 'file' instead"), nil
	case name != "":
		st, err = t.session.OpenSnapshot(t.catalog, name)
		if err != nil {
			return failure("tia_open_project", err, "snapshot", name)
		}
	case file != "":
		st, err = t.session.OpenFile(file)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to open project: %v", err)), nil
		}
	default:
		return mcp.NewToolResultError("One of 'snapshot' or 'file' is required"), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"Opened project **%s** from %s.\n\n**Session:** `%s`\n",
		st.Project, st.Origin, st.SessionID,
	)), nil
}
