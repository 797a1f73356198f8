package tools

import (
	"context"

	"github.com/HendryAvila/tianav/internal/portal"
	"github.com/HendryAvila/tianav/internal/treeview"
	"github.com/mark3labs/mcp-go/mcp"
)

// ProjectTreeTool handles the tia_project_tree MCP tool.
type ProjectTreeTool struct {
	session       *portal.Session
	ungroupedName string
}

// NewProjectTreeTool creates a ProjectTreeTool. ungroupedName heads the
// ungrouped devices section when the project leaves it unnamed.
func NewProjectTreeTool(session *portal.Session, ungroupedName string) *ProjectTreeTool {
	return &ProjectTreeTool{session: session, ungroupedName: ungroupedName}
}

// Definition returns the MCP tool definition for registration.
func (t *ProjectTreeTool) Definition() mcp.Tool {
	return mcp.NewTool("tia_project_tree",
		mcp.WithDescription(
			"Render the active project as a text tree: top-level devices, device groups "+
				"and the ungrouped devices group, down to device items, their software and "+
				"hardware items. Start here to learn the paths other tools accept.",
		),
	)
}

// Handle processes the tia_project_tree tool call.
func (t *ProjectTreeTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, err := t.session.Project()
	if err != nil {
		return failure("tia_project_tree", err)
	}
	tree, err := treeview.RenderProjectTree(p, treeview.WithUngroupedName(t.ungroupedName))
	if err != nil {
		return failure("tia_project_tree", err)
	}
	return mcp.NewToolResultText(tree), nil
}
