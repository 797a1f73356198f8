package tools

import (
	"context"

	"github.com/HendryAvila/tianav/internal/treeview"
	"github.com/mark3labs/mcp-go/mcp"
)

// SoftwareTreeTool handles the tia_software_tree MCP tool.
type SoftwareTreeTool struct {
	resolver treeview.ContainerResolver
}

// NewSoftwareTreeTool creates a SoftwareTreeTool. *navigator.Navigator is
// the usual resolver.
func NewSoftwareTreeTool(resolver treeview.ContainerResolver) *SoftwareTreeTool {
	return &SoftwareTreeTool{resolver: resolver}
}

// Definition returns the MCP tool definition for registration.
func (t *SoftwareTreeTool) Definition() mcp.Tool {
	return mcp.NewTool("tia_software_tree",
		mcp.WithDescription(
			"Render the program blocks and PLC data types of a PLC software as a text tree. "+
				"Within each group, blocks or types come before sub-groups.",
		),
		mcp.WithString("software_path",
			mcp.Required(),
			mcp.Description("Path of the device item that holds the PLC software"),
		),
	)
}

// Handle processes the tia_software_tree tool call.
func (t *SoftwareTreeTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, bad := required(req, "software_path")
	if bad != nil {
		return bad, nil
	}
	tree, err := treeview.RenderSoftwareTree(t.resolver, path)
	if err != nil {
		return failure("tia_software_tree", err, "software_path", path)
	}
	return mcp.NewToolResultText(tree), nil
}
