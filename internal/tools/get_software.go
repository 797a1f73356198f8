package tools

import (
	"context"
	"fmt"

	"github.com/HendryAvila/tianav/internal/navigator"
	"github.com/mark3labs/mcp-go/mcp"
)

// GetSoftwareTool handles the tia_get_software MCP tool.
type GetSoftwareTool struct {
	nav *navigator.Navigator
}

// NewGetSoftwareTool creates a GetSoftwareTool.
func NewGetSoftwareTool(nav *navigator.Navigator) *GetSoftwareTool {
	return &GetSoftwareTool{nav: nav}
}

// Definition returns the MCP tool definition for registration.
func (t *GetSoftwareTool) Definition() mcp.Tool {
	return mcp.NewTool("tia_get_software",
		mcp.WithDescription(
			"Resolve the PLC software at a path and summarize its program. Both "+
				"'<device item>' and '<device>/<device item>' addressing work, under any "+
				"device groups (e.g. 'PLC_1', 'PC-System_1/Software PLC_1', 'Line A/PLC_A').",
		),
		mcp.WithString("software_path",
			mcp.Required(),
			mcp.Description("Path of the device item that holds the PLC software"),
		),
	)
}

// Handle processes the tia_get_software tool call.
func (t *GetSoftwareTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, bad := required(req, "software_path")
	if bad != nil {
		return bad, nil
	}

	sw, err := t.nav.ResolveSoftware(path)
	if err != nil {
		return failure("tia_get_software", err, "software_path", path)
	}
	blocks, err := t.nav.CollectBlocks(path, "")
	if err != nil {
		return failure("tia_get_software", err, "software_path", path)
	}
	types, err := t.nav.CollectTypes(path, "")
	if err != nil {
		return failure("tia_get_software", err, "software_path", path)
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"# PLC software: %s\n\n"+
			"**Path:** `%s`\n"+
			"**Variant:** %s\n"+
			"**Program blocks:** %s\n"+
			"**PLC data types:** %s\n\n"+
			"Use `tia_software_tree` for the full layout, or `tia_list_blocks` / `tia_list_types` to search.\n",
		sw.Name(), path, sw.Variant(),
		plural(len(blocks), "block", "blocks"),
		plural(len(types), "type", "types"),
	)), nil
}
