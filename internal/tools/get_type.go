package tools

import (
	"context"
	"fmt"

	"github.com/HendryAvila/tianav/internal/navigator"
	"github.com/mark3labs/mcp-go/mcp"
)

// GetTypeTool handles the tia_get_type MCP tool.
type GetTypeTool struct {
	nav *navigator.Navigator
}

// NewGetTypeTool creates a GetTypeTool.
func NewGetTypeTool(nav *navigator.Navigator) *GetTypeTool {
	return &GetTypeTool{nav: nav}
}

// Definition returns the MCP tool definition for registration.
func (t *GetTypeTool) Definition() mcp.Tool {
	return mcp.NewTool("tia_get_type",
		mcp.WithDescription(
			"Resolve a PLC data type by path: type groups then the type name "+
				"(e.g. 'Enums/MotorState'). The last segment may be a case-insensitive regex.",
		),
		mcp.WithString("software_path",
			mcp.Required(),
			mcp.Description("Path of the device item that holds the PLC software"),
		),
		mcp.WithString("type_path",
			mcp.Required(),
			mcp.Description("Slash-separated type path"),
		),
	)
}

// Handle processes the tia_get_type tool call.
func (t *GetTypeTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	swPath, bad := required(req, "software_path")
	if bad != nil {
		return bad, nil
	}
	typePath, bad := required(req, "type_path")
	if bad != nil {
		return bad, nil
	}

	ty, err := t.nav.ResolveType(swPath, typePath)
	if err != nil {
		return failure("tia_get_type", err, "software_path", swPath, "type_path", typePath)
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"# Type: %s\n\n"+
			"**Path:** `%s`\n"+
			"**Kind:** %s (%s)\n"+
			"**Software:** %s\n",
		ty.Name(), navigator.TypePath(ty), ty.TypeKind(), ty.TypeKind().Tag(), swPath,
	)), nil
}
