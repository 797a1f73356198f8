package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/HendryAvila/tianav/internal/navigator"
	"github.com/mark3labs/mcp-go/mcp"
)

// ListTypesTool handles the tia_list_types MCP tool.
type ListTypesTool struct {
	nav *navigator.Navigator
}

// NewListTypesTool creates a ListTypesTool.
func NewListTypesTool(nav *navigator.Navigator) *ListTypesTool {
	return &ListTypesTool{nav: nav}
}

// Definition returns the MCP tool definition for registration.
func (t *ListTypesTool) Definition() mcp.Tool {
	return mcp.NewTool("tia_list_types",
		mcp.WithDescription(
			"List the PLC data types of a PLC software in pre-order, each with the path "+
				"tia_get_type accepts. The optional 'pattern' is a case-insensitive regular "+
				"expression matched against type names.",
		),
		mcp.WithString("software_path",
			mcp.Required(),
			mcp.Description("Path of the device item that holds the PLC software"),
		),
		mcp.WithString("pattern",
			mcp.Description("Case-insensitive regex over type names (default: all)"),
		),
	)
}

// Handle processes the tia_list_types tool call.
func (t *ListTypesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, bad := required(req, "software_path")
	if bad != nil {
		return bad, nil
	}
	pattern := req.GetString("pattern", "")

	entries, err := t.nav.CollectTypes(path, pattern)
	if err != nil {
		return failure("tia_list_types", err, "software_path", path, "pattern", pattern)
	}
	if len(entries) == 0 {
		return mcp.NewToolResultText(noMatches("types", pattern)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# PLC data types of %s (%d)\n\n", path, len(entries))
	sb.WriteString("| Path | Kind |\n")
	sb.WriteString("|------|------|\n")
	for _, e := range entries {
		fmt.Fprintf(&sb, "| `%s` | %s |\n", e.Path, e.Leaf.TypeKind().Tag())
	}
	return mcp.NewToolResultText(sb.String()), nil
}
