package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/HendryAvila/tianav/internal/navigator"
	"github.com/HendryAvila/tianav/internal/project"
	"github.com/mark3labs/mcp-go/mcp"
)

// ListBlocksTool handles the tia_list_blocks MCP tool.
type ListBlocksTool struct {
	nav *navigator.Navigator
}

// NewListBlocksTool creates a ListBlocksTool.
func NewListBlocksTool(nav *navigator.Navigator) *ListBlocksTool {
	return &ListBlocksTool{nav: nav}
}

// Definition returns the MCP tool definition for registration.
func (t *ListBlocksTool) Definition() mcp.Tool {
	return mcp.NewTool("tia_list_blocks",
		mcp.WithDescription(
			"List the program blocks of a PLC software in pre-order, each with the path "+
				"tia_get_block accepts. The optional 'pattern' is a case-insensitive regular "+
				"expression matched against block names. An invalid pattern lists nothing.",
		),
		mcp.WithString("software_path",
			mcp.Required(),
			mcp.Description("Path of the device item that holds the PLC software"),
		),
		mcp.WithString("pattern",
			mcp.Description("Case-insensitive regex over block names (default: all)"),
		),
	)
}

// Handle processes the tia_list_blocks tool call.
func (t *ListBlocksTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, bad := required(req, "software_path")
	if bad != nil {
		return bad, nil
	}
	pattern := req.GetString("pattern", "")

	entries, err := t.nav.CollectBlocks(path, pattern)
	if err != nil {
		return failure("tia_list_blocks", err, "software_path", path, "pattern", pattern)
	}
	if len(entries) == 0 {
		return mcp.NewToolResultText(noMatches("blocks", pattern)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# Program blocks of %s (%d)\n\n", path, len(entries))
	sb.WriteString("| Path | Block |\n")
	sb.WriteString("|------|-------|\n")
	for _, e := range entries {
		fmt.Fprintf(&sb, "| `%s` | %s |\n", e.Path, project.BlockTag(e.Leaf))
	}
	return mcp.NewToolResultText(sb.String()), nil
}
