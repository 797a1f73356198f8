package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/HendryAvila/tianav/internal/navigator"
	"github.com/mark3labs/mcp-go/mcp"
)

// ListDevicesTool handles the tia_list_devices MCP tool.
type ListDevicesTool struct {
	nav *navigator.Navigator
}

// NewListDevicesTool creates a ListDevicesTool.
func NewListDevicesTool(nav *navigator.Navigator) *ListDevicesTool {
	return &ListDevicesTool{nav: nav}
}

// Definition returns the MCP tool definition for registration.
func (t *ListDevicesTool) Definition() mcp.Tool {
	return mcp.NewTool("tia_list_devices",
		mcp.WithDescription(
			"List every device of the active project with its device path, walking device groups "+
				"and the ungrouped devices group. The optional 'pattern' is a case-insensitive "+
				"regular expression matched against device names.",
		),
		mcp.WithString("pattern",
			mcp.Description("Case-insensitive regex over device names (default: all)"),
		),
	)
}

// Handle processes the tia_list_devices tool call.
func (t *ListDevicesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pattern := req.GetString("pattern", "")

	entries, err := t.nav.CollectDevices(pattern)
	if err != nil {
		return failure("tia_list_devices", err, "pattern", pattern)
	}
	if len(entries) == 0 {
		return mcp.NewToolResultText(noMatches("devices", pattern)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# Devices (%d)\n\n", len(entries))
	sb.WriteString("| Path | Type |\n")
	sb.WriteString("|------|------|\n")
	for _, e := range entries {
		fmt.Fprintf(&sb, "| `%s` | %s |\n", e.Path, orDash(e.Device.TypeName()))
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func noMatches(what, pattern string) string {
	if pattern == "" {
		return fmt.Sprintf("No %s found.", what)
	}
	return fmt.Sprintf("No %s match %q.", what, pattern)
}
