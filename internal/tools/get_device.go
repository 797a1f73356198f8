package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/HendryAvila/tianav/internal/navigator"
	"github.com/HendryAvila/tianav/internal/project"
	"github.com/mark3labs/mcp-go/mcp"
)

// GetDeviceTool handles the tia_get_device MCP tool.
type GetDeviceTool struct {
	nav *navigator.Navigator
}

// NewGetDeviceTool creates a GetDeviceTool.
func NewGetDeviceTool(nav *navigator.Navigator) *GetDeviceTool {
	return &GetDeviceTool{nav: nav}
}

// Definition returns the MCP tool definition for registration.
func (t *GetDeviceTool) Definition() mcp.Tool {
	return mcp.NewTool("tia_get_device",
		mcp.WithDescription(
			"Resolve a device by path (device groups then the device name, e.g. 'Line A/PLC_A') "+
				"and summarize its top-level device items.",
		),
		mcp.WithString("device_path",
			mcp.Required(),
			mcp.Description("Slash-separated device path"),
		),
	)
}

// Handle processes the tia_get_device tool call.
func (t *GetDeviceTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, bad := required(req, "device_path")
	if bad != nil {
		return bad, nil
	}

	d, err := t.nav.ResolveDevice(path)
	if err != nil {
		return failure("tia_get_device", err, "device_path", path)
	}
	items, err := d.DeviceItems()
	if err != nil {
		return failure("tia_get_device", err, "device_path", path)
	}
	table, err := itemTable(items)
	if err != nil {
		return failure("tia_get_device", err, "device_path", path)
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"# Device: %s\n\n"+
			"**Path:** `%s`\n"+
			"**Type:** %s\n\n"+
			"## Device items (%d)\n\n"+
			"%s",
		d.Name(), path, orDash(d.TypeName()), len(items), table,
	)), nil
}

// itemTable renders one row per device item with its software, if any.
func itemTable(items []project.DeviceItem) (string, error) {
	if len(items) == 0 {
		return "None.\n", nil
	}
	var sb strings.Builder
	sb.WriteString("| Item | Type | Software |\n")
	sb.WriteString("|------|------|----------|\n")
	for _, it := range items {
		c, err := it.SoftwareContainer()
		if err != nil {
			return "", err
		}
		sw, err := softwareLabel(c)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&sb, "| %s | %s | %s |\n", it.Name(), orDash(it.TypeName()), orDash(sw))
	}
	return sb.String(), nil
}
