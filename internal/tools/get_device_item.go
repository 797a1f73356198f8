package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/HendryAvila/tianav/internal/navigator"
	"github.com/mark3labs/mcp-go/mcp"
)

// GetDeviceItemTool handles the tia_get_device_item MCP tool.
type GetDeviceItemTool struct {
	nav *navigator.Navigator
}

// NewGetDeviceItemTool creates a GetDeviceItemTool.
func NewGetDeviceItemTool(nav *navigator.Navigator) *GetDeviceItemTool {
	return &GetDeviceItemTool{nav: nav}
}

// Definition returns the MCP tool definition for registration.
func (t *GetDeviceItemTool) Definition() mcp.Tool {
	return mcp.NewTool("tia_get_device_item",
		mcp.WithDescription(
			"Resolve a device item by path: the device path followed by item names "+
				"(e.g. 'PLC_1/PLC_1/PROFINET interface_1'). Shows its software, hardware items "+
				"and nested items.",
		),
		mcp.WithString("device_item_path",
			mcp.Required(),
			mcp.Description("Slash-separated device item path"),
		),
	)
}

// Handle processes the tia_get_device_item tool call.
func (t *GetDeviceItemTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, bad := required(req, "device_item_path")
	if bad != nil {
		return bad, nil
	}
	fail := func(err error) (*mcp.CallToolResult, error) {
		return failure("tia_get_device_item", err, "device_item_path", path)
	}

	it, err := t.nav.ResolveDeviceItem(path)
	if err != nil {
		return fail(err)
	}
	c, err := it.SoftwareContainer()
	if err != nil {
		return fail(err)
	}
	sw, err := softwareLabel(c)
	if err != nil {
		return fail(err)
	}
	hardware, err := it.HardwareItems()
	if err != nil {
		return fail(err)
	}
	nested, err := it.DeviceItems()
	if err != nil {
		return fail(err)
	}
	table, err := itemTable(nested)
	if err != nil {
		return fail(err)
	}

	var hw strings.Builder
	if len(hardware) == 0 {
		hw.WriteString("None.\n")
	}
	for _, h := range hardware {
		fmt.Fprintf(&hw, "- %s (%s)\n", h.Name(), orDash(h.TypeName()))
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"# Device item: %s\n\n"+
			"**Path:** `%s`\n"+
			"**Type:** %s\n"+
			"**Software:** %s\n\n"+
			"## Hardware items (%d)\n\n"+
			"%s\n"+
			"## Nested items (%d)\n\n"+
			"%s",
		it.Name(), path, orDash(it.TypeName()), orDash(sw),
		len(hardware), hw.String(),
		len(nested), table,
	)), nil
}
