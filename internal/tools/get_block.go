package tools

import (
	"context"
	"fmt"

	"github.com/HendryAvila/tianav/internal/navigator"
	"github.com/mark3labs/mcp-go/mcp"
)

// GetBlockTool handles the tia_get_block MCP tool.
type GetBlockTool struct {
	nav *navigator.Navigator
}

// NewGetBlockTool creates a GetBlockTool.
func NewGetBlockTool(nav *navigator.Navigator) *GetBlockTool {
	return &GetBlockTool{nav: nav}
}

// Definition returns the MCP tool definition for registration.
func (t *GetBlockTool) Definition() mcp.Tool {
	return mcp.NewTool("tia_get_block",
		mcp.WithDescription(
			"Resolve a program block by path: block groups then the block name "+
				"(e.g. 'Motors/FB_Motor'). The last segment may be a case-insensitive regex; "+
				"the first match in order wins. Names containing a regex metacharacter are "+
				"treated as patterns.",
		),
		mcp.WithString("software_path",
			mcp.Required(),
			mcp.Description("Path of the device item that holds the PLC software"),
		),
		mcp.WithString("block_path",
			mcp.Required(),
			mcp.Description("Slash-separated block path"),
		),
	)
}

// Handle processes the tia_get_block tool call.
func (t *GetBlockTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	swPath, bad := required(req, "software_path")
	if bad != nil {
		return bad, nil
	}
	blockPath, bad := required(req, "block_path")
	if bad != nil {
		return bad, nil
	}

	b, err := t.nav.ResolveBlock(swPath, blockPath)
	if err != nil {
		return failure("tia_get_block", err, "software_path", swPath, "block_path", blockPath)
	}

	language := b.Language()
	return mcp.NewToolResultText(fmt.Sprintf(
		"# Block: %s\n\n"+
			"**Path:** `%s`\n"+
			"**Kind:** %s\n"+
			"**Number:** %d\n"+
			"**Language:** %s\n"+
			"**Software:** %s\n",
		b.Name(), navigator.BlockPath(b), b.BlockKind(), b.Number(), orDash(language), swPath,
	)), nil
}
