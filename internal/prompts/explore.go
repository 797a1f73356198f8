// Package prompts implements MCP prompt handlers for exploring a TIA
// Portal project.
//
// MCP prompts are user-triggered workflows (like slash commands) that
// instruct the AI to execute a specific sequence of tool calls.
package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// ExplorePrompt handles the tia-explore MCP prompt.
// It walks the AI from the project tree down to devices and PLC programs.
type ExplorePrompt struct{}

// NewExplorePrompt creates an ExplorePrompt.
func NewExplorePrompt() *ExplorePrompt {
	return &ExplorePrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *ExplorePrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("tia-explore",
		mcp.WithPromptDescription(
			"Explore the active TIA Portal project: render its tree, then drill down "+
				"into devices, PLC software, blocks and types.",
		),
		mcp.WithArgument("focus",
			mcp.ArgumentDescription("Optional device or block name pattern to focus on"),
		),
	)
}

// Handle processes the tia-explore prompt request.
func (p *ExplorePrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	focus := ""
	if args := req.Params.Arguments; args != nil {
		focus = args["focus"]
	}

	focusStep := "3. Pick the devices that hold PLC software (`Software: ... [PlcSoftware]` lines)."
	if focus != "" {
		focusStep = fmt.Sprintf(
			"3. Narrow down with `tia_list_devices` using pattern `%s`, and `tia_list_blocks` "+
				"with the same pattern on each PLC you find.", focus)
	}

	text := fmt.Sprintf(`Explore the active TIA Portal project.

1. Call `+"`tia_project_status`"+`. If no project is open, call `+"`tia_list_snapshots`"+`
   and open one with `+"`tia_open_project`"+`.
2. Call `+"`tia_project_tree`"+` to see devices, device groups and the ungrouped devices group.
%s
4. For each PLC, call `+"`tia_software_tree`"+` with its software path. Both
   "<device item>" and "<device>/<device item>" work, prefixed by any device groups.
5. Inspect interesting blocks and types with `+"`tia_get_block`"+` and `+"`tia_get_type`"+`,
   using the paths `+"`tia_list_blocks`"+` and `+"`tia_list_types`"+` report.

Summarize the project layout first, then the program structure of each PLC.
Quote paths exactly as the tools print them.`, focusStep)

	return &mcp.GetPromptResult{
		Description: "Explore the active TIA Portal project",
		Messages: []mcp.PromptMessage{
			{
				Role:    mcp.RoleUser,
				Content: mcp.NewTextContent(text),
			},
		},
	}, nil
}
