package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// ReviewSoftwarePrompt handles the tia-review-software MCP prompt.
type ReviewSoftwarePrompt struct{}

// NewReviewSoftwarePrompt creates a ReviewSoftwarePrompt.
func NewReviewSoftwarePrompt() *ReviewSoftwarePrompt {
	return &ReviewSoftwarePrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *ReviewSoftwarePrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("tia-review-software",
		mcp.WithPromptDescription(
			"Review the program structure of one PLC software: block organization, "+
				"numbering, languages and data types.",
		),
		mcp.WithArgument("software_path",
			mcp.ArgumentDescription("Path of the device item that holds the PLC software"),
			mcp.RequiredArgument(),
		),
	)
}

// Handle processes the tia-review-software prompt request.
func (p *ReviewSoftwarePrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	path := ""
	if args := req.Params.Arguments; args != nil {
		path = args["software_path"]
	}
	if path == "" {
		return nil, fmt.Errorf("software_path is required")
	}

	text := fmt.Sprintf(`Review the PLC software at %q.

1. Call `+"`tia_get_software`"+` with software_path %q.
2. Call `+"`tia_software_tree`"+` for its block and type groups.
3. Call `+"`tia_list_blocks`"+` and `+"`tia_list_types`"+` for exact paths.

Report:
- how blocks are grouped and whether the grouping is consistent,
- organization blocks (OB) and what they call into, as far as names suggest,
- block number ranges per group and any collisions or gaps,
- languages used per group,
- data types that look unused or duplicated.`, path, path)

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Review PLC software %s", path),
		Messages: []mcp.PromptMessage{
			{
				Role:    mcp.RoleUser,
				Content: mcp.NewTextContent(text),
			},
		},
	}, nil
}
