package prompts

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

func promptText(t *testing.T, result *mcp.GetPromptResult) string {
	t.Helper()
	if len(result.Messages) != 1 {
		t.Fatalf("got %d messages, want 1", len(result.Messages))
	}
	tc, ok := result.Messages[0].Content.(mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want TextContent", result.Messages[0].Content)
	}
	return tc.Text
}

func TestExplorePrompt(t *testing.T) {
	p := NewExplorePrompt()
	if got := p.Definition().Name; got != "tia-explore" {
		t.Errorf("Name = %q", got)
	}

	result, err := p.Handle(context.Background(), mcp.GetPromptRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := promptText(t, result)
	for _, want := range []string{"tia_project_tree", "tia_software_tree", "[PlcSoftware]"} {
		if !strings.Contains(text, want) {
			t.Errorf("prompt missing %q", want)
		}
	}

	req := mcp.GetPromptRequest{}
	req.Params.Arguments = map[string]string{"focus": "motor"}
	result, err = p.Handle(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(promptText(t, result), "pattern `motor`") {
		t.Error("focus pattern not used")
	}
}

func TestReviewSoftwarePrompt(t *testing.T) {
	p := NewReviewSoftwarePrompt()

	if _, err := p.Handle(context.Background(), mcp.GetPromptRequest{}); err == nil {
		t.Error("missing software_path must fail")
	}

	req := mcp.GetPromptRequest{}
	req.Params.Arguments = map[string]string{"software_path": "Line A/PLC_A"}
	result, err := p.Handle(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(promptText(t, result), `software_path "Line A/PLC_A"`) {
		t.Error("software path not quoted into the prompt")
	}
}
