package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/HendryAvila/tianav/internal/catalog"
	"github.com/mark3labs/mcp-go/mcp"
)

// ListSnapshotsTool handles the tia_list_snapshots MCP tool.
type ListSnapshotsTool struct {
	store *catalog.Store
}

// NewListSnapshotsTool creates a ListSnapshotsTool.
func NewListSnapshotsTool(store *catalog.Store) *ListSnapshotsTool {
	return &ListSnapshotsTool{store: store}
}

// Definition returns the MCP tool definition for registration.
func (t *ListSnapshotsTool) Definition() mcp.Tool {
	return mcp.NewTool("tia_list_snapshots",
		mcp.WithDescription("List the project snapshots stored in the catalog, newest first."),
	)
}

// Handle processes the tia_list_snapshots tool call.
func (t *ListSnapshotsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snaps, err := t.store.List()
	if err != nil {
		return nil, fmt.Errorf("listing snapshots: %w", err)
	}
	if len(snaps) == 0 {
		return mcp.NewToolResultText("No snapshots stored. Import one with `tia_import_snapshot`."), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# Snapshots (%d)\n\n", len(snaps))
	sb.WriteString("| Name | Project | Nodes | Imported | Source |\n")
	sb.WriteString("|------|---------|-------|----------|--------|\n")
	for _, s := range snaps {
		fmt.Fprintf(&sb, "| `%s` | %s | %d | %s | %s |\n",
			s.Name, s.Project, s.NodeCount, s.ImportedAt, orDash(s.Source))
	}
	return mcp.NewToolResultText(sb.String()), nil
}
