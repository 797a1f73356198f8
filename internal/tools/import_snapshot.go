package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/HendryAvila/tianav/internal/catalog"
	"github.com/HendryAvila/tianav/internal/portal"
	"github.com/HendryAvila/tianav/internal/snapshot"
	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"
)

// ImportSnapshotTool handles the tia_import_snapshot MCP tool.
type ImportSnapshotTool struct {
	store   *catalog.Store
	session *portal.Session
	log     *zap.SugaredLogger
}

// NewImportSnapshotTool creates an ImportSnapshotTool.
func NewImportSnapshotTool(store *catalog.Store, session *portal.Session, log *zap.SugaredLogger) *ImportSnapshotTool {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &ImportSnapshotTool{store: store, session: session, log: log}
}

// Definition returns the MCP tool definition for registration.
func (t *ImportSnapshotTool) Definition() mcp.Tool {
	return mcp.NewTool("tia_import_snapshot",
		mcp.WithDescription(
			"Import a YAML project snapshot into the catalog so it can be reopened by name. "+
				"An existing snapshot with the same name is replaced.",
		),
		mcp.WithString("file",
			mcp.Required(),
			mcp.Description("Path to the YAML snapshot file"),
		),
		mcp.WithString("name",
			mcp.Description("Catalog name (default: the project name)"),
		),
		mcp.WithBoolean("open",
			mcp.Description("Also open the imported snapshot as the active project"),
		),
	)
}

// Handle processes the tia_import_snapshot tool call.
func (t *ImportSnapshotTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	file, bad := required(req, "file")
	if bad != nil {
		return bad, nil
	}

	doc, err := snapshot.Load(file)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to import snapshot: %v", err)), nil
	}
	name := strings.TrimSpace(req.GetString("name", ""))
	if name == "" {
		name = doc.Name
	}

	snap, err := t.store.Save(name, file, doc)
	if err != nil {
		return nil, fmt.Errorf("importing %s as %q: %w", file, name, err)
	}
	t.log.Infow("snapshot imported", "name", snap.Name, "project", snap.Project, "nodes", snap.NodeCount)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Imported **%s** as snapshot `%s` (%d nodes).\n", snap.Project, snap.Name, snap.NodeCount)

	if req.GetBool("open", false) {
		st, err := t.session.OpenSnapshot(t.store, snap.Name)
		if err != nil {
			return failure("tia_import_snapshot", err, "name", snap.Name)
		}
		fmt.Fprintf(&sb, "\nOpened as the active project. **Session:** `%s`\n", st.SessionID)
	}
	return mcp.NewToolResultText(sb.String()), nil
}
