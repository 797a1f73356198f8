// Package resources implements MCP resource handlers for the active
// project.
//
// Resources provide read-only data that the host can consume for context.
// They use URI-based addressing (tia://...) following MCP conventions.
package resources

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/HendryAvila/tianav/internal/portal"
	"github.com/HendryAvila/tianav/internal/treeview"
	"github.com/mark3labs/mcp-go/mcp"
)

const (
	TreeURI   = "tia://project/tree"
	StatusURI = "tia://project/status"
)

// Handler manages the project resource endpoints.
type Handler struct {
	session       *portal.Session
	ungroupedName string
}

// NewHandler creates a resource Handler with its dependencies.
func NewHandler(session *portal.Session, ungroupedName string) *Handler {
	return &Handler{session: session, ungroupedName: ungroupedName}
}

// TreeResource returns the MCP resource definition for the project tree.
func (h *Handler) TreeResource() mcp.Resource {
	return mcp.NewResource(
		TreeURI,
		"TIA Project Tree",
		mcp.WithResourceDescription("The active project rendered as a text tree"),
		mcp.WithMIMEType("text/plain"),
	)
}

// HandleTree returns the rendered project tree.
func (h *Handler) HandleTree(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	p, err := h.session.Project()
	if err != nil {
		return errorResource(req.Params.URI, err.Error()), nil
	}
	tree, err := treeview.RenderProjectTree(p, treeview.WithUngroupedName(h.ungroupedName))
	if err != nil {
		return nil, fmt.Errorf("rendering project tree: %w", err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     tree,
		},
	}, nil
}

// StatusResource returns the MCP resource definition for the session
// status.
func (h *Handler) StatusResource() mcp.Resource {
	return mcp.NewResource(
		StatusURI,
		"TIA Session Status",
		mcp.WithResourceDescription("Whether a project is open, and which one"),
		mcp.WithMIMEType("application/json"),
	)
}

type statusView struct {
	Open      bool   `json:"open"`
	SessionID string `json:"session_id,omitempty"`
	Project   string `json:"project,omitempty"`
	Origin    string `json:"origin,omitempty"`
	OpenedAt  string `json:"opened_at,omitempty"`
}

// HandleStatus returns the session status as JSON.
func (h *Handler) HandleStatus(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	st := h.session.Status()
	view := statusView{Open: st.Open}
	if st.Open {
		view.SessionID = st.SessionID
		view.Project = st.Project
		view.Origin = st.Origin.String()
		view.OpenedAt = st.OpenedAt.UTC().Format(time.RFC3339)
	}

	data, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling status: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// errorResource returns a resource with an error message.
func errorResource(uri, message string) []mcp.ResourceContents {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/plain",
			Text:     fmt.Sprintf("Error: %s", message),
		},
	}
}
