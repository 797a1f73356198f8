package resources

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/HendryAvila/tianav/internal/portal"
	"github.com/HendryAvila/tianav/internal/snapshot/snapshottest"
	"github.com/mark3labs/mcp-go/mcp"
)

func readText(t *testing.T, fn func(context.Context, mcp.ReadResourceRequest) ([]mcp.ResourceContents, error), uri string) (string, string) {
	t.Helper()
	req := mcp.ReadResourceRequest{}
	req.Params.URI = uri
	contents, err := fn(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(contents) != 1 {
		t.Fatalf("got %d contents, want 1", len(contents))
	}
	tc, ok := contents[0].(mcp.TextResourceContents)
	if !ok {
		t.Fatalf("content is %T, want TextResourceContents", contents[0])
	}
	if tc.URI != uri {
		t.Errorf("URI = %q, want %q", tc.URI, uri)
	}
	return tc.MIMEType, tc.Text
}

func TestHandleTree_NoProject(t *testing.T) {
	h := NewHandler(portal.New(nil), "")

	mime, text := readText(t, h.HandleTree, TreeURI)
	if mime != "text/plain" {
		t.Errorf("MIME = %q", mime)
	}
	if text != "Error: no active project" {
		t.Errorf("text = %q", text)
	}
}

func TestHandleTree(t *testing.T) {
	s := portal.New(nil)
	s.Open(snapshottest.Build(t, "name: P\nungrouped:\n  devices: [{name: D1}]\n"), portal.Origin{Kind: portal.OriginMemory})
	h := NewHandler(s, "Loose")

	_, text := readText(t, h.HandleTree, TreeURI)
	if want := "P\n└── Loose\n    └── D1\n"; text != want {
		t.Errorf("tree = %q, want %q", text, want)
	}
}

func TestHandleStatus(t *testing.T) {
	s := portal.New(nil)
	h := NewHandler(s, "")

	mime, text := readText(t, h.HandleStatus, StatusURI)
	if mime != "application/json" {
		t.Errorf("MIME = %q", mime)
	}
	if strings.TrimSpace(text) != "{\n  \"open\": false\n}" {
		t.Errorf("closed status = %s", text)
	}

	st := s.Open(snapshottest.Plant(t), portal.Origin{Kind: portal.OriginFile, Ref: "plant.yaml"})
	_, text = readText(t, h.HandleStatus, StatusURI)

	var got statusView
	if err := json.Unmarshal([]byte(text), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if !got.Open || got.Project != "Plant" || got.Origin != "file:plant.yaml" || got.SessionID != st.SessionID {
		t.Errorf("status = %+v", got)
	}
}

func TestResourceDefinitions(t *testing.T) {
	h := NewHandler(portal.New(nil), "")
	if got := h.TreeResource().URI; got != TreeURI {
		t.Errorf("tree URI = %q", got)
	}
	if got := h.StatusResource().URI; got != StatusURI {
		t.Errorf("status URI = %q", got)
	}
}
