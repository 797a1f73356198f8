package metrics

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()

	if r.ToolCalls == nil || r.ToolDuration == nil || r.Resolutions == nil || r.CacheInvalidations == nil {
		t.Fatal("metrics not initialized")
	}
	if r.Gatherer() == nil {
		t.Fatal("Gatherer() returned nil")
	}
}

func TestResolution(t *testing.T) {
	r := NewRegistry()

	r.Resolution("block", "ok")
	r.Resolution("block", "ok")
	r.Resolution("block", "not_found")

	if got := testutil.ToFloat64(r.Resolutions.WithLabelValues("block", "ok")); got != 2 {
		t.Errorf("block/ok = %v, want 2", got)
	}
	if got := testutil.ToFloat64(r.Resolutions.WithLabelValues("block", "not_found")); got != 1 {
		t.Errorf("block/not_found = %v, want 1", got)
	}
}

func TestCacheInvalidated(t *testing.T) {
	r := NewRegistry()
	r.CacheInvalidated()

	if got := testutil.ToFloat64(r.CacheInvalidations); got != 1 {
		t.Errorf("invalidations = %v, want 1", got)
	}
}

func TestInstrument_Outcomes(t *testing.T) {
	r := NewRegistry()

	ok := r.Instrument("t", func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText("fine"), nil
	})
	toolErr := r.Instrument("t", func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultError("no such block"), nil
	})
	fault := r.Instrument("t", func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return nil, errors.New("boom")
	})

	if _, err := ok(context.Background(), mcp.CallToolRequest{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, _ = toolErr(context.Background(), mcp.CallToolRequest{})
	if _, err := fault(context.Background(), mcp.CallToolRequest{}); err == nil {
		t.Fatal("fault error must pass through")
	}

	for outcome, want := range map[string]float64{OutcomeOK: 1, OutcomeToolError: 1, OutcomeError: 1} {
		if got := testutil.ToFloat64(r.ToolCalls.WithLabelValues("t", outcome)); got != want {
			t.Errorf("%s = %v, want %v", outcome, got, want)
		}
	}
	if n := testutil.CollectAndCount(r.ToolDuration); n != 1 {
		t.Errorf("duration series = %d, want 1", n)
	}
}

func TestHandler_Exposition(t *testing.T) {
	r := NewRegistry()
	r.Resolution("software", "ok")

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body := rec.Body.String()
	if !strings.Contains(body, `tianav_resolutions_total{kind="software",outcome="ok"} 1`) {
		t.Errorf("exposition missing resolution counter:\n%s", body)
	}
}
