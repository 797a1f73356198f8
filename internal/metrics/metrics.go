// Package metrics exposes tianav's Prometheus metrics: MCP tool calls,
// path resolutions and cache invalidations.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Tool call outcomes.
const (
	OutcomeOK        = "ok"
	OutcomeToolError = "tool_error"
	OutcomeError     = "error"
)

// Registry holds every tianav metric on its own Prometheus registry.
type Registry struct {
	ToolCalls          *prometheus.CounterVec
	ToolDuration       *prometheus.HistogramVec
	Resolutions        *prometheus.CounterVec
	CacheInvalidations prometheus.Counter

	registry *prometheus.Registry
}

// NewRegistry creates a registry with all metrics initialized.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	r := &Registry{registry: reg}

	r.ToolCalls = promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Name: "tianav_tool_calls_total",
			Help: "MCP tool calls by tool and outcome",
		},
		[]string{"tool", "outcome"},
	)
	r.ToolDuration = promauto.With(reg).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tianav_tool_duration_seconds",
			Help:    "MCP tool call latency",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
		},
		[]string{"tool"},
	)
	r.Resolutions = promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Name: "tianav_resolutions_total",
			Help: "Path resolutions and collections by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)
	r.CacheInvalidations = promauto.With(reg).NewCounter(
		prometheus.CounterOpts{
			Name: "tianav_cache_invalidations_total",
			Help: "Software cache invalidations caused by project open or close",
		},
	)
	return r
}

// Gatherer returns the underlying Prometheus registry.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// Resolution records one navigator outcome.
func (r *Registry) Resolution(kind, outcome string) {
	r.Resolutions.WithLabelValues(kind, outcome).Inc()
}

// CacheInvalidated counts one cache invalidation.
func (r *Registry) CacheInvalidated() {
	r.CacheInvalidations.Inc()
}

// Instrument wraps an MCP tool handler with call and latency metrics.
func (r *Registry) Instrument(tool string, next server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		result, err := next(ctx, req)
		r.ToolDuration.WithLabelValues(tool).Observe(time.Since(start).Seconds())

		outcome := OutcomeOK
		switch {
		case err != nil:
			outcome = OutcomeError
		case result != nil && result.IsError:
			outcome = OutcomeToolError
		}
		r.ToolCalls.WithLabelValues(tool, outcome).Inc()
		return result, err
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is done.
func (r *Registry) Serve(ctx context.Context, addr string, log *zap.SugaredLogger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", r.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Infow("metrics endpoint listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
