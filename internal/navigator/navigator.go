// Package navigator resolves slash-delimited paths against a project view
// and collects leaves (devices, blocks, types) from its group trees.
//
// Two addressing conventions share one syntax: a hardware PLC is named by
// its device item alone ("PLC_1"), a PC-based software PLC by device and
// item ("PC-System_1/Software PLC_1"). Resolution probes both at every
// level because a caller cannot know which one a configuration uses.
//
// The Navigator never holds on to the project between calls; it asks its
// Source for the active project each time. The only cached value is the
// most recently resolved PLC software, dropped by InvalidateCache.
package navigator

import (
	"errors"
	"sync"

	"github.com/HendryAvila/tianav/internal/project"
	"go.uber.org/zap"
)

// Source supplies the active project view. It returns
// project.ErrAdapterUnavailable when no project is open.
type Source interface {
	Project() (project.Project, error)
}

// Recorder observes resolution outcomes, typically for metrics.
type Recorder interface {
	Resolution(kind, outcome string)
}

// Outcomes passed to Recorder.Resolution.
const (
	OutcomeOK             = "ok"
	OutcomeNotFound       = "not_found"
	OutcomeInvalidPattern = "invalid_pattern"
	OutcomeUnavailable    = "unavailable"
	OutcomeError          = "error"
)

type nopRecorder struct{}

func (nopRecorder) Resolution(string, string) {}

// Navigator implements path resolution and collection over a Source.
type Navigator struct {
	src Source
	log *zap.SugaredLogger
	rec Recorder

	mu    sync.Mutex
	cache *cachedSoftware
	gen   uint64 // bumped by InvalidateCache
}

type cachedSoftware struct {
	path     string
	software project.PlcSoftware
}

// Option configures a Navigator.
type Option func(*Navigator)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(n *Navigator) { n.log = log }
}

// WithRecorder sets the resolution recorder.
func WithRecorder(rec Recorder) Option {
	return func(n *Navigator) { n.rec = rec }
}

// New creates a Navigator reading from src.
func New(src Source, opts ...Option) *Navigator {
	n := &Navigator{
		src: src,
		log: zap.NewNop().Sugar(),
		rec: nopRecorder{},
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// InvalidateCache drops the cached PLC software. Call it before the active
// project changes.
func (n *Navigator) InvalidateCache() {
	n.mu.Lock()
	dropped := n.cache != nil
	n.cache = nil
	n.gen++
	n.mu.Unlock()
	if dropped {
		n.log.Debug("software cache invalidated")
	}
}

// cached returns the software cached for path, and the cache generation
// to hand to remember after a miss.
func (n *Navigator) cached(path string) (project.PlcSoftware, uint64, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.cache == nil || n.cache.path != path {
		return nil, n.gen, false
	}
	return n.cache.software, n.gen, true
}

// remember caches sw for path unless the cache was invalidated since gen
// was read: sw then belongs to a project that is no longer active.
func (n *Navigator) remember(gen uint64, path string, sw project.PlcSoftware) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.gen != gen {
		n.log.Debugw("stale software not cached", "path", path)
		return
	}
	n.cache = &cachedSoftware{path: path, software: sw}
}

func (n *Navigator) project() (project.Project, error) {
	if n.src == nil {
		return nil, project.ErrAdapterUnavailable
	}
	return n.src.Project()
}

// observe records the outcome of a resolution and returns err unchanged.
func (n *Navigator) observe(kind string, err error) error {
	n.rec.Resolution(kind, outcomeOf(err))
	return err
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, project.ErrNotFound):
		return OutcomeNotFound
	case errors.Is(err, project.ErrInvalidPattern):
		return OutcomeInvalidPattern
	case errors.Is(err, project.ErrAdapterUnavailable):
		return OutcomeUnavailable
	default:
		return OutcomeError
	}
}
