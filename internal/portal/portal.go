// Package portal holds the active project session.
//
// A Session has at most one open project. Opening or closing runs the
// registered invalidation hooks first, so caches derived from the previous
// project (the navigator's software cache) are gone before the swap.
// Hooks run with the session locked and must not call back into it.
package portal

import (
	"fmt"
	"sync"
	"time"

	"github.com/HendryAvila/tianav/internal/project"
	"github.com/HendryAvila/tianav/internal/snapshot"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Origin kinds.
const (
	OriginSnapshot = "snapshot"
	OriginFile     = "file"
	OriginMemory   = "memory"
)

// Origin says where the open project came from.
type Origin struct {
	Kind string
	Ref  string
}

func (o Origin) String() string {
	if o.Ref == "" {
		return o.Kind
	}
	return o.Kind + ":" + o.Ref
}

// Status describes the session.
type Status struct {
	Open      bool
	SessionID string
	Project   string
	Origin    Origin
	OpenedAt  time.Time
}

// SnapshotLoader reads stored snapshot documents. *catalog.Store
// implements it.
type SnapshotLoader interface {
	Load(name string) (*snapshot.Document, error)
}

type active struct {
	id       string
	project  project.Project
	origin   Origin
	openedAt time.Time
}

// Session is the active-project holder. The zero value is not usable; call
// New.
type Session struct {
	log *zap.SugaredLogger
	now func() time.Time

	mu     sync.Mutex
	active *active
	hooks  []func()
}

// New creates a closed session.
func New(log *zap.SugaredLogger) *Session {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Session{log: log, now: time.Now}
}

// OnChange registers fn to run before every open and close.
func (s *Session) OnChange(fn func()) {
	s.mu.Lock()
	s.hooks = append(s.hooks, fn)
	s.mu.Unlock()
}

// Project returns the open project, or project.ErrAdapterUnavailable.
func (s *Session) Project() (project.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return nil, project.ErrAdapterUnavailable
	}
	return s.active.project, nil
}

// Open makes p the active project, replacing any open one, and returns the
// new status. Every open gets a fresh session id.
func (s *Session) Open(p project.Project, origin Origin) Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.invalidate()
	if prev := s.active; prev != nil {
		s.log.Infow("project replaced", "session_id", prev.id, "project", prev.project.Name())
	}
	s.active = &active{
		id:       uuid.New().String(),
		project:  p,
		origin:   origin,
		openedAt: s.now(),
	}
	s.log.Infow("project opened", "session_id", s.active.id, "project", p.Name(), "origin", origin.String())
	return s.status()
}

// OpenFile opens the YAML snapshot file at path.
func (s *Session) OpenFile(path string) (Status, error) {
	p, err := snapshot.Open(path)
	if err != nil {
		return Status{}, fmt.Errorf("opening %s: %w", path, err)
	}
	return s.Open(p, Origin{Kind: OriginFile, Ref: path}), nil
}

// OpenSnapshot opens the stored snapshot called name.
func (s *Session) OpenSnapshot(l SnapshotLoader, name string) (Status, error) {
	doc, err := l.Load(name)
	if err != nil {
		return Status{}, err
	}
	return s.Open(snapshot.Build(doc), Origin{Kind: OriginSnapshot, Ref: name}), nil
}

// Close deactivates the open project. It reports false when nothing was
// open.
func (s *Session) Close() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return false
	}
	s.invalidate()
	s.log.Infow("project closed", "session_id", s.active.id, "project", s.active.project.Name())
	s.active = nil
	return true
}

// Status returns the current session state.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status()
}

func (s *Session) status() Status {
	if s.active == nil {
		return Status{}
	}
	return Status{
		Open:      true,
		SessionID: s.active.id,
		Project:   s.active.project.Name(),
		Origin:    s.active.origin,
		OpenedAt:  s.active.openedAt,
	}
}

func (s *Session) invalidate() {
	for _, fn := range s.hooks {
		fn()
	}
}
