// Package store holds the in-memory entity tables for projects and series.
// The store is constructed explicitly and injected into the orchestrators;
// there are no package-level singletons. Lifetime is the lifetime of the
// process: nothing is persisted.
//
// Concurrent mutation of one entity is serialized with a per-entity lock:
// Update runs its closure while holding the entity's own mutex, so two
// overlapping chapter writes to the same project cannot race on the
// read-modify-write of chapters and the derived word count. Reads return
// deep copies; callers can only change state through an update closure.
package store

import (
	"errors"
	"sync"

	"github.com/vampirenirmal/novelagent/internal/novel"
)

// ErrNotFound is returned when the referenced entity id is not in the store.
var ErrNotFound = errors.New("not found")

type projectEntry struct {
	mu sync.Mutex
	p  novel.Project
}

type seriesEntry struct {
	mu sync.Mutex
	s  novel.BookSeries
}

// Store is the process-wide table of projects and series.
type Store struct {
	mu       sync.RWMutex
	projects map[string]*projectEntry
	series   map[string]*seriesEntry
}

// New creates an empty store.
func New() *Store {
	return &Store{
		projects: make(map[string]*projectEntry),
		series:   make(map[string]*seriesEntry),
	}
}

// PutProject inserts or replaces a project.
func (s *Store) PutProject(p novel.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects[p.ID] = &projectEntry{p: p.Clone()}
}

// GetProject returns a copy of the project with the given id.
func (s *Store) GetProject(id string) (novel.Project, bool) {
	s.mu.RLock()
	e, ok := s.projects[id]
	s.mu.RUnlock()
	if !ok {
		return novel.Project{}, false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.p.Clone(), true
}

// ListProjects returns copies of all projects.
func (s *Store) ListProjects() []novel.Project {
	s.mu.RLock()
	entries := make([]*projectEntry, 0, len(s.projects))
	for _, e := range s.projects {
		entries = append(entries, e)
	}
	s.mu.RUnlock()

	out := make([]novel.Project, 0, len(entries))
	for _, e := range entries {
		e.mu.Lock()
		out = append(out, e.p.Clone())
		e.mu.Unlock()
	}
	return out
}

// UpdateProject runs fn against the stored project while holding its
// per-entity lock, then returns a copy of the updated state. Returns
// ErrNotFound when the id is unknown; when fn errors the entity is left as
// fn left it, so closures must mutate only after their own checks pass.
func (s *Store) UpdateProject(id string, fn func(*novel.Project) error) (novel.Project, error) {
	s.mu.RLock()
	e, ok := s.projects[id]
	s.mu.RUnlock()
	if !ok {
		return novel.Project{}, ErrNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if err := fn(&e.p); err != nil {
		return novel.Project{}, err
	}
	return e.p.Clone(), nil
}

// DeleteProject removes the project and reports whether it was present.
func (s *Store) DeleteProject(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.projects[id]
	delete(s.projects, id)
	return ok
}

// PutSeries inserts or replaces a series.
func (s *Store) PutSeries(bs novel.BookSeries) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.series[bs.ID] = &seriesEntry{s: bs.Clone()}
}

// GetSeries returns a copy of the series with the given id.
func (s *Store) GetSeries(id string) (novel.BookSeries, bool) {
	s.mu.RLock()
	e, ok := s.series[id]
	s.mu.RUnlock()
	if !ok {
		return novel.BookSeries{}, false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.s.Clone(), true
}

// ListSeries returns copies of all series.
func (s *Store) ListSeries() []novel.BookSeries {
	s.mu.RLock()
	entries := make([]*seriesEntry, 0, len(s.series))
	for _, e := range s.series {
		entries = append(entries, e)
	}
	s.mu.RUnlock()

	out := make([]novel.BookSeries, 0, len(entries))
	for _, e := range entries {
		e.mu.Lock()
		out = append(out, e.s.Clone())
		e.mu.Unlock()
	}
	return out
}

// UpdateSeries runs fn against the stored series under its per-entity lock
// and returns a copy of the updated state.
func (s *Store) UpdateSeries(id string, fn func(*novel.BookSeries) error) (novel.BookSeries, error) {
	s.mu.RLock()
	e, ok := s.series[id]
	s.mu.RUnlock()
	if !ok {
		return novel.BookSeries{}, ErrNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if err := fn(&e.s); err != nil {
		return novel.BookSeries{}, err
	}
	return e.s.Clone(), nil
}

// DeleteSeries removes the series and reports whether it was present.
func (s *Store) DeleteSeries(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.series[id]
	delete(s.series, id)
	return ok
}
