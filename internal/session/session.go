// Package session keeps one presentation engine per browser session and
// serializes the events each session receives.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"shipdesk/internal/domain"
	"shipdesk/internal/export"
	"shipdesk/internal/schema"
	"shipdesk/internal/view"
)

// Ticket identifies one extraction request. A ticket is stale once another
// extraction has begun or the session was reset.
type Ticket struct {
	generation uint64
	started    time.Time
}

// Snapshot is a consistent read of a session taken under its lock.
type Snapshot struct {
	HasData     bool                      `json:"has_data"`
	Projection  domain.Projection         `json:"projection"`
	State       domain.ViewState          `json:"state"`
	RecordCount string                    `json:"record_count"`
	Summary     *domain.ExtractionSummary `json:"summary,omitempty"`
}

// Session wraps a view.Engine with a mutex. The engine itself stays single-actor.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu         sync.Mutex
	engine     *view.Engine
	summary    *domain.ExtractionSummary
	generation uint64
	lastUsed   time.Time
	now        func() time.Time
}

func newSession(id string, s *schema.Schema, now func() time.Time) *Session {
	t := now()
	return &Session{
		ID:        id,
		CreatedAt: t,
		engine:    view.NewEngine(s),
		lastUsed:  t,
		now:       now,
	}
}

// BeginExtraction supersedes any extraction still in flight.
func (s *Session) BeginExtraction() Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.touch()
	return Ticket{generation: s.generation, started: s.now()}
}

// Complete applies an extraction result for docs documents. A stale ticket leaves the
// session untouched and returns ErrStaleResult. A failed result leaves the loaded
// data in place and returns ErrIngestionFailed.
func (s *Session) Complete(t Ticket, docs int, result domain.IngestResult) (*domain.ExtractionSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if t.generation != s.generation {
		return nil, domain.ErrStaleResult
	}
	if err := s.engine.Ingest(result); err != nil {
		return nil, err
	}
	if !s.engine.HasData() {
		s.summary = nil
		return nil, nil
	}
	sum := view.Summarize(docs, result.LabeledData, s.now().Sub(t.started))
	s.summary = &sum
	return &sum, nil
}

// Ingest loads a result directly, superseding any extraction in flight.
func (s *Session) Ingest(result domain.IngestResult) (*domain.ExtractionSummary, error) {
	return s.Complete(s.BeginExtraction(), 0, result)
}

// Reset discards the data and invalidates outstanding tickets.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.summary = nil
	s.engine.Reset()
	s.touch()
}

// Snapshot returns the current projection and state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.snapshot()
}

// Reorder moves source to target's slot.
func (s *Session) Reorder(source, target domain.FieldID) (Snapshot, error) {
	return s.mutate(func(e *view.Engine) { e.Reorder(source, target) })
}

// SetVisible shows or hides one column.
func (s *Session) SetVisible(id domain.FieldID, visible bool) (Snapshot, error) {
	return s.mutate(func(e *view.Engine) { e.SetVisible(id, visible) })
}

// SetQuery replaces the row filter.
func (s *Session) SetQuery(text string) (Snapshot, error) {
	return s.mutate(func(e *view.Engine) { e.SetQuery(text) })
}

// ColumnMenu lists columns whose label contains text.
func (s *Session) ColumnMenu(text string) ([]domain.Column, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if !s.engine.HasData() {
		return nil, domain.ErrNoData
	}
	return s.engine.ColumnMenu(text), nil
}

// Export serializes the view as it is at call time. The lock is released before
// the exporter runs, so view changes made meanwhile do not affect the payload.
func (s *Session) Export(ctx context.Context, x export.Exporter, format domain.ExportFormat) (*domain.ExportResult, error) {
	s.mu.Lock()
	hasData := s.engine.HasData()
	p := s.engine.Projection()
	s.touch()
	s.mu.Unlock()

	if !hasData {
		return nil, domain.ErrNoData
	}
	res, err := x.Export(ctx, format, p)
	if err != nil {
		return nil, fmt.Errorf("exporting %s: %w", format, err)
	}
	return res, nil
}

// LastUsed returns when the session last received an event.
func (s *Session) LastUsed() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUsed
}

func (s *Session) mutate(fn func(e *view.Engine)) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if !s.engine.HasData() {
		return s.snapshot(), domain.ErrNoData
	}
	fn(s.engine)
	return s.snapshot(), nil
}

func (s *Session) snapshot() Snapshot {
	snap := Snapshot{HasData: s.engine.HasData()}
	if !snap.HasData {
		return snap
	}
	snap.Projection = s.engine.Projection()
	snap.State = s.engine.State()
	snap.RecordCount = s.engine.RecordCount()
	if s.summary != nil {
		sum := *s.summary
		snap.Summary = &sum
	}
	return snap
}

func (s *Session) touch() {
	s.lastUsed = s.now()
}
