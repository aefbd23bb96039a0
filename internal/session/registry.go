package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"shipdesk/internal/domain"
	"shipdesk/internal/schema"
)

// Registry holds the open sessions keyed by uuid.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	schema   *schema.Schema
	max      int
	now      func() time.Time
}

// NewRegistry creates a registry whose sessions project with s. max <= 0 means unbounded.
func NewRegistry(s *schema.Schema, max int) *Registry {
	if s == nil {
		s = schema.Default()
	}
	return &Registry{
		sessions: make(map[string]*Session),
		schema:   s,
		max:      max,
		now:      time.Now,
	}
}

// Create opens a new session in the "no data" state.
func (r *Registry) Create() (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.max > 0 && len(r.sessions) >= r.max {
		return nil, domain.ErrSessionLimit
	}
	sess := newSession(uuid.New().String(), r.schema, r.now)
	r.sessions[sess.ID] = sess
	return sess, nil
}

// Get returns the session with id.
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sess, ok := r.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return sess, nil
}

// Close removes the session with id.
func (r *Registry) Close(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return domain.ErrSessionNotFound
	}
	delete(r.sessions, id)
	return nil
}

// Len returns the number of open sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Evict closes sessions idle for longer than idle and returns how many were removed.
func (r *Registry) Evict(idle time.Duration) int {
	cutoff := r.now().Add(-idle)
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, sess := range r.sessions {
		if sess.LastUsed().Before(cutoff) {
			delete(r.sessions, id)
			n++
		}
	}
	return n
}
