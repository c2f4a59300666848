// internal/store/memory.go
//
// In-memory registry of live puzzle sessions, keyed by session ID.
// Sessions are per page load and are never persisted; only the streak and
// theme live in the durable KV store. Sweep drops sessions older than a
// cutoff so a long-running server does not grow without bound.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/dailypuzzles/internal/puzzle"
)

// ErrNotFound is returned by Get for an unknown session ID.
var ErrNotFound = errors.New("session not found")

// Store holds live sessions.
type Store interface {
	Save(ctx context.Context, s *puzzle.Session) error
	Get(ctx context.Context, id string) (*puzzle.Session, error)
	// Sweep removes sessions created before cutoff and reports how many went.
	Sweep(ctx context.Context, cutoff time.Time) int
}

type memory struct {
	mu       sync.RWMutex
	sessions map[string]*puzzle.Session
}

// NewMemoryStore constructs an empty registry.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*puzzle.Session)}
}

func (m *memory) Save(_ context.Context, s *puzzle.Session) error {
	if s == nil || s.ID == "" {
		return errors.New("session has no id")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

func (m *memory) Get(_ context.Context, id string) (*puzzle.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Sweep(_ context.Context, cutoff time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, s := range m.sessions {
		if s.Created.Before(cutoff) {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}
