// Package session keeps planning sessions in memory for the frontends that
// serve more than one caller. Each session owns one planner.Engine and is
// guarded by its own mutex; nothing is persisted.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ajitpratap0/tripplanner/internal/metrics"
	"github.com/ajitpratap0/tripplanner/internal/planner"
)

var (
	// ErrNotFound is returned when a session ID is unknown or has expired.
	ErrNotFound = errors.New("session not found")

	// ErrLimitReached is returned by Create when the store is full.
	ErrLimitReached = errors.New("session limit reached")
)

type entry struct {
	mu       sync.Mutex
	engine   *planner.Engine
	lastUsed time.Time
	removed  bool // set under mu once the entry leaves the map
}

// Store is a concurrency-safe registry of planning sessions.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*entry
	max      int
	opts     []planner.Option
	now      func() time.Time
	logger   *slog.Logger
}

// NewStore creates a Store holding at most max sessions (0 = unlimited).
// opts are applied to every engine the store creates.
func NewStore(maxSessions int, logger *slog.Logger, opts ...planner.Option) *Store {
	return &Store{
		sessions: make(map[string]*entry),
		max:      maxSessions,
		opts:     opts,
		now:      time.Now,
		logger:   logger,
	}
}

// SetClock overrides the time source. It is meant for tests.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Create starts a new empty session and returns its ID.
func (s *Store) Create() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.max > 0 && len(s.sessions) >= s.max {
		return "", fmt.Errorf("creating session: %w (max %d)", ErrLimitReached, s.max)
	}

	id := uuid.NewString()
	s.sessions[id] = &entry{
		engine:   planner.New(s.opts...),
		lastUsed: s.now(),
	}
	metrics.Inc(metrics.SessionsCreated)
	s.logger.Debug("session: created", "id", id)
	return id, nil
}

// Do runs fn with exclusive access to the session's engine.
func (s *Store) Do(id string, fn func(e *planner.Engine) error) error {
	s.mu.RLock()
	ent, ok := s.sessions[id]
	now := s.now
	s.mu.RUnlock()
	if !ok {
		return ErrNotFound
	}

	ent.mu.Lock()
	defer ent.mu.Unlock()
	if ent.removed {
		return ErrNotFound
	}
	ent.lastUsed = now()
	return fn(ent.engine)
}

// Delete removes a session.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ent, ok := s.sessions[id]
	if !ok {
		return ErrNotFound
	}
	ent.mu.Lock()
	ent.removed = true
	ent.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// DeleteIfIdle removes the session only if it is still unused for longer
// than ttl, re-checking under the session's lock. It reports whether the
// session was removed.
func (s *Store) DeleteIfIdle(id string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ent, ok := s.sessions[id]
	if !ok {
		return false, ErrNotFound
	}

	ent.mu.Lock()
	defer ent.mu.Unlock()
	if !ent.lastUsed.Before(s.now().Add(-ttl)) {
		return false, nil
	}
	ent.removed = true
	delete(s.sessions, id)
	return true, nil
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Idle returns the IDs of sessions unused for longer than ttl.
func (s *Store) Idle(ttl time.Duration) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cutoff := s.now().Add(-ttl)
	var ids []string
	for id, ent := range s.sessions {
		ent.mu.Lock()
		last := ent.lastUsed
		ent.mu.Unlock()
		if last.Before(cutoff) {
			ids = append(ids, id)
		}
	}
	return ids
}
