package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mwantia/pathways/pkg/log"
	"github.com/mwantia/pathways/pkg/metrics"
	"github.com/mwantia/pathways/pkg/tracker"
)

var ErrNotFound = errors.New("session not found")

// Manager owns every live session and drops those idle for longer than
// the configured timeout.
type Manager struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session

	idle    time.Duration
	now     func() time.Time
	log     log.LoggerService
	metrics *metrics.Metrics
}

type Option func(*Manager)

func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func WithLogger(logger log.LoggerService) Option {
	return func(m *Manager) { m.log = logger }
}

func WithMetrics(mt *metrics.Metrics) Option {
	return func(m *Manager) { m.metrics = mt }
}

// NewManager keeps sessions alive for idle after their last lookup.
func NewManager(idle time.Duration, opts ...Option) *Manager {
	m := &Manager{
		sessions: map[uuid.UUID]*Session{},
		idle:     idle,
		now:      time.Now,
		log:      log.Discard(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Create starts a session with default state for the given student type.
func (m *Manager) Create(student tracker.StudentType) *Session {
	now := m.now()
	s := &Session{
		id:       uuid.New(),
		created:  now,
		now:      m.now,
		state:    newState(student, m.now),
		lastSeen: now,
	}

	m.mu.Lock()
	m.sessions[s.id] = s
	count := len(m.sessions)
	m.mu.Unlock()

	m.metrics.SetSessionsActive(count)
	m.log.With("session", s.id, "active", count).Debug("Created %s session", student)
	return s
}

// Get looks up a session and marks it as seen.
func (m *Manager) Get(id string) (*Session, error) {
	key, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("session '%s': %w", id, ErrNotFound)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[key]
	if !ok {
		return nil, fmt.Errorf("session '%s': %w", id, ErrNotFound)
	}
	s.lastSeen = m.now()
	return s, nil
}

// Delete ends a session. Unknown ids return ErrNotFound.
func (m *Manager) Delete(id string) error {
	key, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("session '%s': %w", id, ErrNotFound)
	}

	m.mu.Lock()
	_, ok := m.sessions[key]
	delete(m.sessions, key)
	count := len(m.sessions)
	m.mu.Unlock()

	if !ok {
		return fmt.Errorf("session '%s': %w", id, ErrNotFound)
	}
	m.metrics.SetSessionsActive(count)
	m.log.With("session", key, "active", count).Debug("Deleted session")
	return nil
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.sessions)
}

// Sweep drops every session that has not been seen within the idle timeout
// and returns how many were dropped.
func (m *Manager) Sweep() int {
	cutoff := m.now().Add(-m.idle)

	m.mu.Lock()
	dropped := 0
	for id, s := range m.sessions {
		if s.lastSeen.Before(cutoff) {
			delete(m.sessions, id)
			dropped++
		}
	}
	count := len(m.sessions)
	m.mu.Unlock()

	if dropped > 0 {
		m.metrics.IncrementSessionsExpired(dropped)
		m.metrics.SetSessionsActive(count)
		m.log.With("active", count).Debug("Dropped %d idle sessions", dropped)
	}
	return dropped
}

// Run sweeps idle sessions every interval until ctx is done.
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Sweep()
		}
	}
}
