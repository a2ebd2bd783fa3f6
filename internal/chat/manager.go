package chat

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrTooManySessions = errors.New("too many active sessions")
)

// ManagerConfig bounds the number and lifetime of sessions.
type ManagerConfig struct {
	TTL         time.Duration
	MaxSessions int
	Options     Options
}

// Manager keeps live sessions in memory and evicts idle ones.
type Manager struct {
	ctx       context.Context
	responder Responder
	cfg       ManagerConfig

	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
}

// NewManager creates a manager. Sessions it creates close when ctx is done.
func NewManager(ctx context.Context, responder Responder, cfg ManagerConfig) *Manager {
	return &Manager{
		ctx:       ctx,
		responder: responder,
		cfg:       cfg,
		sessions:  make(map[uuid.UUID]*Session),
	}
}

// Create starts a new session, evicting expired ones first if the limit is hit.
func (m *Manager) Create() (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cfg.MaxSessions > 0 && len(m.sessions) >= m.cfg.MaxSessions {
		m.sweepLocked(m.now())
		if len(m.sessions) >= m.cfg.MaxSessions {
			return nil, ErrTooManySessions
		}
	}

	s := NewSession(m.ctx, m.responder, m.cfg.Options)
	m.sessions[s.ID] = s
	return s, nil
}

// Get returns a live session.
func (m *Manager) Get(id uuid.UUID) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok || s.Closed() {
		delete(m.sessions, id)
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Delete closes and forgets a session.
func (m *Manager) Delete(id uuid.UUID) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	s.Close()
	return nil
}

// Len returns the number of tracked sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Sweep closes sessions idle for longer than the TTL and returns how many
// were evicted.
func (m *Manager) Sweep(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sweepLocked(now)
}

func (m *Manager) sweepLocked(now time.Time) int {
	evicted := 0
	for id, s := range m.sessions {
		expired := m.cfg.TTL > 0 && now.Sub(s.LastActive()) > m.cfg.TTL
		if expired || s.Closed() {
			s.Close()
			delete(m.sessions, id)
			evicted++
		}
	}
	return evicted
}

// Run sweeps every interval until ctx is done, then closes all sessions.
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.CloseAll()
			return
		case <-ticker.C:
			if n := m.Sweep(m.now()); n > 0 {
				log.Printf("[chat] evicted %d idle sessions", n)
			}
		}
	}
}

// CloseAll closes every session.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, s := range m.sessions {
		s.Close()
		delete(m.sessions, id)
	}
}

func (m *Manager) now() time.Time {
	if m.cfg.Options.Now != nil {
		return m.cfg.Options.Now()
	}
	return time.Now()
}
