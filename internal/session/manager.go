package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

const defaultTTL = 24 * time.Hour

// Manager hands out unique session identifiers and expires entries idle past
// the configured TTL. Expiry drops manager bookkeeping only; it never touches
// an in-flight pipeline run or its stores.
type Manager struct {
	mu     sync.Mutex
	active map[string]time.Time
	ttl    time.Duration
}

func NewManager(ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Manager{active: make(map[string]time.Time), ttl: ttl}
}

// NewSessionID returns a fresh identifier, guaranteed unique among the live
// sessions, and registers it.
func (m *Manager) NewSessionID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	for {
		id := uuid.NewString()
		if _, exists := m.active[id]; !exists {
			m.active[id] = time.Now()
			return id
		}
	}
}

// Register tracks a caller-supplied identifier.
func (m *Manager) Register(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active[id] = time.Now()
}

// Touch refreshes a session's last-activity timestamp. Unknown ids are
// ignored.
func (m *Manager) Touch(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.active[id]; ok {
		m.active[id] = time.Now()
	}
}

// IsActive reports whether the id is currently tracked.
func (m *Manager) IsActive(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.active[id]
	return ok
}

// Remove drops a session from tracking.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.active, id)
}

// Sweep removes sessions idle past the TTL and returns how many were dropped.
func (m *Manager) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	cutoff := time.Now().Add(-m.ttl)
	removed := 0
	for id, last := range m.active {
		if last.Before(cutoff) {
			delete(m.active, id)
			removed++
		}
	}
	return removed
}

// Run sweeps on the given interval until the context is cancelled.
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}
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
