package store

import (
	"sync"
	"time"

	"github.com/kuromame0210/ai-skincare-predictor/internal/domain"
)

const initialMessage = "upload received, preparing generation"

// SessionStore tracks generation progress per session identifier. State lives
// in process memory only; records survive until the process exits or an
// external housekeeper removes them.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.SessionRecord
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]domain.SessionRecord)}
}

// Initialize creates a fresh pending record for the id, overwriting any prior
// record. Re-submitting a session id resets its lifecycle.
func (s *SessionStore) Initialize(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = domain.SessionRecord{
		SessionID: id,
		Status:    domain.StatusPending,
		Progress:  0,
		Message:   initialMessage,
		CreatedAt: time.Now(),
	}
}

// Update applies a mutation to the existing record and swaps it in as a whole,
// so readers never observe a partially written record. Unknown ids and records
// already in a terminal state are left untouched.
func (s *SessionStore) Update(id string, apply func(*domain.SessionRecord)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.sessions[id]
	if !ok || rec.Status.Terminal() {
		return
	}
	apply(&rec)
	rec.SessionID = id
	s.sessions[id] = rec
}

// Get returns a copy of the record. Unknown ids yield a synthetic pending
// record so polling never errors.
func (s *SessionStore) Get(id string) domain.SessionRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if rec, ok := s.sessions[id]; ok {
		return rec
	}
	return domain.SessionRecord{
		SessionID: id,
		Status:    domain.StatusPending,
		Progress:  0,
		Message:   domain.ErrSessionNotFound.Error(),
	}
}

// Delete removes a record. Used by housekeeping only, never by the pipeline.
func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}
