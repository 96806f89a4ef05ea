package store

import (
	"sync"

	"github.com/kuromame0210/ai-skincare-predictor/internal/domain"
)

// ResultStore holds the completed-artifact record per session identifier.
// A record appears exactly once, when a session finishes, and its absence is
// meaningful: callers combine it with the session status to tell "still
// processing" from "failed" from "done".
type ResultStore struct {
	mu      sync.RWMutex
	results map[string]domain.ResultRecord
}

func NewResultStore() *ResultStore {
	return &ResultStore{results: make(map[string]domain.ResultRecord)}
}

func (s *ResultStore) Put(id string, rec domain.ResultRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec.SessionID = id
	s.results[id] = rec
}

// Get returns the record and whether one exists. A missing record is not an
// error.
func (s *ResultStore) Get(id string) (domain.ResultRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.results[id]
	return rec, ok
}

// Delete removes a record. Used by housekeeping only, never by the pipeline.
func (s *ResultStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.results, id)
}
