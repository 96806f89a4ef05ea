package session

import (
	"testing"
	"time"
)

func TestNewSessionIDsAreUnique(t *testing.T) {
	m := NewManager(0)
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id := m.NewSessionID()
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = struct{}{}
		if !m.IsActive(id) {
			t.Fatalf("id %s not registered", id)
		}
	}
}

func TestSweepRemovesIdleSessions(t *testing.T) {
	m := NewManager(10 * time.Millisecond)
	stale := m.NewSessionID()
	time.Sleep(20 * time.Millisecond)
	fresh := m.NewSessionID()

	if removed := m.Sweep(); removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	if m.IsActive(stale) {
		t.Fatalf("stale session survived sweep")
	}
	if !m.IsActive(fresh) {
		t.Fatalf("fresh session removed")
	}
}

func TestTouchKeepsSessionAlive(t *testing.T) {
	m := NewManager(30 * time.Millisecond)
	id := m.NewSessionID()
	time.Sleep(20 * time.Millisecond)
	m.Touch(id)
	time.Sleep(20 * time.Millisecond)
	if removed := m.Sweep(); removed != 0 {
		t.Fatalf("removed = %d, want 0", removed)
	}
	if !m.IsActive(id) {
		t.Fatalf("touched session expired")
	}
}

func TestRegisterAndRemove(t *testing.T) {
	m := NewManager(0)
	m.Register("caller-supplied")
	if !m.IsActive("caller-supplied") {
		t.Fatalf("registered id not active")
	}
	m.Remove("caller-supplied")
	if m.IsActive("caller-supplied") {
		t.Fatalf("removed id still active")
	}
}
