package store

import (
	"fmt"
	"sync"
	"testing"

	"github.com/kuromame0210/ai-skincare-predictor/internal/domain"
)

func TestGetUnknownSessionReturnsSentinel(t *testing.T) {
	s := NewSessionStore()
	rec := s.Get("missing")
	if rec.Status != domain.StatusPending {
		t.Fatalf("status = %q, want pending", rec.Status)
	}
	if rec.Progress != 0 {
		t.Fatalf("progress = %d, want 0", rec.Progress)
	}
	if rec.SessionID != "missing" {
		t.Fatalf("session id = %q, want missing", rec.SessionID)
	}
}

func TestInitializeResetsExistingRecord(t *testing.T) {
	s := NewSessionStore()
	s.Initialize("abc")
	s.Update("abc", func(r *domain.SessionRecord) {
		r.Status = domain.StatusCompleted
		r.Progress = 100
	})
	s.Initialize("abc")
	rec := s.Get("abc")
	if rec.Status != domain.StatusPending || rec.Progress != 0 {
		t.Fatalf("record not reset: %+v", rec)
	}
	if rec.CreatedAt.IsZero() {
		t.Fatalf("expected created timestamp")
	}
}

func TestUpdateUnknownIDIsNoOp(t *testing.T) {
	s := NewSessionStore()
	s.Update("ghost", func(r *domain.SessionRecord) {
		r.Status = domain.StatusProcessing
		r.Progress = 50
	})
	rec := s.Get("ghost")
	if rec.Status != domain.StatusPending || rec.Progress != 0 {
		t.Fatalf("unexpected record after update of unknown id: %+v", rec)
	}
}

func TestTerminalStatusIsAbsorbing(t *testing.T) {
	for _, terminal := range []domain.Status{domain.StatusCompleted, domain.StatusError} {
		s := NewSessionStore()
		s.Initialize("abc")
		s.Update("abc", func(r *domain.SessionRecord) {
			r.Status = terminal
		})
		s.Update("abc", func(r *domain.SessionRecord) {
			r.Status = domain.StatusProcessing
			r.Progress = 10
		})
		rec := s.Get("abc")
		if rec.Status != terminal {
			t.Fatalf("terminal status %q was overwritten to %q", terminal, rec.Status)
		}
	}
}

func TestUpdateMergesIntoExistingRecord(t *testing.T) {
	s := NewSessionStore()
	s.Initialize("abc")
	s.Update("abc", func(r *domain.SessionRecord) {
		r.Status = domain.StatusProcessing
		r.Progress = 30
		r.Message = "submitting"
	})
	rec := s.Get("abc")
	if rec.Status != domain.StatusProcessing || rec.Progress != 30 || rec.Message != "submitting" {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if rec.CreatedAt.IsZero() {
		t.Fatalf("created timestamp lost on update")
	}
}

func TestConcurrentSessionsDoNotInterfere(t *testing.T) {
	s := NewSessionStore()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		id := fmt.Sprintf("session-%d", i)
		s.Initialize(id)
		wg.Add(1)
		go func(id string, progress int) {
			defer wg.Done()
			s.Update(id, func(r *domain.SessionRecord) {
				r.Status = domain.StatusProcessing
				r.Progress = progress
			})
			_ = s.Get(id)
		}(id, i)
	}
	wg.Wait()
	for i := 0; i < 32; i++ {
		id := fmt.Sprintf("session-%d", i)
		rec := s.Get(id)
		if rec.Progress != i {
			t.Fatalf("%s progress = %d, want %d", id, rec.Progress, i)
		}
	}
}
