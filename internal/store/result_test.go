package store

import (
	"testing"
	"time"

	"github.com/kuromame0210/ai-skincare-predictor/internal/domain"
)

func TestResultStoreGetBeforePut(t *testing.T) {
	s := NewResultStore()
	if _, ok := s.Get("abc"); ok {
		t.Fatalf("expected no result before put")
	}
}

func TestResultStorePutThenGet(t *testing.T) {
	s := NewResultStore()
	s.Put("abc", domain.ResultRecord{
		OriginalURL:  "http://localhost:3001/images/original_abc.png",
		GeneratedURL: "http://localhost:3001/images/generated_abc.jpg",
		ModelUsed:    "gpt-image-1",
		CompletedAt:  time.Now(),
	})
	for i := 0; i < 3; i++ {
		rec, ok := s.Get("abc")
		if !ok {
			t.Fatalf("expected result on read %d", i)
		}
		if rec.SessionID != "abc" {
			t.Fatalf("session id = %q, want abc", rec.SessionID)
		}
		if rec.ModelUsed != "gpt-image-1" {
			t.Fatalf("model = %q, want gpt-image-1", rec.ModelUsed)
		}
	}
}
