package domain

import "time"

// Status enumerates the lifecycle states of a generation session.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusError      Status = "error"
)

// Terminal reports whether a session in this status can still change.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusError
}

// SessionRecord is the authoritative progress ledger for one generation
// request. Progress is a percentage and never decreases while the session is
// live; on error it is reset to zero and the Error field carries the detail.
type SessionRecord struct {
	SessionID   string    `json:"session_id"`
	Status      Status    `json:"status"`
	Progress    int       `json:"progress"`
	Message     string    `json:"message"`
	Error       string    `json:"error,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	StartedAt   time.Time `json:"started_at,omitempty"`
	CompletedAt time.Time `json:"completed_at,omitempty"`
	FailedAt    time.Time `json:"failed_at,omitempty"`
}

// ResultRecord captures the artifacts of a completed session. It is written
// once, when the session reaches StatusCompleted, and never mutated.
type ResultRecord struct {
	SessionID    string    `json:"session_id"`
	OriginalURL  string    `json:"original_url"`
	GeneratedURL string    `json:"generated_url"`
	ModelUsed    string    `json:"model_used"`
	CreatedAt    time.Time `json:"created_at"`
	CompletedAt  time.Time `json:"completed_at"`
}
