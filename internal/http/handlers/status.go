package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kuromame0210/ai-skincare-predictor/internal/domain"
)

type statusData struct {
	SessionID string        `json:"sessionId"`
	Status    domain.Status `json:"status"`
	Progress  int           `json:"progress"`
	Message   string        `json:"message"`
	Error     string        `json:"error,omitempty"`
}

// Status reports a session's progress. Unknown ids return the pending
// sentinel, never an error, so clients can poll before the upload lands.
func (a *App) Status(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	rec := a.Orchestrator.Status(sessionID)
	a.Sessions.Touch(sessionID)

	a.json(w, http.StatusOK, envelope{Success: true, Data: statusData{
		SessionID: sessionID,
		Status:    rec.Status,
		Progress:  rec.Progress,
		Message:   rec.Message,
		Error:     rec.Error,
	}})
}
