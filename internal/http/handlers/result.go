package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kuromame0210/ai-skincare-predictor/internal/domain"
	"github.com/kuromame0210/ai-skincare-predictor/internal/middleware"
	"github.com/kuromame0210/ai-skincare-predictor/internal/pipeline"
	"github.com/kuromame0210/ai-skincare-predictor/pkg/zip"
)

type resultData struct {
	SessionID    string    `json:"sessionId"`
	Status       string    `json:"status"`
	OriginalURL  string    `json:"originalUrl"`
	GeneratedURL string    `json:"generatedUrl"`
	ModelUsed    string    `json:"modelUsed"`
	CreatedAt    time.Time `json:"createdAt"`
	CompletedAt  time.Time `json:"completedAt"`
}

// Result returns the completed artifacts. Before completion it answers 202
// while the pipeline is live and 500 with the session's error detail after a
// failure, so clients can render all three outcomes from this endpoint plus
// the status poll.
func (a *App) Result(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	rec, ok := a.Orchestrator.Result(sessionID)
	if !ok {
		status := a.Orchestrator.Status(sessionID)
		if status.Status == domain.StatusError {
			msg := status.Message
			if msg == "" {
				msg = message(middleware.LocaleFromContext(r.Context()), "generation_error")
			}
			a.errorWithMessage(w, http.StatusInternalServerError, "generation_error", msg)
			return
		}
		a.error(w, r, http.StatusAccepted, "processing", "processing")
		return
	}

	a.json(w, http.StatusOK, envelope{Success: true, Data: resultData{
		SessionID:    sessionID,
		Status:       string(domain.StatusCompleted),
		OriginalURL:  rec.OriginalURL,
		GeneratedURL: rec.GeneratedURL,
		ModelUsed:    rec.ModelUsed,
		CreatedAt:    rec.CreatedAt,
		CompletedAt:  rec.CompletedAt,
	}})
}

// ResultBundle serves both artifacts of a completed session as one zip, for
// the side-by-side comparison download.
func (a *App) ResultBundle(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if _, ok := a.Orchestrator.Result(sessionID); !ok {
		a.error(w, r, http.StatusNotFound, "not_found", "not_found")
		return
	}

	var assets []zip.Asset
	for _, entry := range []struct {
		key  string
		mime string
	}{
		{pipeline.OriginalKey(sessionID), "image/png"},
		{pipeline.GeneratedKey(sessionID), "image/jpeg"},
	} {
		data, err := a.Storage.Read(r.Context(), entry.key)
		if err != nil {
			a.error(w, r, http.StatusInternalServerError, "internal", "internal")
			return
		}
		assets = append(assets, zip.Asset{Filename: entry.key, MIME: entry.mime, Data: data})
	}

	archive := zip.ArchiveAssets(assets)
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=comparison-%s.zip", sessionID))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(archive)
}
