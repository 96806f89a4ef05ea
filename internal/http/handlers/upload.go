package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/kuromame0210/ai-skincare-predictor/internal/middleware"
)

var allowedUploadTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/jpg":  {},
	"image/png":  {},
}

type uploadData struct {
	SessionID   string `json:"sessionId"`
	Status      string `json:"status"`
	OriginalURL string `json:"originalUrl"`
	Message     string `json:"message"`
}

// Upload accepts a portrait photo, registers a session and fires the
// generation pipeline. The response returns immediately; callers poll the
// status endpoint for progress.
func (a *App) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, a.Config.MaxUploadBytes)
	if err := r.ParseMultipartForm(a.Config.MaxUploadBytes); err != nil {
		a.error(w, r, http.StatusRequestEntityTooLarge, "file_too_large", "too_large")
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		a.error(w, r, http.StatusBadRequest, "no_file", "no_file")
		return
	}
	defer file.Close()

	contentType := strings.ToLower(strings.TrimSpace(header.Header.Get("Content-Type")))
	if _, ok := allowedUploadTypes[contentType]; !ok {
		a.error(w, r, http.StatusBadRequest, "unsupported_type", "unsupported_type")
		return
	}

	raw, err := io.ReadAll(file)
	if err != nil {
		a.error(w, r, http.StatusInternalServerError, "upload_error", "upload_error")
		return
	}

	sessionID := strings.TrimSpace(r.FormValue("sessionId"))
	if sessionID == "" {
		sessionID = a.Sessions.NewSessionID()
	} else {
		a.Sessions.Register(sessionID)
	}

	a.Logger.Info().
		Str("session_id", sessionID).
		Str("filename", header.Filename).
		Int64("bytes", header.Size).
		Msg("image uploaded")

	a.Orchestrator.Submit(sessionID, raw)

	locale := middleware.LocaleFromContext(r.Context())
	a.json(w, http.StatusOK, envelope{Success: true, Data: uploadData{
		SessionID:   sessionID,
		Status:      "processing",
		OriginalURL: a.Orchestrator.OriginalURL(sessionID),
		Message:     message(locale, "upload_accepted"),
	}})
}
