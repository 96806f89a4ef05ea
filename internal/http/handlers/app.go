package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/kuromame0210/ai-skincare-predictor/internal/infra"
	"github.com/kuromame0210/ai-skincare-predictor/internal/middleware"
	"github.com/kuromame0210/ai-skincare-predictor/internal/pipeline"
	"github.com/kuromame0210/ai-skincare-predictor/internal/session"
	"github.com/kuromame0210/ai-skincare-predictor/internal/storage"
)

// App bundles the handler dependencies.
type App struct {
	Config       *infra.Config
	Logger       *infra.Logger
	Orchestrator *pipeline.Orchestrator
	Sessions     *session.Manager
	Storage      *storage.FileStore
}

func NewApp(cfg *infra.Config, logger *infra.Logger, orch *pipeline.Orchestrator, sessions *session.Manager, fileStore *storage.FileStore) *App {
	return &App{
		Config:       cfg,
		Logger:       logger,
		Orchestrator: orch,
		Sessions:     sessions,
		Storage:      fileStore,
	}
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type envelope struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *apiError `json:"error,omitempty"`
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// error writes a failure envelope with the message resolved for the caller's
// locale.
func (a *App) error(w http.ResponseWriter, r *http.Request, status int, code, msgKey string) {
	locale := middleware.LocaleFromContext(r.Context())
	a.json(w, status, envelope{Success: false, Error: &apiError{Code: code, Message: message(locale, msgKey)}})
}

// errorWithMessage writes a failure envelope carrying a literal message, used
// when the detail comes from pipeline state rather than the catalog.
func (a *App) errorWithMessage(w http.ResponseWriter, status int, code, msg string) {
	a.json(w, status, envelope{Success: false, Error: &apiError{Code: code, Message: msg}})
}

// NotFound is the router's fallback handler.
func (a *App) NotFound(w http.ResponseWriter, r *http.Request) {
	a.error(w, r, http.StatusNotFound, "not_found", "not_found")
}
