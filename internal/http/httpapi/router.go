package httpapi

import (
	stdhttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/kuromame0210/ai-skincare-predictor/internal/http/handlers"
	"github.com/kuromame0210/ai-skincare-predictor/internal/middleware"
)

func NewRouter(app *handlers.App) stdhttp.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP, chimw.Recoverer)
	r.Use(middleware.RequestID)
	if app.Logger != nil {
		r.Use(middleware.Logger(*app.Logger))
	}
	r.Use(middleware.CORS(nil))
	r.Use(middleware.I18N("ja"))

	r.Get("/health", app.Health)

	r.Route("/api", func(r chi.Router) {
		r.With(middleware.RateLimit(app.Config.RateLimitPerMin, time.Minute)).
			Post("/upload", app.Upload)
		r.Get("/status/{sessionID}", app.Status)
		r.Get("/result/{sessionID}", app.Result)
		r.Get("/result/{sessionID}/download", app.ResultBundle)
	})

	// Stored artifacts are served under the same prefix the result URLs use.
	fileServer := stdhttp.StripPrefix("/images/", stdhttp.FileServer(stdhttp.Dir(app.Storage.BasePath())))
	r.Get("/images/*", fileServer.ServeHTTP)

	r.NotFound(app.NotFound)

	return r
}
