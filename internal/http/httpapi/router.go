package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"studio/internal/http/handlers"
	"studio/internal/infra"
	"studio/internal/middleware"
)

// NewRouter assembles the API surface with the shared middleware stack.
func NewRouter(app *handlers.App, cfg *infra.Config, logger infra.Logger, lookup middleware.CountryLookup) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(logger),
		middleware.CORS(cfg.AllowedOrigins),
		middleware.I18N(cfg.DefaultLocale, lookup),
	)

	r.Get("/v1/healthz", app.Health)

	limited := middleware.RateLimit(cfg.RateLimitPerMin, time.Minute)

	r.Route("/v1/images", func(r chi.Router) {
		r.With(limited).Post("/generate", app.ImagesGenerate)
		r.With(limited).Post("/understand", app.ImagesUnderstand)
		r.Post("/compose", app.ImagesCompose)
		r.Get("/artifact", app.ImagesArtifact)
		r.Get("/artifact.zip", app.ImagesArtifactZip)
	})

	return r
}
