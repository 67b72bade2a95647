package httpapi

import (
	stdhttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/rdpaiva/future-self/internal/http/handlers"
	"github.com/rdpaiva/future-self/internal/infra"
	"github.com/rdpaiva/future-self/internal/middleware"
)

func NewRouter(app *handlers.App, cfg *infra.Config, log infra.Logger) stdhttp.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(log),
		middleware.CORS(cfg.AllowedOrigins),
		middleware.AuthJWT(cfg.JWTSecret),
	)

	r.Get("/healthz", app.Health)

	// Local object storage is served directly; hosted buckets serve their
	// own public URLs.
	if cfg.StorageEndpoint == "" {
		files := stdhttp.StripPrefix("/static/", stdhttp.FileServer(stdhttp.Dir(cfg.StoragePath)))
		r.Get("/static/*", files.ServeHTTP)
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/dreams", app.Dreams)

		r.With(middleware.RateLimit(cfg.RateLimitPerMin, time.Minute)).
			Post("/generate", app.Generate)

		r.Route("/manifestations", func(r chi.Router) {
			r.Post("/", app.ManifestationsCreate)
			r.Get("/", app.ManifestationsList)
			r.Get("/export", app.ManifestationsExport)
			r.Delete("/{id}", app.ManifestationsDelete)
		})

		r.Route("/photos", func(r chi.Router) {
			r.Post("/", app.PhotosUpload)
			r.Get("/", app.PhotosList)
		})

		r.Route("/session", func(r chi.Router) {
			r.Post("/preselect", app.PreselectPut)
			r.Get("/preselect", app.PreselectTake)
		})
	})

	return r
}
