package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"genboard/internal/http/handlers"
	"genboard/internal/middleware"
)

// NewRouter wires the HTTP surface. countryLookup may be nil when no GeoIP
// database is configured.
func NewRouter(app *handlers.App, countryLookup middleware.CountryLookup) http.Handler {
	r := chi.NewRouter()
	r.Use(
		chimw.RealIP,
		middleware.RequestID,
		chimw.Recoverer,
		middleware.Logger(app.Logger),
		middleware.CORS(app.Config.AllowedOrigins),
		middleware.Locale("en", countryLookup),
		middleware.RateLimit(app.Config.RateLimitPerMin, time.Minute),
	)

	r.Get("/v1/healthz", app.Health)

	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthJWT(app.Config.JWTSecret))

		r.Route("/v1/contents", func(r chi.Router) {
			r.Post("/generate", app.ContentsGenerate)
			r.Get("/", app.ContentsList)
			r.Get("/export", app.ContentsExport)
			r.Get("/{content_id}", app.ContentStatus)
		})

		r.Get("/v1/me", app.Me)
		r.Get("/v1/credits", app.Credits)
		r.Get("/v1/stats", app.Stats)

		r.Post("/v1/admin/credentials", app.AdminSetCredential)
	})

	return r
}
