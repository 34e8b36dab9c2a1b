package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Masty1988/my-social-flow/internal/http/handlers"
	"github.com/Masty1988/my-social-flow/internal/middleware"
)

// NewRouter assembles the middleware chain and routes. The generation routes
// sit behind the access gate; health stays public.
func NewRouter(app *handlers.App, countryLookup middleware.CountryLookup) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		middleware.Logger(app.Logger),
		middleware.CORS(app.Config.CORSOrigins),
		middleware.Locale(app.Config.DefaultLocale, countryLookup),
		middleware.RateLimit(app.Config.RateLimitPerMin, time.Minute),
	)

	r.Get("/v1/healthz", app.Health)

	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthGate(app.Config.JWTSecret, app.Config.AllowedUsers))
		r.Route("/v1/generate", func(r chi.Router) {
			r.Post("/content", app.GenerateContent)
			r.Post("/from-image", app.GenerateFromImage)
			r.Post("/image", app.GenerateImage)
		})
		r.Post("/v1/analyze/image", app.AnalyzeImage)
	})

	return r
}
