package httpapi

import (
	stdhttp "net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"moa/internal/http/handlers"
	"moa/internal/metrics"
	"moa/internal/middleware"
)

// Options configures the shared middleware stack.
type Options struct {
	JWTSecret       string
	RateLimitPerMin int
	CORSOrigins     []string
	Logger          zerolog.Logger
}

func NewRouter(app *handlers.App, opts Options) stdhttp.Handler {
	r := chi.NewRouter()
	r.Use(
		chimw.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(opts.Logger),
		middleware.CORS(opts.CORSOrigins),
	)

	r.Get("/v1/healthz", app.Health)
	r.Get("/v1/openapi.json", app.OpenAPIJSON)
	r.Get("/v1/docs", app.OpenAPIDocs)
	r.Handle("/metrics", metrics.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(opts.RateLimitPerMin))
		r.Use(middleware.AuthJWT(opts.JWTSecret))

		r.Route("/v1/events/{eventID}", func(r chi.Router) {
			r.Get("/participation", app.ParticipationInfo)
			r.Post("/participations", app.Join)
			r.Post("/complete", app.Complete)
			r.Get("/proof", app.GetProof)
			r.Post("/proof", app.RegisterProof)
			r.Post("/share-tokens", app.CreateShareToken)
		})
		r.Get("/v1/share/{token}", app.ResolveShareToken)

		r.Route("/v1/admin", func(r chi.Router) {
			r.Use(middleware.RequireRole(middleware.RoleAdmin))
			r.Post("/scheduler/tick", app.SchedulerTick)
			r.Post("/events/{eventID}/cancel", app.CancelEvent)
		})
	})

	return r
}
