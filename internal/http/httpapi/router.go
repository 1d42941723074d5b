package httpapi

import (
	stdhttp "net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"pixlift/internal/http/handlers"
	authmw "pixlift/internal/middleware"
)

func NewRouter(app *handlers.App, dispatchToken string) stdhttp.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer, middleware.Logger)

	// Health
	r.Get("/v1/healthz", app.Health)

	r.Route("/v1/jobs", func(r chi.Router) {
		r.Post("/", app.EnqueueJob)
		r.Get("/{id}", app.GetJob)
	})

	r.Get("/v1/stats", app.Stats)

	// Time-driven trigger; the credential check runs before any store access.
	r.With(authmw.RequireToken(dispatchToken)).Post("/internal/dispatch", app.Dispatch)

	return r
}
