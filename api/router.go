package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/raushankrgupta/music-profile-api/utils"
)

// NewRouter wires every route. The profile routes are also served under
// /api and /api/profiles, the paths the browser front-ends call.
func NewRouter(h *ProfileHandler, allowedOrigin string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(utils.RequestIDMiddleware)
	r.Use(utils.LatencyMiddleware)
	r.Use(utils.MetricsMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(utils.CORSMiddleware(allowedOrigin))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.RespondError(w, nil, "Not found", http.StatusNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.RespondError(w, nil, "Method not allowed", http.StatusMethodNotAllowed)
	})

	r.Get("/health", h.HealthHandler)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/suggestions", h.SuggestionsHandler)

	profileRoutes := func(r chi.Router) {
		r.Get("/", h.GetProfiles)
		r.Post("/", h.CreateProfile)
		r.Put("/", h.UpdateProfile)
		r.Delete("/", h.DeleteProfile)

		r.Get("/{id}", h.GetProfiles)
		r.Put("/{id}", h.UpdateProfile)
		r.Delete("/{id}", h.DeleteProfile)
		r.Get("/{id}/recommendations", h.RecommendationsHandler)
	}
	r.Route("/profiles", profileRoutes)
	r.Route("/api/profiles", profileRoutes)
	r.Route("/api", profileRoutes)

	return r
}
