package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/raushankrgupta/music-profile-api/utils"
)

// RecommendationsHandler handles GET /profiles/{id}/recommendations
func (h *ProfileHandler) RecommendationsHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(r.Context(), &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Recommendations API]")

	id := chi.URLParam(r, "id")
	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Recommending for profile %s", id))

	// AI suggestions may take longer than a plain lookup
	ctx, cancel := context.WithTimeout(r.Context(), 3*h.timeout)
	defer cancel()

	rec, err := h.svc.Recommend(ctx, id)
	if err != nil {
		writeServiceError(w, &logMessageBuilder, err, opRead)
		return
	}
	utils.RespondJSON(w, http.StatusOK, rec)
}

// SuggestionsHandler handles GET /suggestions
func (h *ProfileHandler) SuggestionsHandler(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.svc.Suggestions())
}

// HealthHandler handles GET /health
func (h *ProfileHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.svc.Health(ctx); err != nil {
		utils.RespondError(w, nil, "Profile store unavailable", http.StatusServiceUnavailable)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
