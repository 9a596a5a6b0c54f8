package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/raushankrgupta/music-profile-api/models"
	"github.com/raushankrgupta/music-profile-api/service"
	"github.com/raushankrgupta/music-profile-api/utils"
)

// maxBodyBytes bounds a profile request body (1MB)
const maxBodyBytes = 1 << 20

type ProfileHandler struct {
	svc     *service.ProfileService
	timeout time.Duration
}

func NewProfileHandler(svc *service.ProfileService, timeout time.Duration) *ProfileHandler {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ProfileHandler{svc: svc, timeout: timeout}
}

// profileID returns the id from the path, falling back to the query string.
func profileID(r *http.Request) string {
	if id := chi.URLParam(r, "id"); id != "" {
		return id
	}
	return strings.TrimSpace(r.URL.Query().Get("id"))
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	return io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
}

// CreateProfile handles POST /profiles
func (h *ProfileHandler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(r.Context(), &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Create Profile API]")

	body, err := readBody(w, r)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Invalid request body", http.StatusBadRequest)
		return
	}

	payload, err := models.ParsePayload(body)
	if err != nil {
		writeServiceError(w, &logMessageBuilder, err, opCreate)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	profile, err := h.svc.Create(ctx, payload.Fields)
	if err != nil {
		writeServiceError(w, &logMessageBuilder, err, opCreate)
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Profile %s created", profile.ID.Hex()))
	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Saved",
		"id":      profile.ID.Hex(),
	})
}

// GetProfiles handles GET /profiles, /profiles?id=, /profiles/{id} and
// /profiles?search=.
func (h *ProfileHandler) GetProfiles(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(r.Context(), &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Get Profiles API]")

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if id := profileID(r); id != "" {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Fetching profile %s", id))
		profile, err := h.svc.Get(ctx, id)
		if err != nil {
			writeServiceError(w, &logMessageBuilder, err, opRead)
			return
		}
		utils.RespondJSON(w, http.StatusOK, profile)
		return
	}

	query := r.URL.Query()
	limit := 0
	if limitStr := query.Get("limit"); limitStr != "" {
		l, err := strconv.Atoi(limitStr)
		if err != nil || l <= 0 {
			utils.RespondError(w, &logMessageBuilder, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = l
	}

	search := query.Get("search")
	profiles, err := h.svc.List(ctx, search, limit)
	if err != nil {
		writeServiceError(w, &logMessageBuilder, err, opRead)
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Listed %d profiles (search=%q)", len(profiles), search))
	utils.RespondJSON(w, http.StatusOK, profiles)
}

// UpdateProfile handles PUT /profiles?id= and PUT /profiles/{id}. The id may
// also be sent in the body.
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(r.Context(), &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Update Profile API]")

	body, err := readBody(w, r)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Invalid request body", http.StatusBadRequest)
		return
	}

	payload, err := models.ParsePayload(body)
	if err != nil {
		writeServiceError(w, &logMessageBuilder, err, opUpdate)
		return
	}

	id := profileID(r)
	if id == "" {
		id = payload.ID
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	profile, err := h.svc.Update(ctx, id, payload.Fields)
	if err != nil {
		writeServiceError(w, &logMessageBuilder, err, opUpdate)
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Profile %s updated", id))
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Updated",
		"profile": profile,
	})
}

// DeleteProfile handles DELETE /profiles?id=, DELETE /profiles/{id} and a
// JSON body carrying the id.
func (h *ProfileHandler) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(r.Context(), &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Delete Profile API]")

	id := profileID(r)
	if id == "" {
		body, err := readBody(w, r)
		if err != nil {
			utils.RespondError(w, &logMessageBuilder, "Invalid request body", http.StatusBadRequest)
			return
		}
		payload, err := models.ParsePayload(body)
		if err != nil {
			writeServiceError(w, &logMessageBuilder, err, opDelete)
			return
		}
		id = payload.ID
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.svc.Delete(ctx, id); err != nil {
		writeServiceError(w, &logMessageBuilder, err, opDelete)
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Profile %s deleted", id))
	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "Deleted"})
}
