package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/raushankrgupta/music-profile-api/models"
	"github.com/raushankrgupta/music-profile-api/store"
	"github.com/raushankrgupta/music-profile-api/utils"
)

// operation names the action in id-related error messages.
type operation struct {
	name string // "Missing id for <name>"
	verb string // "Local id cannot be <verb>"
}

var (
	opCreate = operation{name: "create", verb: "created"}
	opRead   = operation{name: "read", verb: "fetched"}
	opUpdate = operation{name: "update", verb: "updated"}
	opDelete = operation{name: "delete", verb: "deleted"}
)

// writeServiceError maps service and store errors onto HTTP statuses:
// 400 for bad input, 404 for missing documents, 500 for everything else.
func writeServiceError(w http.ResponseWriter, logger *strings.Builder, err error, op operation) {
	var payloadErr *models.PayloadError
	switch {
	case errors.As(err, &payloadErr):
		utils.RespondError(w, logger, payloadErr.Msg, http.StatusBadRequest)
	case errors.Is(err, store.ErrMissingID):
		utils.RespondError(w, logger, "Missing id for "+op.name, http.StatusBadRequest)
	case errors.Is(err, store.ErrLocalID):
		utils.RespondError(w, logger, "Local id cannot be "+op.verb, http.StatusBadRequest)
	case errors.Is(err, store.ErrInvalidID):
		utils.RespondError(w, logger, "Invalid id", http.StatusBadRequest)
	case errors.Is(err, store.ErrNotFound):
		utils.RespondError(w, logger, "Not found", http.StatusNotFound)
	case errors.Is(err, store.ErrUnavailable), errors.Is(err, context.DeadlineExceeded):
		utils.AddToLogMessage(logger, fmt.Sprintf("Store error: %v", err))
		utils.RespondError(w, logger, "Profile store unavailable", http.StatusInternalServerError)
	default:
		utils.AddToLogMessage(logger, fmt.Sprintf("Unexpected error: %v", err))
		utils.RespondError(w, logger, "Internal server error", http.StatusInternalServerError)
	}
}
