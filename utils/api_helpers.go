package utils

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
)

// RespondJSON sends a JSON response with the given status code and payload.
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// headers are already sent, nothing left to tell the client
		log.Error().Err(err).Msg("Error encoding JSON response")
	}
}

// RespondError sends a JSON error response and logs the error to the provided logger.
// If logger is nil, the message goes straight to the global logger.
func RespondError(w http.ResponseWriter, logger *strings.Builder, message string, status int) {
	if logger != nil {
		AddToLogMessage(logger, message)
	} else {
		log.Warn().Int("status", status).Msg(message)
	}
	RespondJSON(w, status, map[string]string{"error": message})
}
