package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"toolshed-backend/internal/domain"
	"toolshed-backend/internal/logger"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: message}})
}

// respondServiceError maps the domain failure taxonomy onto HTTP statuses.
// Raw internal error text never reaches the client; only the short
// user-safe reason carried by the wrapped sentinel does.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		respondError(w, http.StatusNotFound, "not_found", "Not found")
	case errors.Is(err, domain.ErrForbidden):
		respondError(w, http.StatusForbidden, "forbidden", userMessage(err, "You are not allowed to do that"))
	case errors.Is(err, domain.ErrInvalidTransition):
		respondError(w, http.StatusConflict, "invalid_transition", userMessage(err, "That action is not available right now"))
	case errors.Is(err, domain.ErrConflictRetry):
		respondError(w, http.StatusConflict, "conflict_retry", "Someone else got there first; please try again")
	default:
		logger.Error("Unhandled service error", "error", err)
		respondError(w, http.StatusInternalServerError, "internal", "Something went wrong")
	}
}

// userMessage strips the sentinel prefix ("forbidden: ", "invalid
// transition: ") from a wrapped error, leaving the user-safe reason.
func userMessage(err error, fallback string) string {
	msg := err.Error()
	for _, sentinel := range []error{domain.ErrForbidden, domain.ErrInvalidTransition} {
		prefix := sentinel.Error() + ": "
		if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
			return msg[len(prefix):]
		}
	}
	if msg == domain.ErrForbidden.Error() || msg == domain.ErrInvalidTransition.Error() {
		return fallback
	}
	return fallback
}
