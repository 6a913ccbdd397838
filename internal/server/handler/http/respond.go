// Package http provides the HTTP boundary: request/response shaping,
// validation and error-to-status mapping for the workout API.
package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/Kennygunderman/state-of-health-be/internal/models"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeServiceError maps tagged service failures to status codes.
// Anything unrecognized is an internal failure and must not leak
// detail to the response body.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrWorkoutNotFound),
		errors.Is(err, models.ErrExerciseNotFound),
		errors.Is(err, models.ErrTemplateNotFound),
		errors.Is(err, models.ErrUserNotFound):
		writeJSON(w, http.StatusNotFound, errorBody(err.Error()))
	case errors.Is(err, models.ErrUserExists),
		errors.Is(err, models.ErrEmailExists),
		errors.Is(err, models.ErrWorkoutDayExists):
		writeJSON(w, http.StatusConflict, errorBody(err.Error()))
	default:
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}

func writeValidationError(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorBody(msg))
}

func errorBody(msg string) map[string]string {
	return map[string]string{"error": msg}
}

// intQuery reads a positive integer query parameter, falling back when
// absent or malformed.
func intQuery(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
