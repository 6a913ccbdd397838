package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Kennygunderman/state-of-health-be/internal/middleware"
	"github.com/Kennygunderman/state-of-health-be/internal/models"
	"github.com/Kennygunderman/state-of-health-be/internal/service"
)

// ExerciseService defines the exercise and template operations required
// by the ExerciseHandler.
type ExerciseService interface {
	ListExercises(ctx context.Context, userID string) ([]service.ExerciseWithHistory, error)
	CreateExercise(ctx context.Context, userID, name, exerciseType, bodyPart string) (models.Exercise, error)
	DeleteExercise(ctx context.Context, userID, exerciseID string) error
	CreateTemplate(ctx context.Context, userID, name, tagline string, exerciseIDs []string) (models.Template, error)
	ListTemplates(ctx context.Context, userID string) ([]models.Template, error)
	DeleteTemplate(ctx context.Context, userID, templateID string) error
}

// ExerciseHandler handles HTTP requests for the exercise catalog and
// workout templates.
type ExerciseHandler struct {
	ExerciseService ExerciseService
}

// CreateExerciseRequest is the JSON payload for exercise creation.
type CreateExerciseRequest struct {
	Name             string `json:"name"`
	ExerciseType     string `json:"exerciseType"`
	ExerciseBodyPart string `json:"exerciseBodyPart"`
}

// CreateTemplateRequest is the JSON payload for template creation.
type CreateTemplateRequest struct {
	Name        string   `json:"name"`
	Tagline     string   `json:"tagline"`
	ExerciseIDs []string `json:"exerciseIds"`
}

// ListExercises handles GET /api/exercises.
func (h *ExerciseHandler) ListExercises(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	exercises, err := h.ExerciseService.ListExercises(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, exercises)
}

// CreateExercise handles POST /api/exercises.
func (h *ExerciseHandler) CreateExercise(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	var req CreateExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "invalid body")
		return
	}
	if req.Name == "" {
		writeValidationError(w, "name is required")
		return
	}

	exercise, err := h.ExerciseService.CreateExercise(r.Context(), userID, req.Name, req.ExerciseType, req.ExerciseBodyPart)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, exercise)
}

// DeleteExercise handles DELETE /api/exercises/{id}. Soft-deletes the
// exercise and strips it from referencing templates; workout history
// stays intact.
func (h *ExerciseHandler) DeleteExercise(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	exerciseID := chi.URLParam(r, "id")

	if err := h.ExerciseService.DeleteExercise(r.Context(), userID, exerciseID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"deletedId": exerciseID})
}

// ListTemplates handles GET /api/templates.
func (h *ExerciseHandler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	templates, err := h.ExerciseService.ListTemplates(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, templates)
}

// CreateTemplate handles POST /api/templates.
func (h *ExerciseHandler) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	var req CreateTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "invalid body")
		return
	}
	if req.Name == "" {
		writeValidationError(w, "name is required")
		return
	}

	template, err := h.ExerciseService.CreateTemplate(r.Context(), userID, req.Name, req.Tagline, req.ExerciseIDs)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, template)
}

// DeleteTemplate handles DELETE /api/templates/{id}.
func (h *ExerciseHandler) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	templateID := chi.URLParam(r, "id")

	if err := h.ExerciseService.DeleteTemplate(r.Context(), userID, templateID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"deletedId": templateID})
}
