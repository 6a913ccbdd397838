package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Kennygunderman/state-of-health-be/internal/middleware"
	"github.com/Kennygunderman/state-of-health-be/internal/models"
	"github.com/Kennygunderman/state-of-health-be/internal/service"
	"github.com/Kennygunderman/state-of-health-be/internal/stats"
)

// WorkoutService defines the workout operations required by the
// WorkoutHandler.
type WorkoutService interface {
	CreateWorkout(ctx context.Context, userID string, date time.Time, dailyExercises []models.DailyExercise) (*models.WorkoutDay, error)
	UpdateWorkout(ctx context.Context, userID, workoutID string, date time.Time, updatedAt int64, dailyExercises []models.DailyExercise) (time.Time, error)
	GetWorkoutByDate(ctx context.Context, userID string, date time.Time) (*models.WorkoutDay, error)
	ListWorkouts(ctx context.Context, userID string, page, limit int) (*service.WorkoutPage, error)
	GetWorkoutSummary(ctx context.Context, userID string, page, limit int) (*service.SummaryPage, error)
	GetWeeklySummary(ctx context.Context, userID string, numOfWeeks int) ([]stats.WeekCompletion, error)
}

// WorkoutHandler handles HTTP requests for workout logging and
// summaries.
type WorkoutHandler struct {
	WorkoutService WorkoutService
}

// SetRequest is one set within a workout create/update payload.
type SetRequest struct {
	ID          string     `json:"id,omitempty"`
	Reps        int        `json:"reps"`
	Weight      float64    `json:"weight"`
	Completed   bool       `json:"completed"`
	SetNumber   *int       `json:"setNumber,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// DailyExerciseRequest is one exercise entry within a workout
// create/update payload.
type DailyExerciseRequest struct {
	ID         string       `json:"dailyExerciseId,omitempty"`
	ExerciseID string       `json:"exerciseId"`
	Sets       []SetRequest `json:"sets"`
}

// CreateWorkoutRequest is the JSON payload for POST /api/workouts.
type CreateWorkoutRequest struct {
	Date           string                 `json:"date"`
	DailyExercises []DailyExerciseRequest `json:"dailyExercises"`
}

// UpdateWorkoutRequest is the JSON payload for PUT /api/workouts/{id}.
type UpdateWorkoutRequest struct {
	Date           string                 `json:"date"`
	UpdatedAt      int64                  `json:"updatedAt"`
	DailyExercises []DailyExerciseRequest `json:"dailyExercises"`
}

// WorkoutResponse is the wire shape of a workout day.
type WorkoutResponse struct {
	ID             string                 `json:"id"`
	Date           string                 `json:"date"`
	UpdatedAt      int64                  `json:"updatedAt"`
	DailyExercises []models.DailyExercise `json:"dailyExercises"`
}

// CreateWorkout handles POST /api/workouts.
func (h *WorkoutHandler) CreateWorkout(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	var req CreateWorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "invalid body")
		return
	}
	date, ok := parseDate(w, req.Date)
	if !ok {
		return
	}
	if !validSets(w, req.DailyExercises) {
		return
	}

	day, err := h.WorkoutService.CreateWorkout(r.Context(), userID, date, toDailyExercises(req.DailyExercises))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toWorkoutResponse(day))
}

// UpdateWorkout handles PUT /api/workouts/{id}. The whole
// exercise/set subtree is replaced; the previous children are gone
// after this call.
func (h *WorkoutHandler) UpdateWorkout(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	workoutID := chi.URLParam(r, "id")

	var req UpdateWorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "invalid body")
		return
	}
	date, ok := parseDate(w, req.Date)
	if !ok {
		return
	}
	if !validSets(w, req.DailyExercises) {
		return
	}

	newDate, err := h.WorkoutService.UpdateWorkout(
		r.Context(), userID, workoutID, date, req.UpdatedAt, toDailyExercises(req.DailyExercises),
	)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"date": newDate.Format(models.DateFormat)})
}

// GetWorkout handles GET /api/workouts/{date}.
func (h *WorkoutHandler) GetWorkout(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	date, ok := parseDate(w, chi.URLParam(r, "date"))
	if !ok {
		return
	}

	day, err := h.WorkoutService.GetWorkoutByDate(r.Context(), userID, date)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toWorkoutResponse(day))
}

// ListWorkouts handles GET /api/workouts?page=&limit=.
func (h *WorkoutHandler) ListWorkouts(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	page, err := h.WorkoutService.ListWorkouts(r.Context(), userID, intQuery(r, "page", 1), intQuery(r, "limit", 10))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	workouts := make([]WorkoutResponse, 0, len(page.Workouts))
	for i := range page.Workouts {
		workouts = append(workouts, toWorkoutResponse(&page.Workouts[i]))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"workouts":   workouts,
		"total":      page.Total,
		"page":       page.Page,
		"totalPages": page.TotalPages,
	})
}

// GetSummary handles GET /api/workouts/summary?page=&limit=.
func (h *WorkoutHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	page, err := h.WorkoutService.GetWorkoutSummary(r.Context(), userID, intQuery(r, "page", 1), intQuery(r, "limit", 10))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// GetWeeklySummary handles GET /api/workouts/summary/weekly?numOfWeeks=.
func (h *WorkoutHandler) GetWeeklySummary(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	weeks, err := h.WorkoutService.GetWeeklySummary(r.Context(), userID, intQuery(r, "numOfWeeks", 8))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"weeks": weeks})
}

// validSets rejects payloads with negative reps or weight before they
// reach the service layer.
func validSets(w http.ResponseWriter, reqs []DailyExerciseRequest) bool {
	for _, de := range reqs {
		for _, s := range de.Sets {
			if s.Reps < 0 || s.Weight < 0 {
				writeValidationError(w, "reps and weight must be non-negative")
				return false
			}
		}
	}
	return true
}

func parseDate(w http.ResponseWriter, raw string) (time.Time, bool) {
	date, err := time.Parse(models.DateFormat, raw)
	if err != nil {
		writeValidationError(w, "invalid date, expected YYYY-MM-DD")
		return time.Time{}, false
	}
	return date, true
}

func toDailyExercises(reqs []DailyExerciseRequest) []models.DailyExercise {
	out := make([]models.DailyExercise, 0, len(reqs))
	for _, de := range reqs {
		sets := make([]models.ExerciseSet, 0, len(de.Sets))
		for _, s := range de.Sets {
			sets = append(sets, models.ExerciseSet{
				ID:          s.ID,
				Reps:        s.Reps,
				Weight:      s.Weight,
				Completed:   s.Completed,
				SetNumber:   s.SetNumber,
				CompletedAt: s.CompletedAt,
			})
		}
		out = append(out, models.DailyExercise{
			ID:         de.ID,
			ExerciseID: de.ExerciseID,
			Sets:       sets,
		})
	}
	return out
}

func toWorkoutResponse(day *models.WorkoutDay) WorkoutResponse {
	return WorkoutResponse{
		ID:             day.ID,
		Date:           day.Date.Format(models.DateFormat),
		UpdatedAt:      day.UpdatedAt,
		DailyExercises: day.DailyExercises,
	}
}
