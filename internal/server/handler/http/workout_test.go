package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Kennygunderman/state-of-health-be/internal/models"
	"github.com/Kennygunderman/state-of-health-be/internal/service"
	"github.com/Kennygunderman/state-of-health-be/internal/stats"
)

// fakeWorkoutService implements WorkoutService for testing.
type fakeWorkoutService struct {
	day        *models.WorkoutDay
	page       *service.WorkoutPage
	summary    *service.SummaryPage
	weeks      []stats.WeekCompletion
	err        error
	gotUserID  string
	gotDate    time.Time
	gotWeeks   int
	gotUpdated int64
}

func (f *fakeWorkoutService) CreateWorkout(ctx context.Context, userID string, date time.Time, dailyExercises []models.DailyExercise) (*models.WorkoutDay, error) {
	f.gotUserID = userID
	f.gotDate = date
	return f.day, f.err
}

func (f *fakeWorkoutService) UpdateWorkout(ctx context.Context, userID, workoutID string, date time.Time, updatedAt int64, dailyExercises []models.DailyExercise) (time.Time, error) {
	f.gotUserID = userID
	f.gotUpdated = updatedAt
	if f.err != nil {
		return time.Time{}, f.err
	}
	return date, nil
}

func (f *fakeWorkoutService) GetWorkoutByDate(ctx context.Context, userID string, date time.Time) (*models.WorkoutDay, error) {
	f.gotUserID = userID
	f.gotDate = date
	return f.day, f.err
}

func (f *fakeWorkoutService) ListWorkouts(ctx context.Context, userID string, page, limit int) (*service.WorkoutPage, error) {
	f.gotUserID = userID
	return f.page, f.err
}

func (f *fakeWorkoutService) GetWorkoutSummary(ctx context.Context, userID string, page, limit int) (*service.SummaryPage, error) {
	f.gotUserID = userID
	return f.summary, f.err
}

func (f *fakeWorkoutService) GetWeeklySummary(ctx context.Context, userID string, numOfWeeks int) ([]stats.WeekCompletion, error) {
	f.gotUserID = userID
	f.gotWeeks = numOfWeeks
	return f.weeks, f.err
}

func testDay() *models.WorkoutDay {
	return &models.WorkoutDay{
		ID:        "day-1",
		UserID:    "user-1",
		Date:      time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		UpdatedAt: 1,
		DailyExercises: []models.DailyExercise{
			{
				ID:         "de-1",
				ExerciseID: "ex-1",
				Exercise:   &models.Exercise{ID: "ex-1", Name: "Squat"},
				Sets:       []models.ExerciseSet{{ID: "set-1", Reps: 5, Weight: 225, Completed: true}},
			},
		},
	}
}

func TestCreateWorkoutHandler(t *testing.T) {
	svc := &fakeWorkoutService{day: testDay()}
	router := newTestRouter(nil, svc, nil)

	body := `{"date":"2025-06-15","dailyExercises":[{"exerciseId":"ex-1","sets":[{"reps":5,"weight":225,"completed":true}]}]}`
	rr := doJSON(t, router, http.MethodPost, "/api/workouts", body)

	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d; want %d: %s", rr.Code, http.StatusCreated, rr.Body.String())
	}
	if svc.gotUserID != "user-1" {
		t.Errorf("userID = %q; want user-1", svc.gotUserID)
	}

	var resp WorkoutResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID != "day-1" || resp.Date != "2025-06-15" {
		t.Errorf("response = %+v", resp)
	}
}

func TestCreateWorkoutHandler_Conflict(t *testing.T) {
	svc := &fakeWorkoutService{err: models.ErrWorkoutDayExists}
	router := newTestRouter(nil, svc, nil)

	rr := doJSON(t, router, http.MethodPost, "/api/workouts", `{"date":"2025-06-15"}`)

	if rr.Code != http.StatusConflict {
		t.Errorf("status = %d; want %d", rr.Code, http.StatusConflict)
	}
	if !strings.Contains(rr.Body.String(), "workout day already exists") {
		t.Errorf("body = %q", rr.Body.String())
	}
}

func TestCreateWorkoutHandler_BadDate(t *testing.T) {
	router := newTestRouter(nil, &fakeWorkoutService{}, nil)

	rr := doJSON(t, router, http.MethodPost, "/api/workouts", `{"date":"June 15"}`)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d; want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestCreateWorkoutHandler_NegativeSetValues(t *testing.T) {
	svc := &fakeWorkoutService{day: testDay()}
	router := newTestRouter(nil, svc, nil)

	body := `{"date":"2025-06-15","dailyExercises":[{"exerciseId":"ex-1","sets":[{"reps":-10,"weight":-100,"completed":true}]}]}`
	rr := doJSON(t, router, http.MethodPost, "/api/workouts", body)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d; want %d: %s", rr.Code, http.StatusBadRequest, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "non-negative") {
		t.Errorf("body = %q", rr.Body.String())
	}
	if svc.gotUserID != "" {
		t.Error("service was called for an invalid payload")
	}
}

func TestUpdateWorkoutHandler_NegativeSetValues(t *testing.T) {
	svc := &fakeWorkoutService{}
	router := newTestRouter(nil, svc, nil)

	body := `{"date":"2025-06-16","updatedAt":2,"dailyExercises":[{"exerciseId":"ex-1","sets":[{"reps":5,"weight":-225,"completed":true}]}]}`
	rr := doJSON(t, router, http.MethodPut, "/api/workouts/day-1", body)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d; want %d: %s", rr.Code, http.StatusBadRequest, rr.Body.String())
	}
	if svc.gotUserID != "" {
		t.Error("service was called for an invalid payload")
	}
}

func TestUpdateWorkoutHandler(t *testing.T) {
	svc := &fakeWorkoutService{}
	router := newTestRouter(nil, svc, nil)

	rr := doJSON(t, router, http.MethodPut, "/api/workouts/day-1", `{"date":"2025-06-16","updatedAt":7,"dailyExercises":[]}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d; want %d: %s", rr.Code, http.StatusOK, rr.Body.String())
	}
	if svc.gotUpdated != 7 {
		t.Errorf("updatedAt = %d; want 7", svc.gotUpdated)
	}
	if !strings.Contains(rr.Body.String(), `"date":"2025-06-16"`) {
		t.Errorf("body = %q; want new date", rr.Body.String())
	}
}

func TestUpdateWorkoutHandler_NotFound(t *testing.T) {
	svc := &fakeWorkoutService{err: models.ErrWorkoutNotFound}
	router := newTestRouter(nil, svc, nil)

	rr := doJSON(t, router, http.MethodPut, "/api/workouts/missing", `{"date":"2025-06-16"}`)

	if rr.Code != http.StatusNotFound {
		t.Errorf("status = %d; want %d", rr.Code, http.StatusNotFound)
	}
}

func TestGetWorkoutHandler(t *testing.T) {
	svc := &fakeWorkoutService{day: testDay()}
	router := newTestRouter(nil, svc, nil)

	rr := doJSON(t, router, http.MethodGet, "/api/workouts/2025-06-15", "")

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d; want %d", rr.Code, http.StatusOK)
	}
	want := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	if !svc.gotDate.Equal(want) {
		t.Errorf("date = %v; want %v", svc.gotDate, want)
	}
}

func TestListWorkoutsHandler(t *testing.T) {
	svc := &fakeWorkoutService{
		page: &service.WorkoutPage{
			Workouts:   []models.WorkoutDay{*testDay()},
			Total:      11,
			Page:       1,
			TotalPages: 2,
		},
	}
	router := newTestRouter(nil, svc, nil)

	rr := doJSON(t, router, http.MethodGet, "/api/workouts?page=1&limit=10", "")

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d; want %d", rr.Code, http.StatusOK)
	}
	var envelope struct {
		Workouts   []WorkoutResponse `json:"workouts"`
		Total      int               `json:"total"`
		TotalPages int               `json:"totalPages"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Total != 11 || envelope.TotalPages != 2 || len(envelope.Workouts) != 1 {
		t.Errorf("envelope = %+v", envelope)
	}
}

func TestGetWeeklySummaryHandler_DefaultWeeks(t *testing.T) {
	svc := &fakeWorkoutService{weeks: []stats.WeekCompletion{}}
	router := newTestRouter(nil, svc, nil)

	rr := doJSON(t, router, http.MethodGet, "/api/workouts/summary/weekly", "")

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d; want %d", rr.Code, http.StatusOK)
	}
	if svc.gotWeeks != 8 {
		t.Errorf("numOfWeeks = %d; want default 8", svc.gotWeeks)
	}
}

func TestWorkoutRoutes_RequireAuth(t *testing.T) {
	router := newTestRouter(nil, &fakeWorkoutService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/workouts", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d; want %d", rr.Code, http.StatusUnauthorized)
	}
}
