// Package service implements the application use cases, delegating
// persistence to repository interfaces and aggregation to the stats
// package.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Kennygunderman/state-of-health-be/internal/models"
	"github.com/Kennygunderman/state-of-health-be/internal/stats"
)

// WorkoutRepository defines the persistence operations needed by the
// WorkoutService. Implementations must return full WorkoutDay graphs
// (daily exercises with resolved exercise snapshots and sets) and must
// persist create/replace operations atomically.
type WorkoutRepository interface {
	// GetByDate returns the workout day for an exact calendar date, or
	// models.ErrWorkoutNotFound.
	GetByDate(ctx context.Context, userID string, date time.Time) (*models.WorkoutDay, error)
	// Create persists the day together with its whole subtree.
	Create(ctx context.Context, day models.WorkoutDay) error
	// Replace overwrites date and updatedAt of an existing day owned by
	// day.UserID and swaps the entire child subtree. Returns
	// models.ErrWorkoutNotFound when no such day exists for that user.
	Replace(ctx context.Context, day models.WorkoutDay) error
	// List returns a date-descending page of workout days.
	List(ctx context.Context, userID string, limit, offset int) ([]models.WorkoutDay, error)
	// Count returns the total number of workout days for the user.
	Count(ctx context.Context, userID string) (int, error)
	// ListAll returns every workout day for the user, date-descending.
	ListAll(ctx context.Context, userID string) ([]models.WorkoutDay, error)
	// ListSince returns workout days with date >= since, date-descending.
	ListSince(ctx context.Context, userID string, since time.Time) ([]models.WorkoutDay, error)
}

// WorkoutService implements workout logging and summary use cases.
type WorkoutService struct {
	repo WorkoutRepository
	now  func() time.Time
}

// NewWorkoutService constructs a WorkoutService backed by the given
// repository.
func NewWorkoutService(repo WorkoutRepository) *WorkoutService {
	return &WorkoutService{repo: repo, now: time.Now}
}

// WorkoutPage is the pagination envelope for ListWorkouts.
type WorkoutPage struct {
	Workouts   []models.WorkoutDay `json:"workouts"`
	Total      int                 `json:"total"`
	Page       int                 `json:"page"`
	TotalPages int                 `json:"totalPages"`
}

// SummaryPage is the pagination envelope for GetWorkoutSummary. Total
// counts every day with positive tonnage, while Summaries holds only
// the requested page.
type SummaryPage struct {
	Summaries  []stats.DaySummary `json:"summaries"`
	Total      int                `json:"total"`
	Page       int                `json:"page"`
	TotalPages int                `json:"totalPages"`
}

// CreateWorkout persists a new workout day with its full exercise/set
// subtree. Fails with models.ErrWorkoutDayExists when the user already
// has a day logged for that date.
func (s *WorkoutService) CreateWorkout(
	ctx context.Context,
	userID string,
	date time.Time,
	dailyExercises []models.DailyExercise,
) (*models.WorkoutDay, error) {
	date = truncateToDate(date)
	if _, err := s.repo.GetByDate(ctx, userID, date); err == nil {
		return nil, models.ErrWorkoutDayExists
	} else if !errors.Is(err, models.ErrWorkoutNotFound) {
		return nil, err
	}

	day := models.WorkoutDay{
		ID:             uuid.NewString(),
		UserID:         userID,
		Date:           date,
		UpdatedAt:      1,
		DailyExercises: dailyExercises,
	}
	normalizeDay(&day)

	if err := s.repo.Create(ctx, day); err != nil {
		return nil, err
	}
	return &day, nil
}

// UpdateWorkout replaces the entire daily-exercise/set subtree of an
// existing workout day and overwrites its date and updatedAt. The
// updatedAt counter is advisory metadata from the caller; concurrent
// updates are last-write-wins. Returns the new date for caller
// convenience, or models.ErrWorkoutNotFound when the day does not exist
// or belongs to another user.
func (s *WorkoutService) UpdateWorkout(
	ctx context.Context,
	userID string,
	workoutID string,
	date time.Time,
	updatedAt int64,
	dailyExercises []models.DailyExercise,
) (time.Time, error) {
	day := models.WorkoutDay{
		ID:             workoutID,
		UserID:         userID,
		Date:           truncateToDate(date),
		UpdatedAt:      updatedAt,
		DailyExercises: dailyExercises,
	}
	normalizeDay(&day)

	if err := s.repo.Replace(ctx, day); err != nil {
		return time.Time{}, err
	}
	return day.Date, nil
}

// GetWorkoutByDate returns the workout day for an exact calendar date.
func (s *WorkoutService) GetWorkoutByDate(ctx context.Context, userID string, date time.Time) (*models.WorkoutDay, error) {
	return s.repo.GetByDate(ctx, userID, truncateToDate(date))
}

// ListWorkouts returns a date-descending page of workout days with the
// total count for envelope construction.
func (s *WorkoutService) ListWorkouts(ctx context.Context, userID string, page, limit int) (*WorkoutPage, error) {
	page, limit = clampPaging(page, limit)

	total, err := s.repo.Count(ctx, userID)
	if err != nil {
		return nil, err
	}

	workouts, err := s.repo.List(ctx, userID, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	return &WorkoutPage{
		Workouts:   workouts,
		Total:      total,
		Page:       page,
		TotalPages: totalPages(total, limit),
	}, nil
}

// GetWorkoutSummary summarizes a page of workout days. Total and page
// content come from the same filtered set: days without positive
// tonnage produce no summary and do not occupy page slots, so every
// qualifying day is reachable within TotalPages.
func (s *WorkoutService) GetWorkoutSummary(ctx context.Context, userID string, page, limit int) (*SummaryPage, error) {
	page, limit = clampPaging(page, limit)

	all, err := s.repo.ListAll(ctx, userID)
	if err != nil {
		return nil, err
	}
	summaries := make([]stats.DaySummary, 0, len(all))
	for _, day := range all {
		if summary := stats.SummarizeDay(day); summary != nil {
			summaries = append(summaries, *summary)
		}
	}
	total := len(summaries)

	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return &SummaryPage{
		Summaries:  summaries[start:end],
		Total:      total,
		Page:       page,
		TotalPages: totalPages(total, limit),
	}, nil
}

// GetWeeklySummary returns the weekly completion trend series for the
// last numOfWeeks weeks, most recent first.
func (s *WorkoutService) GetWeeklySummary(ctx context.Context, userID string, numOfWeeks int) ([]stats.WeekCompletion, error) {
	if numOfWeeks < 1 {
		numOfWeeks = 1
	}
	now := s.now()

	days, err := s.repo.ListSince(ctx, userID, stats.EarliestWeekStart(numOfWeeks, now))
	if err != nil {
		return nil, err
	}
	return stats.WeeklyCompletion(days, numOfWeeks, now), nil
}

// normalizeDay assigns ids and ordering to the subtree before persisting.
func normalizeDay(day *models.WorkoutDay) {
	for i := range day.DailyExercises {
		de := &day.DailyExercises[i]
		if de.ID == "" {
			de.ID = uuid.NewString()
		}
		de.WorkoutDayID = day.ID
		de.Order = i
		for j := range de.Sets {
			set := &de.Sets[j]
			if set.ID == "" {
				set.ID = uuid.NewString()
			}
			if !set.Completed {
				set.CompletedAt = nil
			}
		}
	}
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func clampPaging(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return page, limit
}

func totalPages(total, limit int) int {
	return (total + limit - 1) / limit
}
