package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Kennygunderman/state-of-health-be/internal/models"
	"github.com/Kennygunderman/state-of-health-be/internal/stats"
)

// ExerciseRepository defines the persistence operations needed by the
// ExerciseService for the exercise catalog.
type ExerciseRepository interface {
	// ListActive returns the user's non-deleted exercises, name-ascending.
	ListActive(ctx context.Context, userID string) ([]models.Exercise, error)
	// Create persists a new exercise.
	Create(ctx context.Context, exercise models.Exercise) error
	// SoftDelete marks the exercise deleted. Returns
	// models.ErrExerciseNotFound when the exercise does not exist or is
	// not owned by the user.
	SoftDelete(ctx context.Context, userID, exerciseID string, deletedAt time.Time) error
}

// TemplateRepository defines the persistence operations for workout
// templates.
type TemplateRepository interface {
	ListByUser(ctx context.Context, userID string) ([]models.Template, error)
	Create(ctx context.Context, template models.Template) error
	// Update overwrites the template, including its exercise id list.
	Update(ctx context.Context, template models.Template) error
	// Delete removes the template. Returns models.ErrTemplateNotFound
	// when it does not exist or is not owned by the user.
	Delete(ctx context.Context, userID, templateID string) error
}

// WorkoutHistory is the read path the ExerciseService uses to annotate
// exercises with their most recent completed sets.
type WorkoutHistory interface {
	ListAll(ctx context.Context, userID string) ([]models.WorkoutDay, error)
}

// ExerciseService implements the exercise and template use cases.
type ExerciseService struct {
	exercises ExerciseRepository
	templates TemplateRepository
	workouts  WorkoutHistory
	now       func() time.Time
}

// NewExerciseService constructs an ExerciseService.
func NewExerciseService(exercises ExerciseRepository, templates TemplateRepository, workouts WorkoutHistory) *ExerciseService {
	return &ExerciseService{
		exercises: exercises,
		templates: templates,
		workouts:  workouts,
		now:       time.Now,
	}
}

// ExerciseWithHistory is an exercise annotated with the completed sets
// of its most recent completed session.
type ExerciseWithHistory struct {
	models.Exercise
	LastCompletedSets []models.ExerciseSet `json:"lastCompletedSets,omitempty"`
}

// ListExercises returns the user's active exercises, name-ascending,
// each annotated with the latest completed-set snapshot from the
// workout history.
func (s *ExerciseService) ListExercises(ctx context.Context, userID string) ([]ExerciseWithHistory, error) {
	exercises, err := s.exercises.ListActive(ctx, userID)
	if err != nil {
		return nil, err
	}

	days, err := s.workouts.ListAll(ctx, userID)
	if err != nil {
		return nil, err
	}
	history := make(map[string][]models.DailyExercise)
	for _, day := range days {
		for _, de := range day.DailyExercises {
			history[de.ExerciseID] = append(history[de.ExerciseID], de)
		}
	}

	out := make([]ExerciseWithHistory, 0, len(exercises))
	for _, ex := range exercises {
		out = append(out, ExerciseWithHistory{
			Exercise:          ex,
			LastCompletedSets: stats.LatestCompletedSets(history[ex.ID]),
		})
	}
	return out, nil
}

// CreateExercise adds a new exercise to the user's catalog.
func (s *ExerciseService) CreateExercise(ctx context.Context, userID, name, exerciseType, bodyPart string) (models.Exercise, error) {
	exercise := models.Exercise{
		ID:               uuid.NewString(),
		UserID:           userID,
		Name:             name,
		ExerciseType:     exerciseType,
		ExerciseBodyPart: bodyPart,
	}
	if err := s.exercises.Create(ctx, exercise); err != nil {
		return models.Exercise{}, err
	}
	return exercise, nil
}

// DeleteExercise soft-deletes the exercise and removes its id from
// every template of the user that references it. Workout history is
// never touched: historical daily exercises keep resolving the deleted
// exercise by id.
func (s *ExerciseService) DeleteExercise(ctx context.Context, userID, exerciseID string) error {
	if err := s.exercises.SoftDelete(ctx, userID, exerciseID, s.now()); err != nil {
		return err
	}

	templates, err := s.templates.ListByUser(ctx, userID)
	if err != nil {
		return err
	}
	for _, tpl := range templates {
		kept := make([]string, 0, len(tpl.ExerciseIDs))
		for _, id := range tpl.ExerciseIDs {
			if id != exerciseID {
				kept = append(kept, id)
			}
		}
		if len(kept) == len(tpl.ExerciseIDs) {
			continue
		}
		tpl.ExerciseIDs = kept
		if err := s.templates.Update(ctx, tpl); err != nil {
			return err
		}
	}
	return nil
}

// CreateTemplate adds a new workout template.
func (s *ExerciseService) CreateTemplate(ctx context.Context, userID, name, tagline string, exerciseIDs []string) (models.Template, error) {
	if exerciseIDs == nil {
		exerciseIDs = []string{}
	}
	template := models.Template{
		ID:          uuid.NewString(),
		UserID:      userID,
		Name:        name,
		Tagline:     tagline,
		ExerciseIDs: exerciseIDs,
	}
	if err := s.templates.Create(ctx, template); err != nil {
		return models.Template{}, err
	}
	return template, nil
}

// ListTemplates returns the user's templates.
func (s *ExerciseService) ListTemplates(ctx context.Context, userID string) ([]models.Template, error) {
	return s.templates.ListByUser(ctx, userID)
}

// DeleteTemplate removes a template owned by the user.
func (s *ExerciseService) DeleteTemplate(ctx context.Context, userID, templateID string) error {
	return s.templates.Delete(ctx, userID, templateID)
}
