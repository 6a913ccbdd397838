package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Kennygunderman/state-of-health-be/internal/models"
)

// PostgresExerciseRepository implements exercise catalog persistence
// against a PostgreSQL database. Exercises are soft-deleted: listing
// filters deleted rows, lookup by id does not, so historical workouts
// keep resolving deleted exercises.
type PostgresExerciseRepository struct {
	DB *sql.DB
}

// NewPostgresExerciseRepository creates a PostgresExerciseRepository
// using the provided *sql.DB.
func NewPostgresExerciseRepository(db *sql.DB) *PostgresExerciseRepository {
	return &PostgresExerciseRepository{DB: db}
}

// ListActive returns the user's non-deleted exercises, name-ascending.
func (r *PostgresExerciseRepository) ListActive(ctx context.Context, userID string) ([]models.Exercise, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, user_id, name, exercise_type, exercise_body_part, deleted_at
		FROM user_exercises
		WHERE user_id = $1 AND deleted_at IS NULL
		ORDER BY name ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	defer rows.Close()

	var exercises []models.Exercise
	for rows.Next() {
		var ex models.Exercise
		if err := rows.Scan(&ex.ID, &ex.UserID, &ex.Name, &ex.ExerciseType, &ex.ExerciseBodyPart, &ex.DeletedAt); err != nil {
			return nil, fmt.Errorf("scan exercise: %w", err)
		}
		exercises = append(exercises, ex)
	}
	return exercises, rows.Err()
}

// GetByID fetches an exercise by id without filtering on delete status.
// This is the weak-reference resolution path used for historical
// workout display.
func (r *PostgresExerciseRepository) GetByID(ctx context.Context, id string) (*models.Exercise, error) {
	var ex models.Exercise
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, user_id, name, exercise_type, exercise_body_part, deleted_at
		FROM user_exercises WHERE id = $1
	`, id).Scan(&ex.ID, &ex.UserID, &ex.Name, &ex.ExerciseType, &ex.ExerciseBodyPart, &ex.DeletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrExerciseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get exercise: %w", err)
	}
	return &ex, nil
}

// Create inserts a new exercise row.
func (r *PostgresExerciseRepository) Create(ctx context.Context, exercise models.Exercise) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO user_exercises (id, user_id, name, exercise_type, exercise_body_part)
		VALUES ($1, $2, $3, $4, $5)
	`, exercise.ID, exercise.UserID, exercise.Name, exercise.ExerciseType, exercise.ExerciseBodyPart)
	if err != nil {
		return fmt.Errorf("create exercise: %w", err)
	}
	return nil
}

// SoftDelete marks the user's exercise as deleted. Already-deleted
// exercises and exercises of other users report
// models.ErrExerciseNotFound.
func (r *PostgresExerciseRepository) SoftDelete(ctx context.Context, userID, exerciseID string, deletedAt time.Time) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE user_exercises SET deleted_at = $1
		WHERE id = $2 AND user_id = $3 AND deleted_at IS NULL
	`, deletedAt, exerciseID, userID)
	if err != nil {
		return fmt.Errorf("soft delete exercise: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("soft delete exercise: %w", err)
	}
	if affected == 0 {
		return models.ErrExerciseNotFound
	}
	return nil
}

// Upsert inserts an exercise or refreshes its fields on conflict. Used
// by the legacy import job.
func (r *PostgresExerciseRepository) Upsert(ctx context.Context, exercise models.Exercise) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO user_exercises (id, user_id, name, exercise_type, exercise_body_part)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			user_id = EXCLUDED.user_id,
			name = EXCLUDED.name,
			exercise_type = EXCLUDED.exercise_type,
			exercise_body_part = EXCLUDED.exercise_body_part
	`, exercise.ID, exercise.UserID, exercise.Name, exercise.ExerciseType, exercise.ExerciseBodyPart)
	if err != nil {
		return fmt.Errorf("upsert exercise: %w", err)
	}
	return nil
}
