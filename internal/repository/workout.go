package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/Kennygunderman/state-of-health-be/internal/models"
)

// PostgresWorkoutRepository implements workout day persistence against
// a PostgreSQL database. Reads return full WorkoutDay graphs with
// exercise snapshots resolved regardless of soft-delete status. All
// multi-row writes run in a single transaction so a failure never
// leaves a half-written subtree visible.
type PostgresWorkoutRepository struct {
	DB *sql.DB
}

// NewPostgresWorkoutRepository creates a PostgresWorkoutRepository
// using the provided *sql.DB.
func NewPostgresWorkoutRepository(db *sql.DB) *PostgresWorkoutRepository {
	return &PostgresWorkoutRepository{DB: db}
}

const selectDay = `SELECT id, user_id, date, updated_at, has_synced FROM workout_days`

// GetByDate fetches the workout day for an exact calendar date.
func (r *PostgresWorkoutRepository) GetByDate(ctx context.Context, userID string, date time.Time) (*models.WorkoutDay, error) {
	row := r.DB.QueryRowContext(ctx, selectDay+` WHERE user_id = $1 AND date = $2`, userID, date)

	var day models.WorkoutDay
	err := row.Scan(&day.ID, &day.UserID, &day.Date, &day.UpdatedAt, &day.HasSynced)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrWorkoutNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get workout by date: %w", err)
	}

	days := []models.WorkoutDay{day}
	if err := r.attachChildren(ctx, days); err != nil {
		return nil, err
	}
	return &days[0], nil
}

// Create persists a new workout day with its whole subtree atomically.
// A concurrent create for the same (user, date) surfaces as
// models.ErrWorkoutDayExists through the unique constraint.
func (r *PostgresWorkoutRepository) Create(ctx context.Context, day models.WorkoutDay) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO workout_days (id, user_id, date, updated_at, has_synced)
		VALUES ($1, $2, $3, $4, $5)
	`, day.ID, day.UserID, day.Date, day.UpdatedAt, day.HasSynced)
	if err != nil {
		if isUniqueViolation(err) {
			return models.ErrWorkoutDayExists
		}
		return fmt.Errorf("insert workout day: %w", err)
	}

	if err := insertChildren(ctx, tx, day); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Replace overwrites date and updatedAt of an existing day owned by
// day.UserID and swaps the entire child subtree: all prior daily
// exercises and sets are deleted and the supplied ones recreated.
func (r *PostgresWorkoutRepository) Replace(ctx context.Context, day models.WorkoutDay) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE workout_days SET date = $1, updated_at = $2
		WHERE id = $3 AND user_id = $4
	`, day.Date, day.UpdatedAt, day.ID, day.UserID)
	if err != nil {
		return fmt.Errorf("update workout day: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update workout day: %w", err)
	}
	if affected == 0 {
		return models.ErrWorkoutNotFound
	}

	// Full-replace semantics: sets cascade with their daily exercises.
	if _, err := tx.ExecContext(ctx, `DELETE FROM daily_exercises WHERE workout_day_id = $1`, day.ID); err != nil {
		return fmt.Errorf("delete daily exercises: %w", err)
	}

	if err := insertChildren(ctx, tx, day); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// List returns a date-descending page of full workout day graphs.
func (r *PostgresWorkoutRepository) List(ctx context.Context, userID string, limit, offset int) ([]models.WorkoutDay, error) {
	return r.listDays(ctx, selectDay+` WHERE user_id = $1 ORDER BY date DESC LIMIT $2 OFFSET $3`, userID, limit, offset)
}

// ListAll returns every workout day of the user, date-descending.
func (r *PostgresWorkoutRepository) ListAll(ctx context.Context, userID string) ([]models.WorkoutDay, error) {
	return r.listDays(ctx, selectDay+` WHERE user_id = $1 ORDER BY date DESC`, userID)
}

// ListSince returns workout days with date >= since, date-descending.
func (r *PostgresWorkoutRepository) ListSince(ctx context.Context, userID string, since time.Time) ([]models.WorkoutDay, error) {
	return r.listDays(ctx, selectDay+` WHERE user_id = $1 AND date >= $2 ORDER BY date DESC`, userID, since)
}

// Count returns the total number of workout days for the user.
func (r *PostgresWorkoutRepository) Count(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM workout_days WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count workout days: %w", err)
	}
	return count, nil
}

// Upsert inserts or refreshes a workout day and replaces the set lists
// of its daily exercises. Used by the legacy import job, which may run
// repeatedly over the same export.
func (r *PostgresWorkoutRepository) Upsert(ctx context.Context, day models.WorkoutDay) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO workout_days (id, user_id, date, updated_at, has_synced)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET has_synced = EXCLUDED.has_synced
	`, day.ID, day.UserID, day.Date, day.UpdatedAt, day.HasSynced)
	if err != nil {
		return fmt.Errorf("upsert workout day: %w", err)
	}

	for _, de := range day.DailyExercises {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO daily_exercises (id, workout_day_id, exercise_id, position)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (id) DO UPDATE SET
				workout_day_id = EXCLUDED.workout_day_id,
				exercise_id = EXCLUDED.exercise_id,
				position = EXCLUDED.position
		`, de.ID, day.ID, de.ExerciseID, de.Order)
		if err != nil {
			return fmt.Errorf("upsert daily exercise: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM exercise_sets WHERE daily_exercise_id = $1`, de.ID); err != nil {
			return fmt.Errorf("delete sets: %w", err)
		}
		if err := insertSets(ctx, tx, de); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *PostgresWorkoutRepository) listDays(ctx context.Context, query string, args ...any) ([]models.WorkoutDay, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list workout days: %w", err)
	}
	defer rows.Close()

	var days []models.WorkoutDay
	for rows.Next() {
		var day models.WorkoutDay
		if err := rows.Scan(&day.ID, &day.UserID, &day.Date, &day.UpdatedAt, &day.HasSynced); err != nil {
			return nil, fmt.Errorf("scan workout day: %w", err)
		}
		days = append(days, day)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachChildren(ctx, days); err != nil {
		return nil, err
	}
	return days, nil
}

// attachChildren loads daily exercises (with exercise snapshots) and
// sets for the given days in two batched queries.
func (r *PostgresWorkoutRepository) attachChildren(ctx context.Context, days []models.WorkoutDay) error {
	if len(days) == 0 {
		return nil
	}

	dayIDs := make([]string, len(days))
	dayIdx := make(map[string]int, len(days))
	for i, day := range days {
		dayIDs[i] = day.ID
		dayIdx[day.ID] = i
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT de.id, de.workout_day_id, de.exercise_id, de.position,
		       ex.id, ex.user_id, ex.name, ex.exercise_type, ex.exercise_body_part, ex.deleted_at
		FROM daily_exercises de
		JOIN user_exercises ex ON ex.id = de.exercise_id
		WHERE de.workout_day_id = ANY($1)
		ORDER BY de.position ASC, de.id ASC
	`, pq.Array(dayIDs))
	if err != nil {
		return fmt.Errorf("list daily exercises: %w", err)
	}
	defer rows.Close()

	var deIDs []string
	// daily exercise id -> position within its day's slice
	type childPos struct{ day, idx int }
	deIdx := make(map[string]childPos)
	for rows.Next() {
		var (
			de models.DailyExercise
			ex models.Exercise
		)
		if err := rows.Scan(
			&de.ID, &de.WorkoutDayID, &de.ExerciseID, &de.Order,
			&ex.ID, &ex.UserID, &ex.Name, &ex.ExerciseType, &ex.ExerciseBodyPart, &ex.DeletedAt,
		); err != nil {
			return fmt.Errorf("scan daily exercise: %w", err)
		}
		de.Exercise = &ex
		de.Sets = []models.ExerciseSet{}

		i := dayIdx[de.WorkoutDayID]
		days[i].DailyExercises = append(days[i].DailyExercises, de)

		deIDs = append(deIDs, de.ID)
		deIdx[de.ID] = childPos{day: i, idx: len(days[i].DailyExercises) - 1}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if len(deIDs) == 0 {
		return nil
	}

	setRows, err := r.DB.QueryContext(ctx, `
		SELECT id, daily_exercise_id, reps, weight, completed, set_number, completed_at
		FROM exercise_sets
		WHERE daily_exercise_id = ANY($1)
		ORDER BY ordinal ASC
	`, pq.Array(deIDs))
	if err != nil {
		return fmt.Errorf("list sets: %w", err)
	}
	defer setRows.Close()

	for setRows.Next() {
		var (
			set  models.ExerciseSet
			deID string
		)
		if err := setRows.Scan(&set.ID, &deID, &set.Reps, &set.Weight, &set.Completed, &set.SetNumber, &set.CompletedAt); err != nil {
			return fmt.Errorf("scan set: %w", err)
		}
		if pos, ok := deIdx[deID]; ok {
			de := &days[pos.day].DailyExercises[pos.idx]
			de.Sets = append(de.Sets, set)
		}
	}
	return setRows.Err()
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertChildren(ctx context.Context, tx execer, day models.WorkoutDay) error {
	for _, de := range day.DailyExercises {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO daily_exercises (id, workout_day_id, exercise_id, position)
			VALUES ($1, $2, $3, $4)
		`, de.ID, day.ID, de.ExerciseID, de.Order)
		if err != nil {
			return fmt.Errorf("insert daily exercise: %w", err)
		}
		if err := insertSets(ctx, tx, de); err != nil {
			return err
		}
	}
	return nil
}

func insertSets(ctx context.Context, tx execer, de models.DailyExercise) error {
	for i, set := range de.Sets {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO exercise_sets (id, daily_exercise_id, ordinal, reps, weight, completed, set_number, completed_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, set.ID, de.ID, i, set.Reps, set.Weight, set.Completed, set.SetNumber, set.CompletedAt)
		if err != nil {
			return fmt.Errorf("insert set: %w", err)
		}
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation"
}
