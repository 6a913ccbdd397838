// Package db opens the PostgreSQL connection and bootstraps the schema.
package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    email TEXT UNIQUE NOT NULL,
    first_name TEXT,
    last_name TEXT
);

CREATE TABLE IF NOT EXISTS user_exercises (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL REFERENCES users(id),
    name TEXT NOT NULL,
    exercise_type TEXT NOT NULL,
    exercise_body_part TEXT NOT NULL,
    deleted_at TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS templates (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL REFERENCES users(id),
    name TEXT NOT NULL,
    tagline TEXT,
    exercise_ids TEXT[] NOT NULL DEFAULT '{}'
);

CREATE TABLE IF NOT EXISTS workout_days (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL REFERENCES users(id),
    date DATE NOT NULL,
    updated_at BIGINT NOT NULL DEFAULT 0,
    has_synced BOOLEAN NOT NULL DEFAULT FALSE,
    UNIQUE (user_id, date)
);

CREATE TABLE IF NOT EXISTS daily_exercises (
    id TEXT PRIMARY KEY,
    workout_day_id TEXT NOT NULL REFERENCES workout_days(id) ON DELETE CASCADE,
    exercise_id TEXT NOT NULL REFERENCES user_exercises(id),
    position INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS exercise_sets (
    id TEXT PRIMARY KEY,
    daily_exercise_id TEXT NOT NULL REFERENCES daily_exercises(id) ON DELETE CASCADE,
    ordinal INTEGER NOT NULL DEFAULT 0,
    reps INTEGER NOT NULL DEFAULT 0,
    weight DOUBLE PRECISION NOT NULL DEFAULT 0,
    completed BOOLEAN NOT NULL DEFAULT FALSE,
    set_number INTEGER,
    completed_at TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS idx_user_exercises_user_id ON user_exercises(user_id);
CREATE INDEX IF NOT EXISTS idx_templates_user_id ON templates(user_id);
CREATE INDEX IF NOT EXISTS idx_workout_days_user_date ON workout_days(user_id, date DESC);
CREATE INDEX IF NOT EXISTS idx_daily_exercises_day ON daily_exercises(workout_day_id);
CREATE INDEX IF NOT EXISTS idx_daily_exercises_exercise ON daily_exercises(exercise_id);
CREATE INDEX IF NOT EXISTS idx_exercise_sets_daily ON exercise_sets(daily_exercise_id);
`

// InitPostgres opens a connection with the given DSN, verifies it and
// applies the schema.
func InitPostgres(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return db, nil
}
