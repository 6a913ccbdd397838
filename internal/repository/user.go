// Package repository provides PostgreSQL persistence for users,
// exercises, templates and workout days.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Kennygunderman/state-of-health-be/internal/models"
)

// PostgresUserRepository implements user persistence against a
// PostgreSQL database.
type PostgresUserRepository struct {
	DB *sql.DB
}

// NewPostgresUserRepository creates a PostgresUserRepository using the
// provided *sql.DB.
func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{DB: db}
}

// GetByID fetches a user by id. Returns models.ErrUserNotFound when no
// such user exists.
func (r *PostgresUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.getOne(ctx, `SELECT id, email, COALESCE(first_name, ''), COALESCE(last_name, '') FROM users WHERE id = $1`, id)
}

// GetByEmail fetches a user by email. Returns models.ErrUserNotFound
// when no such user exists.
func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, `SELECT id, email, COALESCE(first_name, ''), COALESCE(last_name, '') FROM users WHERE email = $1`, email)
}

func (r *PostgresUserRepository) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	var u models.User
	err := r.DB.QueryRowContext(ctx, query, arg).
		Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// Create inserts a new user row.
func (r *PostgresUserRepository) Create(ctx context.Context, user models.User) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO users (id, email, first_name, last_name)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''))
	`, user.ID, user.Email, user.FirstName, user.LastName)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// Upsert inserts a user or refreshes email and name on conflict. Used
// by the legacy import job.
func (r *PostgresUserRepository) Upsert(ctx context.Context, user models.User) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO users (id, email, first_name, last_name)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''))
		ON CONFLICT (id) DO UPDATE SET
			email = EXCLUDED.email,
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name
	`, user.ID, user.Email, user.FirstName, user.LastName)
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}
