package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/Kennygunderman/state-of-health-be/internal/models"
)

// PostgresTemplateRepository implements workout template persistence
// against a PostgreSQL database. Exercise references are stored as a
// text array; they are weak references, never foreign keys.
type PostgresTemplateRepository struct {
	DB *sql.DB
}

// NewPostgresTemplateRepository creates a PostgresTemplateRepository
// using the provided *sql.DB.
func NewPostgresTemplateRepository(db *sql.DB) *PostgresTemplateRepository {
	return &PostgresTemplateRepository{DB: db}
}

// ListByUser returns the user's templates, name-ascending.
func (r *PostgresTemplateRepository) ListByUser(ctx context.Context, userID string) ([]models.Template, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, user_id, name, COALESCE(tagline, ''), exercise_ids
		FROM templates
		WHERE user_id = $1
		ORDER BY name ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	var templates []models.Template
	for rows.Next() {
		var tpl models.Template
		if err := rows.Scan(&tpl.ID, &tpl.UserID, &tpl.Name, &tpl.Tagline, pq.Array(&tpl.ExerciseIDs)); err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		if tpl.ExerciseIDs == nil {
			tpl.ExerciseIDs = []string{}
		}
		templates = append(templates, tpl)
	}
	return templates, rows.Err()
}

// Create inserts a new template row.
func (r *PostgresTemplateRepository) Create(ctx context.Context, template models.Template) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO templates (id, user_id, name, tagline, exercise_ids)
		VALUES ($1, $2, $3, $4, $5)
	`, template.ID, template.UserID, template.Name, template.Tagline, pq.Array(template.ExerciseIDs))
	if err != nil {
		return fmt.Errorf("create template: %w", err)
	}
	return nil
}

// Update overwrites the template's name, tagline and exercise id list.
func (r *PostgresTemplateRepository) Update(ctx context.Context, template models.Template) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE templates SET name = $1, tagline = $2, exercise_ids = $3
		WHERE id = $4 AND user_id = $5
	`, template.Name, template.Tagline, pq.Array(template.ExerciseIDs), template.ID, template.UserID)
	if err != nil {
		return fmt.Errorf("update template: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update template: %w", err)
	}
	if affected == 0 {
		return models.ErrTemplateNotFound
	}
	return nil
}

// Delete removes the user's template.
func (r *PostgresTemplateRepository) Delete(ctx context.Context, userID, templateID string) error {
	res, err := r.DB.ExecContext(ctx, `
		DELETE FROM templates WHERE id = $1 AND user_id = $2
	`, templateID, userID)
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	if affected == 0 {
		return models.ErrTemplateNotFound
	}
	return nil
}
