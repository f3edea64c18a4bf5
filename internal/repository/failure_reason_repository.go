package repository

import (
	"context"
	"database/sql"
	"fmt"

	"smsguide/internal/interfaces"
	"smsguide/internal/models"
)

type failureReasonRepository struct {
	db *sql.DB
}

func NewFailureReasonRepository(db *sql.DB) interfaces.FailureReasonRepository {
	return &failureReasonRepository{db: db}
}

func (r *failureReasonRepository) Create(ctx context.Context, reason *models.FailureReason) error {
	query := `
		INSERT INTO failure_reasons (name, description, category)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	if err := r.db.QueryRowContext(ctx, query, reason.Name, reason.Description, reason.Category).
		Scan(&reason.ID, &reason.CreatedAt); err != nil {
		return fmt.Errorf("failed to create failure reason: %w", mapError(err))
	}
	return nil
}

func (r *failureReasonRepository) UpsertByName(ctx context.Context, reason *models.FailureReason) error {
	query := `
		INSERT INTO failure_reasons (name, description, category)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE
		SET description = EXCLUDED.description, category = EXCLUDED.category
		RETURNING id, created_at
	`
	if err := r.db.QueryRowContext(ctx, query, reason.Name, reason.Description, reason.Category).
		Scan(&reason.ID, &reason.CreatedAt); err != nil {
		return fmt.Errorf("failed to upsert failure reason %q: %w", reason.Name, err)
	}
	return nil
}

func (r *failureReasonRepository) List(ctx context.Context) ([]models.FailureReason, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, description, category, created_at
		FROM failure_reasons
		ORDER BY category, name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list failure reasons: %w", err)
	}
	defer rows.Close()

	reasons := []models.FailureReason{}
	for rows.Next() {
		var fr models.FailureReason
		if err := rows.Scan(&fr.ID, &fr.Name, &fr.Description, &fr.Category, &fr.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan failure reason: %w", err)
		}
		reasons = append(reasons, fr)
	}
	return reasons, rows.Err()
}

// Delete removes the reason. Submissions citing it keep their result and
// lose the reference.
func (r *failureReasonRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM failure_reasons WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete failure reason: %w", err)
	}
	return expectOneRow(result)
}
