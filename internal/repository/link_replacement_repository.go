package repository

import (
	"context"
	"database/sql"
	"fmt"

	"smsguide/internal/interfaces"
	"smsguide/internal/models"
)

type linkReplacementRepository struct {
	db *sql.DB
}

func NewLinkReplacementRepository(db *sql.DB) interfaces.LinkReplacementRepository {
	return &linkReplacementRepository{db: db}
}

func (r *linkReplacementRepository) List(ctx context.Context, activeOnly bool) ([]models.LinkReplacement, error) {
	query := `
		SELECT id, original_url, replacement_url, match_type, is_active, created_at, updated_at
		FROM link_replacements
	`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list link replacements: %w", err)
	}
	defer rows.Close()

	replacements := []models.LinkReplacement{}
	for rows.Next() {
		var lr models.LinkReplacement
		if err := rows.Scan(
			&lr.ID, &lr.OriginalURL, &lr.ReplacementURL, &lr.MatchType,
			&lr.IsActive, &lr.CreatedAt, &lr.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan link replacement: %w", err)
		}
		replacements = append(replacements, lr)
	}
	return replacements, rows.Err()
}

func (r *linkReplacementRepository) Create(ctx context.Context, lr *models.LinkReplacement) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO link_replacements (original_url, replacement_url, match_type, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, lr.OriginalURL, lr.ReplacementURL, lr.MatchType, lr.IsActive).Scan(&lr.ID, &lr.CreatedAt, &lr.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create link replacement: %w", err)
	}
	return nil
}

func (r *linkReplacementRepository) Update(ctx context.Context, id string, lr *models.LinkReplacement) error {
	err := r.db.QueryRowContext(ctx, `
		UPDATE link_replacements
		SET original_url = $1, replacement_url = $2, match_type = $3, is_active = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING created_at, updated_at
	`, lr.OriginalURL, lr.ReplacementURL, lr.MatchType, lr.IsActive, id).Scan(&lr.CreatedAt, &lr.UpdatedAt)
	if err != nil {
		return mapError(err)
	}
	lr.ID = id
	return nil
}

func (r *linkReplacementRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM link_replacements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete link replacement: %w", err)
	}
	return expectOneRow(result)
}
