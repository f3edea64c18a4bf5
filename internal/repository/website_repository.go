package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"smsguide/internal/interfaces"
	"smsguide/internal/models"
)

type websiteRepository struct {
	db *sql.DB
}

func NewWebsiteRepository(db *sql.DB) interfaces.WebsiteRepository {
	return &websiteRepository{db: db}
}

func (r *websiteRepository) Create(ctx context.Context, website *models.Website) error {
	if website.Status == "" {
		website.Status = models.WebsiteStatusActive
	}

	query := `
		INSERT INTO websites (name, url, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query, website.Name, website.URL, website.Status).
		Scan(&website.ID, &website.CreatedAt)
	if err != nil {
		logrus.WithError(err).WithField("name", website.Name).Error("failed to create website")
		return fmt.Errorf("failed to create website: %w", mapError(err))
	}

	return nil
}

func (r *websiteRepository) GetByID(ctx context.Context, id string) (*models.Website, error) {
	query := `
		SELECT id, name, url, status, created_at
		FROM websites
		WHERE id = $1
	`

	var w models.Website
	err := r.db.QueryRowContext(ctx, query, id).Scan(&w.ID, &w.Name, &w.URL, &w.Status, &w.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}

	return &w, nil
}

func (r *websiteRepository) List(ctx context.Context, statuses ...models.WebsiteStatus) ([]models.Website, error) {
	query := `SELECT id, name, url, status, created_at FROM websites`
	var args []interface{}
	if len(statuses) > 0 {
		values := make([]string, len(statuses))
		for i, s := range statuses {
			values[i] = string(s)
		}
		query += ` WHERE status = ANY($1)`
		args = append(args, pq.Array(values))
	}
	query += ` ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logrus.WithError(err).Error("failed to list websites")
		return nil, fmt.Errorf("failed to list websites: %w", err)
	}
	defer rows.Close()

	websites := []models.Website{}
	for rows.Next() {
		var w models.Website
		if err := rows.Scan(&w.ID, &w.Name, &w.URL, &w.Status, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan website: %w", err)
		}
		websites = append(websites, w)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating websites: %w", err)
	}

	return websites, nil
}

func (r *websiteRepository) Update(ctx context.Context, id string, req *models.UpdateWebsiteRequest) error {
	setValues := []string{}
	args := []interface{}{}
	argID := 1

	if req.Name != nil {
		setValues = append(setValues, fmt.Sprintf("name = $%d", argID))
		args = append(args, *req.Name)
		argID++
	}
	if req.URL != nil {
		setValues = append(setValues, fmt.Sprintf("url = $%d", argID))
		args = append(args, *req.URL)
		argID++
	}
	if req.Status != nil {
		setValues = append(setValues, fmt.Sprintf("status = $%d", argID))
		args = append(args, *req.Status)
		argID++
	}

	if len(setValues) == 0 {
		return fmt.Errorf("no fields to update")
	}

	args = append(args, id)
	query := fmt.Sprintf(
		"UPDATE websites SET %s WHERE id = $%d",
		strings.Join(setValues, ", "),
		argID,
	)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		logrus.WithError(err).WithField("id", id).Error("failed to update website")
		return fmt.Errorf("failed to update website: %w", mapError(err))
	}

	return expectOneRow(result)
}

func (r *websiteRepository) Delete(ctx context.Context, id string) error {
	if err := submissionReferences(ctx, r.db, "website", "website_id", id); err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM websites WHERE id = $1`, id)
	if err != nil {
		logrus.WithError(err).WithField("id", id).Error("failed to delete website")
		return fmt.Errorf("failed to delete website: %w", err)
	}

	return expectOneRow(result)
}
