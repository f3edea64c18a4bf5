package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"smsguide/internal/interfaces"
	"smsguide/internal/models"
)

type projectRepository struct {
	db *sql.DB
}

func NewProjectRepository(db *sql.DB) interfaces.ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, project *models.Project) error {
	query := `
		INSERT INTO projects (name, code)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	if err := r.db.QueryRowContext(ctx, query, project.Name, project.Code).
		Scan(&project.ID, &project.CreatedAt); err != nil {
		logrus.WithError(err).WithField("code", project.Code).Error("failed to create project")
		return fmt.Errorf("failed to create project: %w", mapError(err))
	}
	return nil
}

func (r *projectRepository) UpsertByCode(ctx context.Context, project *models.Project) error {
	query := `
		INSERT INTO projects (name, code)
		VALUES ($1, $2)
		ON CONFLICT (code) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, created_at
	`

	if err := r.db.QueryRowContext(ctx, query, project.Name, project.Code).
		Scan(&project.ID, &project.CreatedAt); err != nil {
		return fmt.Errorf("failed to upsert project %s: %w", project.Code, err)
	}
	return nil
}

func (r *projectRepository) GetByID(ctx context.Context, id string) (*models.Project, error) {
	var p models.Project
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, code, created_at FROM projects WHERE id = $1`, id,
	).Scan(&p.ID, &p.Name, &p.Code, &p.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &p, nil
}

func (r *projectRepository) List(ctx context.Context) ([]models.Project, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, code, created_at FROM projects ORDER BY name`)
	if err != nil {
		logrus.WithError(err).Error("failed to list projects")
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	projects := []models.Project{}
	for rows.Next() {
		var p models.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Code, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating projects: %w", err)
	}
	return projects, nil
}

func (r *projectRepository) Update(ctx context.Context, id string, req *models.UpdateProjectRequest) error {
	setValues := []string{}
	args := []interface{}{}
	argID := 1

	if req.Name != nil {
		setValues = append(setValues, fmt.Sprintf("name = $%d", argID))
		args = append(args, *req.Name)
		argID++
	}
	if req.Code != nil {
		setValues = append(setValues, fmt.Sprintf("code = $%d", argID))
		args = append(args, strings.ToLower(*req.Code))
		argID++
	}

	if len(setValues) == 0 {
		return fmt.Errorf("no fields to update")
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE projects SET %s WHERE id = $%d", strings.Join(setValues, ", "), argID)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", mapError(err))
	}
	return expectOneRow(result)
}

func (r *projectRepository) Delete(ctx context.Context, id string) error {
	if err := submissionReferences(ctx, r.db, "project", "project_id", id); err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return expectOneRow(result)
}
