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

type submissionRepository struct {
	db *sql.DB
}

func NewSubmissionRepository(db *sql.DB) interfaces.SubmissionRepository {
	return &submissionRepository{db: db}
}

const submissionSelect = `
	SELECT
		s.id, s.website_id, s.country_id, s.project_id, s.failure_reason_id,
		s.result, s.note, s.ip_address, s.created_at,
		w.name, w.url, w.status,
		c.name, c.code, c.phone_code,
		p.name, p.code,
		fr.name, fr.category
	FROM submissions s
	LEFT JOIN websites w ON w.id = s.website_id
	LEFT JOIN countries c ON c.id = s.country_id
	LEFT JOIN projects p ON p.id = s.project_id
	LEFT JOIN failure_reasons fr ON fr.id = s.failure_reason_id
`

const submissionFrom = `
	FROM submissions s
	LEFT JOIN websites w ON w.id = s.website_id
	LEFT JOIN countries c ON c.id = s.country_id
	LEFT JOIN projects p ON p.id = s.project_id
`

// Ordering relies on 'failure' < 'success' so failures list first.
const submissionOrder = ` ORDER BY s.result ASC, s.created_at DESC`

func (r *submissionRepository) Create(ctx context.Context, submission *models.Submission) error {
	query := `
		INSERT INTO submissions (website_id, country_id, project_id, failure_reason_id, result, note, ip_address)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		nullString(submission.WebsiteID),
		nullString(submission.CountryID),
		nullString(submission.ProjectID),
		nullString(submission.FailureReasonID),
		submission.Result,
		nullString(submission.Note),
		submission.IPAddress,
	).Scan(&submission.ID, &submission.CreatedAt)
	if err != nil {
		logrus.WithError(err).WithField("ip", submission.IPAddress).Error("failed to create submission")
		return fmt.Errorf("failed to create submission: %w", err)
	}

	return nil
}

func (r *submissionRepository) GetByID(ctx context.Context, id string) (*models.Submission, error) {
	row := r.db.QueryRowContext(ctx, submissionSelect+` WHERE s.id = $1`, id)
	s, err := scanSubmission(row)
	if err != nil {
		return nil, mapError(err)
	}
	return s, nil
}

func (r *submissionRepository) List(ctx context.Context, q interfaces.SubmissionQuery) ([]*models.Submission, error) {
	where, args := buildSubmissionWhere(q.Filter)
	query := submissionSelect + where + submissionOrder

	if q.Limit > 0 {
		args = append(args, q.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if q.Offset > 0 {
		args = append(args, q.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	return r.query(ctx, query, args...)
}

func (r *submissionRepository) Counts(ctx context.Context, filter models.SubmissionFilter) (*models.SubmissionCounts, error) {
	where, args := buildSubmissionWhere(filter)
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE s.result = 'failure'),
			COUNT(*) FILTER (WHERE s.result = 'success')
	` + submissionFrom + where

	var counts models.SubmissionCounts
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&counts.Total,
		&counts.FailureCount,
		&counts.SuccessCount,
	); err != nil {
		return nil, fmt.Errorf("failed to count submissions: %w", err)
	}
	return &counts, nil
}

// Recent returns submissions newest first. A limit of 0 returns all of them.
func (r *submissionRepository) Recent(ctx context.Context, limit int) ([]*models.Submission, error) {
	if limit <= 0 {
		return r.query(ctx, submissionSelect+` ORDER BY s.created_at DESC`)
	}
	return r.query(ctx, submissionSelect+` ORDER BY s.created_at DESC LIMIT $1`, limit)
}

func (r *submissionRepository) Outcomes(ctx context.Context, websiteID, countryID, projectID string) ([]models.SubmissionOutcome, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT result, created_at
		FROM submissions
		WHERE website_id = $1 AND country_id = $2 AND project_id = $3
		ORDER BY created_at DESC
	`, websiteID, countryID, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load outcomes: %w", err)
	}
	defer rows.Close()

	var outcomes []models.SubmissionOutcome
	for rows.Next() {
		var o models.SubmissionOutcome
		if err := rows.Scan(&o.Result, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan outcome: %w", err)
		}
		outcomes = append(outcomes, o)
	}
	return outcomes, rows.Err()
}

func (r *submissionRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM submissions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete submission: %w", err)
	}
	return expectOneRow(result)
}

func (r *submissionRepository) query(ctx context.Context, query string, args ...interface{}) ([]*models.Submission, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logrus.WithError(err).Error("failed to list submissions")
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	defer rows.Close()

	submissions := []*models.Submission{}
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		submissions = append(submissions, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating submissions: %w", err)
	}
	return submissions, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSubmission(row rowScanner) (*models.Submission, error) {
	var (
		s                                         models.Submission
		websiteID, countryID, projectID, reasonID sql.NullString
		note                                      sql.NullString
		wName, wURL, wStatus                      sql.NullString
		cName, cCode, cPhone                      sql.NullString
		pName, pCode                              sql.NullString
		frName, frCategory                        sql.NullString
	)

	if err := row.Scan(
		&s.ID, &websiteID, &countryID, &projectID, &reasonID,
		&s.Result, &note, &s.IPAddress, &s.CreatedAt,
		&wName, &wURL, &wStatus,
		&cName, &cCode, &cPhone,
		&pName, &pCode,
		&frName, &frCategory,
	); err != nil {
		return nil, err
	}

	s.WebsiteID = stringPtr(websiteID)
	s.CountryID = stringPtr(countryID)
	s.ProjectID = stringPtr(projectID)
	s.FailureReasonID = stringPtr(reasonID)
	s.Note = stringPtr(note)

	if websiteID.Valid && wName.Valid {
		s.Website = &models.Website{ID: websiteID.String, Name: wName.String, URL: wURL.String, Status: models.WebsiteStatus(wStatus.String)}
	}
	if countryID.Valid && cName.Valid {
		s.Country = &models.Country{ID: countryID.String, Name: cName.String, Code: cCode.String, PhoneCode: cPhone.String}
	}
	if projectID.Valid && pName.Valid {
		s.Project = &models.Project{ID: projectID.String, Name: pName.String, Code: pCode.String}
	}
	if reasonID.Valid && frName.Valid {
		s.FailureReason = &models.FailureReason{ID: reasonID.String, Name: frName.String, Category: frCategory.String}
	}

	return &s, nil
}

// buildSubmissionWhere renders filter as a WHERE clause over the joined
// submission query. Search is a case-insensitive substring match OR'd across
// dimension names, codes, phone code and note. Website URLs are not searched.
func buildSubmissionWhere(filter models.SubmissionFilter) (string, []interface{}) {
	var (
		clauses []string
		args    []interface{}
	)
	add := func(clause string, arg interface{}) {
		args = append(args, arg)
		clauses = append(clauses, fmt.Sprintf(clause, len(args)))
	}

	if filter.Result != "" && filter.Result != "all" {
		add("s.result = $%d", filter.Result)
	}
	if filter.Website != "" {
		add("w.name = $%d", filter.Website)
	}
	if filter.Country != "" {
		add("c.name = $%d", filter.Country)
	}
	if filter.Project != "" {
		add("p.name = $%d", filter.Project)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		args = append(args, "%"+escapeLike(search)+"%")
		n := len(args)
		columns := []string{"w.name", "c.name", "c.code", "c.phone_code", "p.name", "p.code", "s.note"}
		parts := make([]string, len(columns))
		for i, col := range columns {
			parts[i] = fmt.Sprintf("%s ILIKE $%d", col, n)
		}
		clauses = append(clauses, "("+strings.Join(parts, " OR ")+")")
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
