package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sirupsen/logrus"

	"smsguide/internal/interfaces"
	"smsguide/internal/models"
)

type announcementRepository struct {
	db *sql.DB
}

func NewAnnouncementRepository(db *sql.DB) interfaces.AnnouncementRepository {
	return &announcementRepository{db: db}
}

const announcementColumns = `
	id, title, content, image_url, link_url, position, type, priority, is_active,
	start_date, end_date, click_count, view_count, target_blank, mobile_image_url,
	created_at, updated_at
`

func (r *announcementRepository) Create(ctx context.Context, a *models.Announcement) error {
	query := `
		INSERT INTO announcements (
			title, content, image_url, link_url, position, type, priority,
			is_active, start_date, end_date, target_blank, mobile_image_url
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, click_count, view_count, created_at, updated_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		a.Title,
		nullString(a.Content),
		nullString(a.ImageURL),
		nullString(a.LinkURL),
		a.Position,
		a.Type,
		a.Priority,
		a.IsActive,
		a.StartDate,
		a.EndDate,
		a.TargetBlank,
		nullString(a.MobileImageURL),
	).Scan(&a.ID, &a.ClickCount, &a.ViewCount, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		logrus.WithError(err).WithField("title", a.Title).Error("failed to create announcement")
		return fmt.Errorf("failed to create announcement: %w", err)
	}
	return nil
}

func (r *announcementRepository) GetByID(ctx context.Context, id int64) (*models.Announcement, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+announcementColumns+` FROM announcements WHERE id = $1`, id)
	a, err := scanAnnouncement(row)
	if err != nil {
		return nil, mapError(err)
	}
	return a, nil
}

func (r *announcementRepository) List(ctx context.Context) ([]*models.Announcement, error) {
	return r.query(ctx, `SELECT `+announcementColumns+` FROM announcements ORDER BY priority DESC, created_at DESC`)
}

func (r *announcementRepository) ListActive(ctx context.Context, position string) ([]*models.Announcement, error) {
	if position == "" {
		return r.query(ctx, `
			SELECT `+announcementColumns+`
			FROM announcements
			WHERE is_active = TRUE
			ORDER BY priority DESC, created_at DESC
		`)
	}
	return r.query(ctx, `
		SELECT `+announcementColumns+`
		FROM announcements
		WHERE is_active = TRUE AND position = $1
		ORDER BY priority DESC, created_at DESC
	`, position)
}

func (r *announcementRepository) Update(ctx context.Context, id int64, a *models.Announcement) error {
	query := `
		UPDATE announcements SET
			title = $1, content = $2, image_url = $3, link_url = $4, position = $5,
			type = $6, priority = $7, is_active = $8, start_date = $9, end_date = $10,
			target_blank = $11, mobile_image_url = $12, updated_at = NOW()
		WHERE id = $13
		RETURNING click_count, view_count, created_at, updated_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		a.Title,
		nullString(a.Content),
		nullString(a.ImageURL),
		nullString(a.LinkURL),
		a.Position,
		a.Type,
		a.Priority,
		a.IsActive,
		a.StartDate,
		a.EndDate,
		a.TargetBlank,
		nullString(a.MobileImageURL),
		id,
	).Scan(&a.ClickCount, &a.ViewCount, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return mapError(err)
	}
	a.ID = id
	return nil
}

func (r *announcementRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM announcements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete announcement: %w", err)
	}
	return expectOneRow(result)
}

// IncrementViews calls the stored function so concurrent viewers never lose
// an update.
func (r *announcementRepository) IncrementViews(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `SELECT increment_announcement_views($1)`, id); err != nil {
		return fmt.Errorf("failed to record view: %w", err)
	}
	return nil
}

func (r *announcementRepository) IncrementClicks(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `SELECT increment_announcement_clicks($1)`, id); err != nil {
		return fmt.Errorf("failed to record click: %w", err)
	}
	return nil
}

func (r *announcementRepository) Stats(ctx context.Context) (*models.AnnouncementStats, error) {
	var stats models.AnnouncementStats
	err := r.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE is_active),
			COALESCE(SUM(click_count), 0),
			COALESCE(SUM(view_count), 0)
		FROM announcements
	`).Scan(&stats.TotalAds, &stats.ActiveAds, &stats.TotalClicks, &stats.TotalViews)
	if err != nil {
		return nil, fmt.Errorf("failed to load announcement stats: %w", err)
	}
	return &stats, nil
}

func (r *announcementRepository) query(ctx context.Context, query string, args ...interface{}) ([]*models.Announcement, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logrus.WithError(err).Error("failed to list announcements")
		return nil, fmt.Errorf("failed to list announcements: %w", err)
	}
	defer rows.Close()

	announcements := []*models.Announcement{}
	for rows.Next() {
		a, err := scanAnnouncement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan announcement: %w", err)
		}
		announcements = append(announcements, a)
	}
	return announcements, rows.Err()
}

func scanAnnouncement(row rowScanner) (*models.Announcement, error) {
	var (
		a                                  models.Announcement
		content, imageURL, linkURL, mobile sql.NullString
		startDate, endDate                 sql.NullTime
	)
	if err := row.Scan(
		&a.ID, &a.Title, &content, &imageURL, &linkURL, &a.Position, &a.Type, &a.Priority, &a.IsActive,
		&startDate, &endDate, &a.ClickCount, &a.ViewCount, &a.TargetBlank, &mobile,
		&a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		return nil, err
	}

	a.Content = stringPtr(content)
	a.ImageURL = stringPtr(imageURL)
	a.LinkURL = stringPtr(linkURL)
	a.MobileImageURL = stringPtr(mobile)
	if startDate.Valid {
		t := startDate.Time
		a.StartDate = &t
	}
	if endDate.Valid {
		t := endDate.Time
		a.EndDate = &t
	}
	return &a, nil
}
