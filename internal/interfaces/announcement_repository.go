package interfaces

import (
	"context"

	"smsguide/internal/models"
)

type AnnouncementRepository interface {
	Create(ctx context.Context, a *models.Announcement) error
	GetByID(ctx context.Context, id int64) (*models.Announcement, error)
	List(ctx context.Context) ([]*models.Announcement, error)
	// ListActive returns active rows for position (all positions when empty),
	// highest priority first. Date windows are not applied.
	ListActive(ctx context.Context, position string) ([]*models.Announcement, error)
	Update(ctx context.Context, id int64, a *models.Announcement) error
	Delete(ctx context.Context, id int64) error
	IncrementViews(ctx context.Context, id int64) error
	IncrementClicks(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*models.AnnouncementStats, error)
}

type LinkReplacementRepository interface {
	List(ctx context.Context, activeOnly bool) ([]models.LinkReplacement, error)
	Create(ctx context.Context, r *models.LinkReplacement) error
	Update(ctx context.Context, id string, r *models.LinkReplacement) error
	Delete(ctx context.Context, id string) error
}
