package interfaces

import (
	"context"

	"smsguide/internal/models"
)

// SubmissionQuery is a filtered, paginated submission listing.
type SubmissionQuery struct {
	Filter models.SubmissionFilter
	Limit  int
	Offset int
}

type SubmissionRepository interface {
	Create(ctx context.Context, submission *models.Submission) error
	GetByID(ctx context.Context, id string) (*models.Submission, error)
	List(ctx context.Context, query SubmissionQuery) ([]*models.Submission, error)
	Counts(ctx context.Context, filter models.SubmissionFilter) (*models.SubmissionCounts, error)
	Recent(ctx context.Context, limit int) ([]*models.Submission, error)
	Outcomes(ctx context.Context, websiteID, countryID, projectID string) ([]models.SubmissionOutcome, error)
	Delete(ctx context.Context, id string) error
}

// IPLogRepository stores per-address submission counters. Writes are
// conditional so concurrent requests from one address cannot both win.
type IPLogRepository interface {
	// Get returns ErrNotFound when the address has no row.
	Get(ctx context.Context, ip string) (*models.IPLog, error)
	// Insert reports false when a row for the address already exists.
	Insert(ctx context.Context, log *models.IPLog) (bool, error)
	// CompareAndSwap replaces prev with next only if the stored row still
	// equals prev. It reports whether the swap happened.
	CompareAndSwap(ctx context.Context, prev, next *models.IPLog) (bool, error)
}
