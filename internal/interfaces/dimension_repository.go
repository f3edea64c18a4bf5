package interfaces

import (
	"context"

	"smsguide/internal/models"
)

// WebsiteRepository defines website data operations. List with no statuses
// returns every website.
type WebsiteRepository interface {
	Create(ctx context.Context, website *models.Website) error
	GetByID(ctx context.Context, id string) (*models.Website, error)
	List(ctx context.Context, statuses ...models.WebsiteStatus) ([]models.Website, error)
	Update(ctx context.Context, id string, req *models.UpdateWebsiteRequest) error
	Delete(ctx context.Context, id string) error
}

type CountryRepository interface {
	Create(ctx context.Context, country *models.Country) error
	GetByID(ctx context.Context, id string) (*models.Country, error)
	List(ctx context.Context) ([]models.Country, error)
	Update(ctx context.Context, id string, req *models.UpdateCountryRequest) error
	Delete(ctx context.Context, id string) error
	UpsertByCode(ctx context.Context, country *models.Country) error
}

type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	GetByID(ctx context.Context, id string) (*models.Project, error)
	List(ctx context.Context) ([]models.Project, error)
	Update(ctx context.Context, id string, req *models.UpdateProjectRequest) error
	Delete(ctx context.Context, id string) error
	UpsertByCode(ctx context.Context, project *models.Project) error
}

type FailureReasonRepository interface {
	Create(ctx context.Context, reason *models.FailureReason) error
	List(ctx context.Context) ([]models.FailureReason, error)
	Delete(ctx context.Context, id string) error
	UpsertByName(ctx context.Context, reason *models.FailureReason) error
}
