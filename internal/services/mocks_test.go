package services

import (
	"context"
	"errors"
	"fmt"

	"smsguide/internal/interfaces"
	"smsguide/internal/models"
)

type mockSubmissionRepo struct {
	created  []*models.Submission
	rows     []*models.Submission
	counts   models.SubmissionCounts
	outcomes []models.SubmissionOutcome
	lastQ    interfaces.SubmissionQuery
	recentN  int
	err      error
}

var _ interfaces.SubmissionRepository = (*mockSubmissionRepo)(nil)

func (m *mockSubmissionRepo) Create(ctx context.Context, s *models.Submission) error {
	if m.err != nil {
		return m.err
	}
	s.ID = fmt.Sprintf("sub-%d", len(m.created)+1)
	m.created = append(m.created, s)
	return nil
}
func (m *mockSubmissionRepo) GetByID(ctx context.Context, id string) (*models.Submission, error) {
	for _, s := range m.rows {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, interfaces.ErrNotFound
}
func (m *mockSubmissionRepo) List(ctx context.Context, q interfaces.SubmissionQuery) ([]*models.Submission, error) {
	m.lastQ = q
	if q.Offset >= len(m.rows) {
		return []*models.Submission{}, nil
	}
	end := q.Offset + q.Limit
	if end > len(m.rows) {
		end = len(m.rows)
	}
	return m.rows[q.Offset:end], nil
}
func (m *mockSubmissionRepo) Counts(ctx context.Context, f models.SubmissionFilter) (*models.SubmissionCounts, error) {
	c := m.counts
	return &c, nil
}
func (m *mockSubmissionRepo) Recent(ctx context.Context, limit int) ([]*models.Submission, error) {
	m.recentN = limit
	return m.rows, nil
}
func (m *mockSubmissionRepo) Outcomes(ctx context.Context, w, c, p string) ([]models.SubmissionOutcome, error) {
	return m.outcomes, nil
}
func (m *mockSubmissionRepo) Delete(ctx context.Context, id string) error { return nil }

type mockWebsiteRepo struct {
	created []*models.Website
	err     error
}

var _ interfaces.WebsiteRepository = (*mockWebsiteRepo)(nil)

func (m *mockWebsiteRepo) Create(ctx context.Context, w *models.Website) error {
	if m.err != nil {
		return m.err
	}
	w.ID = "new-website"
	m.created = append(m.created, w)
	return nil
}
func (m *mockWebsiteRepo) GetByID(ctx context.Context, id string) (*models.Website, error) {
	return &models.Website{ID: id, Name: "Relay"}, nil
}
func (m *mockWebsiteRepo) List(ctx context.Context, statuses ...models.WebsiteStatus) ([]models.Website, error) {
	return nil, nil
}
func (m *mockWebsiteRepo) Update(ctx context.Context, id string, req *models.UpdateWebsiteRequest) error {
	return nil
}
func (m *mockWebsiteRepo) Delete(ctx context.Context, id string) error { return nil }

type mockCountryRepo struct {
	created  []*models.Country
	upserted []*models.Country
	err      error
}

var _ interfaces.CountryRepository = (*mockCountryRepo)(nil)

func (m *mockCountryRepo) Create(ctx context.Context, c *models.Country) error {
	if m.err != nil {
		return m.err
	}
	c.ID = "new-country"
	m.created = append(m.created, c)
	return nil
}
func (m *mockCountryRepo) GetByID(ctx context.Context, id string) (*models.Country, error) {
	return &models.Country{ID: id, Name: "India"}, nil
}
func (m *mockCountryRepo) List(ctx context.Context) ([]models.Country, error) { return nil, nil }
func (m *mockCountryRepo) Update(ctx context.Context, id string, req *models.UpdateCountryRequest) error {
	return nil
}
func (m *mockCountryRepo) Delete(ctx context.Context, id string) error { return nil }
func (m *mockCountryRepo) UpsertByCode(ctx context.Context, c *models.Country) error {
	m.upserted = append(m.upserted, c)
	return nil
}

type mockProjectRepo struct {
	created  []*models.Project
	upserted []*models.Project
	err      error
}

var _ interfaces.ProjectRepository = (*mockProjectRepo)(nil)

func (m *mockProjectRepo) Create(ctx context.Context, p *models.Project) error {
	if m.err != nil {
		return m.err
	}
	p.ID = "new-project"
	m.created = append(m.created, p)
	return nil
}
func (m *mockProjectRepo) GetByID(ctx context.Context, id string) (*models.Project, error) {
	return nil, interfaces.ErrNotFound
}
func (m *mockProjectRepo) List(ctx context.Context) ([]models.Project, error) { return nil, nil }
func (m *mockProjectRepo) Update(ctx context.Context, id string, req *models.UpdateProjectRequest) error {
	return nil
}
func (m *mockProjectRepo) Delete(ctx context.Context, id string) error { return nil }
func (m *mockProjectRepo) UpsertByCode(ctx context.Context, p *models.Project) error {
	m.upserted = append(m.upserted, p)
	return nil
}

type mockFailureReasonRepo struct {
	upserted []*models.FailureReason
}

var _ interfaces.FailureReasonRepository = (*mockFailureReasonRepo)(nil)

func (m *mockFailureReasonRepo) Create(ctx context.Context, r *models.FailureReason) error { return nil }
func (m *mockFailureReasonRepo) List(ctx context.Context) ([]models.FailureReason, error) {
	return nil, nil
}
func (m *mockFailureReasonRepo) Delete(ctx context.Context, id string) error { return nil }
func (m *mockFailureReasonRepo) UpsertByName(ctx context.Context, r *models.FailureReason) error {
	m.upserted = append(m.upserted, r)
	return nil
}

type mockLinkRepo struct {
	rules []models.LinkReplacement
	calls int
	err   error
}

var _ interfaces.LinkReplacementRepository = (*mockLinkRepo)(nil)

func (m *mockLinkRepo) List(ctx context.Context, activeOnly bool) ([]models.LinkReplacement, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.rules, nil
}
func (m *mockLinkRepo) Create(ctx context.Context, r *models.LinkReplacement) error { return nil }
func (m *mockLinkRepo) Update(ctx context.Context, id string, r *models.LinkReplacement) error {
	return nil
}
func (m *mockLinkRepo) Delete(ctx context.Context, id string) error { return nil }

type mockAnnouncementRepo struct {
	active  []*models.Announcement
	created *models.Announcement
}

var _ interfaces.AnnouncementRepository = (*mockAnnouncementRepo)(nil)

func (m *mockAnnouncementRepo) Create(ctx context.Context, a *models.Announcement) error {
	a.ID = 1
	m.created = a
	return nil
}
func (m *mockAnnouncementRepo) GetByID(ctx context.Context, id int64) (*models.Announcement, error) {
	return nil, interfaces.ErrNotFound
}
func (m *mockAnnouncementRepo) List(ctx context.Context) ([]*models.Announcement, error) {
	return m.active, nil
}
func (m *mockAnnouncementRepo) ListActive(ctx context.Context, position string) ([]*models.Announcement, error) {
	return m.active, nil
}
func (m *mockAnnouncementRepo) Update(ctx context.Context, id int64, a *models.Announcement) error {
	return nil
}
func (m *mockAnnouncementRepo) Delete(ctx context.Context, id int64) error          { return nil }
func (m *mockAnnouncementRepo) IncrementViews(ctx context.Context, id int64) error  { return nil }
func (m *mockAnnouncementRepo) IncrementClicks(ctx context.Context, id int64) error { return nil }
func (m *mockAnnouncementRepo) Stats(ctx context.Context) (*models.AnnouncementStats, error) {
	return &models.AnnouncementStats{}, nil
}

var errBoom = errors.New("boom")
