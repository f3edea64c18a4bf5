package handlers

import (
	"context"
	"errors"
	"sync"

	"smsguide/internal/interfaces"
	"smsguide/internal/models"
)

var errBoom = errors.New("boom")

type mockSubmissionRepo struct {
	rows    []*models.Submission
	created []*models.Submission
	lastQ   interfaces.SubmissionQuery
}

var _ interfaces.SubmissionRepository = (*mockSubmissionRepo)(nil)

func (m *mockSubmissionRepo) Create(ctx context.Context, s *models.Submission) error {
	s.ID = "7f1e6a52-9d5c-4b55-8f1e-3d9c0b3b8a01"
	m.created = append(m.created, s)
	return nil
}
func (m *mockSubmissionRepo) GetByID(ctx context.Context, id string) (*models.Submission, error) {
	return nil, interfaces.ErrNotFound
}
func (m *mockSubmissionRepo) List(ctx context.Context, q interfaces.SubmissionQuery) ([]*models.Submission, error) {
	m.lastQ = q
	return m.rows, nil
}
func (m *mockSubmissionRepo) Counts(ctx context.Context, f models.SubmissionFilter) (*models.SubmissionCounts, error) {
	return &models.SubmissionCounts{Total: len(m.rows)}, nil
}
func (m *mockSubmissionRepo) Recent(ctx context.Context, limit int) ([]*models.Submission, error) {
	return m.rows, nil
}
func (m *mockSubmissionRepo) Outcomes(ctx context.Context, w, c, p string) ([]models.SubmissionOutcome, error) {
	return nil, nil
}
func (m *mockSubmissionRepo) Delete(ctx context.Context, id string) error { return interfaces.ErrNotFound }

type mockWebsiteRepo struct {
	statuses  []models.WebsiteStatus
	deleteErr error
}

var _ interfaces.WebsiteRepository = (*mockWebsiteRepo)(nil)

func (m *mockWebsiteRepo) Create(ctx context.Context, w *models.Website) error { return errBoom }
func (m *mockWebsiteRepo) GetByID(ctx context.Context, id string) (*models.Website, error) {
	return nil, interfaces.ErrNotFound
}
func (m *mockWebsiteRepo) List(ctx context.Context, statuses ...models.WebsiteStatus) ([]models.Website, error) {
	m.statuses = statuses
	return nil, nil
}
func (m *mockWebsiteRepo) Update(ctx context.Context, id string, req *models.UpdateWebsiteRequest) error {
	return nil
}
func (m *mockWebsiteRepo) Delete(ctx context.Context, id string) error { return m.deleteErr }

type mockCountryRepo struct{}

var _ interfaces.CountryRepository = (*mockCountryRepo)(nil)

func (m *mockCountryRepo) Create(ctx context.Context, c *models.Country) error { return nil }
func (m *mockCountryRepo) GetByID(ctx context.Context, id string) (*models.Country, error) {
	return nil, interfaces.ErrNotFound
}
func (m *mockCountryRepo) List(ctx context.Context) ([]models.Country, error) { return nil, nil }
func (m *mockCountryRepo) Update(ctx context.Context, id string, req *models.UpdateCountryRequest) error {
	return nil
}
func (m *mockCountryRepo) Delete(ctx context.Context, id string) error               { return nil }
func (m *mockCountryRepo) UpsertByCode(ctx context.Context, c *models.Country) error { return nil }

type mockProjectRepo struct{}

var _ interfaces.ProjectRepository = (*mockProjectRepo)(nil)

func (m *mockProjectRepo) Create(ctx context.Context, p *models.Project) error { return nil }
func (m *mockProjectRepo) GetByID(ctx context.Context, id string) (*models.Project, error) {
	return nil, interfaces.ErrNotFound
}
func (m *mockProjectRepo) List(ctx context.Context) ([]models.Project, error) { return nil, nil }
func (m *mockProjectRepo) Update(ctx context.Context, id string, req *models.UpdateProjectRequest) error {
	return nil
}
func (m *mockProjectRepo) Delete(ctx context.Context, id string) error               { return nil }
func (m *mockProjectRepo) UpsertByCode(ctx context.Context, p *models.Project) error { return nil }

type mockLinkRepo struct {
	rules []models.LinkReplacement
	lists int
}

var _ interfaces.LinkReplacementRepository = (*mockLinkRepo)(nil)

func (m *mockLinkRepo) List(ctx context.Context, activeOnly bool) ([]models.LinkReplacement, error) {
	m.lists++
	return m.rules, nil
}
func (m *mockLinkRepo) Create(ctx context.Context, r *models.LinkReplacement) error {
	r.ID = "0b8f2f36-37c5-4d0e-9d0f-6c2c8f6f4a10"
	m.rules = append(m.rules, *r)
	return nil
}
func (m *mockLinkRepo) Update(ctx context.Context, id string, r *models.LinkReplacement) error {
	return nil
}
func (m *mockLinkRepo) Delete(ctx context.Context, id string) error { return nil }

type mockAnnouncementRepo struct {
	mu      sync.Mutex
	active  []*models.Announcement
	fetches int
}

var _ interfaces.AnnouncementRepository = (*mockAnnouncementRepo)(nil)

func (m *mockAnnouncementRepo) Create(ctx context.Context, a *models.Announcement) error {
	a.ID = 42
	return nil
}
func (m *mockAnnouncementRepo) GetByID(ctx context.Context, id int64) (*models.Announcement, error) {
	return nil, interfaces.ErrNotFound
}
func (m *mockAnnouncementRepo) List(ctx context.Context) ([]*models.Announcement, error) {
	return m.active, nil
}
func (m *mockAnnouncementRepo) ListActive(ctx context.Context, position string) ([]*models.Announcement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetches++
	return m.active, nil
}
func (m *mockAnnouncementRepo) Update(ctx context.Context, id int64, a *models.Announcement) error {
	return nil
}
func (m *mockAnnouncementRepo) Delete(ctx context.Context, id int64) error          { return nil }
func (m *mockAnnouncementRepo) IncrementViews(ctx context.Context, id int64) error  { return nil }
func (m *mockAnnouncementRepo) IncrementClicks(ctx context.Context, id int64) error { return nil }
func (m *mockAnnouncementRepo) Stats(ctx context.Context) (*models.AnnouncementStats, error) {
	return &models.AnnouncementStats{TotalAds: len(m.active)}, nil
}

func (m *mockAnnouncementRepo) fetchCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fetches
}

// ipStore is a single-row IPLogRepository.
type ipStore struct {
	row *models.IPLog
	err error
}

var _ interfaces.IPLogRepository = (*ipStore)(nil)

func (s *ipStore) Get(ctx context.Context, ip string) (*models.IPLog, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.row == nil {
		return nil, interfaces.ErrNotFound
	}
	row := *s.row
	return &row, nil
}
func (s *ipStore) Insert(ctx context.Context, l *models.IPLog) (bool, error) {
	s.row = l
	return true, nil
}
func (s *ipStore) CompareAndSwap(ctx context.Context, prev, next *models.IPLog) (bool, error) {
	s.row = next
	return true, nil
}
