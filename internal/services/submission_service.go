package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"smsguide/internal/interfaces"
	"smsguide/internal/models"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	RecentLimit     = 100 // default cap for the unpaginated listing
)

var ErrInvalidResult = errors.New("result must be success or failure")

// CreateResult is a saved submission plus warnings for custom entities
// that could not be registered. Warnings never fail the submission.
type CreateResult struct {
	Submission *models.Submission `json:"data"`
	Warnings   []string           `json:"warnings,omitempty"`
}

type SubmissionService struct {
	submissions interfaces.SubmissionRepository
	websites    interfaces.WebsiteRepository
	countries   interfaces.CountryRepository
	projects    interfaces.ProjectRepository
	links       *LinkReplacer
	recentLimit int
	now         func() time.Time
}

func NewSubmissionService(
	submissions interfaces.SubmissionRepository,
	websites interfaces.WebsiteRepository,
	countries interfaces.CountryRepository,
	projects interfaces.ProjectRepository,
	links *LinkReplacer,
) *SubmissionService {
	return &SubmissionService{
		submissions: submissions,
		websites:    websites,
		countries:   countries,
		projects:    projects,
		links:       links,
		recentLimit: RecentLimit,
		now:         time.Now,
	}
}

// SetRecentLimit caps Recent at n rows. n <= 0 returns every submission.
func (s *SubmissionService) SetRecentLimit(n int) {
	s.recentLimit = n
}

// Create registers any custom website, country or project best-effort, then
// inserts the submission. Only the submission insert can fail the call.
func (s *SubmissionService) Create(ctx context.Context, req *models.CreateSubmissionRequest, ip string) (*CreateResult, error) {
	result := models.SubmissionResult(req.Result)
	if !result.Valid() {
		return nil, ErrInvalidResult
	}

	res := &CreateResult{}
	websiteID := nonEmpty(req.WebsiteID)
	countryID := nonEmpty(req.CountryID)
	projectID := nonEmpty(req.ProjectID)
	log := logrus.WithField("ip", ip)

	if cw := req.CustomWebsite; cw != nil {
		name, u := strings.TrimSpace(cw.Name), strings.TrimSpace(cw.URL)
		if name == "" || u == "" {
			res.Warnings = append(res.Warnings, "custom website ignored: name and url are required")
		} else {
			w := &models.Website{Name: name, URL: u, Status: models.WebsiteStatusPending}
			if err := s.websites.Create(ctx, w); err != nil {
				log.WithError(err).Warn("custom website not registered")
				res.Warnings = append(res.Warnings, fmt.Sprintf("custom website %q could not be registered", name))
			} else {
				websiteID = &w.ID
			}
		}
	}

	if cc := req.CustomCountry; cc != nil {
		name, code := strings.TrimSpace(cc.Name), strings.ToLower(strings.TrimSpace(cc.Code))
		if name == "" || code == "" {
			res.Warnings = append(res.Warnings, "custom country ignored: name and code are required")
		} else {
			c := &models.Country{Name: name, Code: code, PhoneCode: strings.TrimSpace(cc.PhoneCode)}
			if err := s.countries.Create(ctx, c); err != nil {
				log.WithError(err).Warn("custom country not registered")
				res.Warnings = append(res.Warnings, fmt.Sprintf("custom country %q could not be registered", name))
			} else {
				countryID = &c.ID
			}
		}
	}

	if cp := req.CustomProject; cp != nil {
		name, code := strings.TrimSpace(cp.Name), strings.ToLower(strings.TrimSpace(cp.Code))
		if name == "" || code == "" {
			res.Warnings = append(res.Warnings, "custom project ignored: name and code are required")
		} else {
			p := &models.Project{Name: name, Code: code}
			if err := s.projects.Create(ctx, p); err != nil {
				log.WithError(err).Warn("custom project not registered")
				res.Warnings = append(res.Warnings, fmt.Sprintf("custom project %q could not be registered", name))
			} else {
				projectID = &p.ID
			}
		}
	}

	sub := &models.Submission{
		WebsiteID:       websiteID,
		CountryID:       countryID,
		ProjectID:       projectID,
		FailureReasonID: nonEmpty(req.FailureReasonID),
		Result:          result,
		Note:            nonEmpty(req.Note),
		IPAddress:       ip,
	}
	if err := s.submissions.Create(ctx, sub); err != nil {
		return nil, err
	}

	res.Submission = sub
	return res, nil
}

// List returns one page of submissions, failures first and newest first
// within each result.
func (s *SubmissionService) List(ctx context.Context, page, pageSize int, filter models.SubmissionFilter) (*models.SubmissionPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	offset := (page - 1) * pageSize

	counts, err := s.submissions.Counts(ctx, filter)
	if err != nil {
		return nil, err
	}

	data, err := s.submissions.List(ctx, interfaces.SubmissionQuery{Filter: filter, Limit: pageSize, Offset: offset})
	if err != nil {
		return nil, err
	}
	s.rewriteLinks(ctx, data)

	out := &models.SubmissionPage{
		Data:         data,
		Total:        counts.Total,
		Page:         page,
		PageSize:     pageSize,
		HasMore:      offset+pageSize < counts.Total,
		FailureCount: counts.FailureCount,
		SuccessCount: counts.SuccessCount,
	}
	for _, sub := range data {
		switch sub.Result {
		case models.ResultFailure:
			out.PageFailureCount++
		case models.ResultSuccess:
			out.PageSuccessCount++
		}
	}
	return out, nil
}

// Recent returns the newest submissions regardless of result, up to the
// configured limit.
func (s *SubmissionService) Recent(ctx context.Context) ([]*models.Submission, error) {
	limit := s.recentLimit
	if limit < 0 {
		limit = 0
	}
	data, err := s.submissions.Recent(ctx, limit)
	if err != nil {
		return nil, err
	}
	s.rewriteLinks(ctx, data)
	return data, nil
}

func (s *SubmissionService) Get(ctx context.Context, id string) (*models.Submission, error) {
	sub, err := s.submissions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.rewriteLinks(ctx, []*models.Submission{sub})
	return sub, nil
}

func (s *SubmissionService) Delete(ctx context.Context, id string) error {
	return s.submissions.Delete(ctx, id)
}

// Risk classifies the exact (website, country, project) triple. It returns
// nil when the triple has no history.
func (s *SubmissionService) Risk(ctx context.Context, websiteID, countryID, projectID string) (*models.RiskAssessment, error) {
	outcomes, err := s.submissions.Outcomes(ctx, websiteID, countryID, projectID)
	if err != nil {
		return nil, err
	}
	if len(outcomes) == 0 {
		return nil, nil
	}

	ra := ClassifyRisk(outcomes, s.now())
	if w, err := s.websites.GetByID(ctx, websiteID); err == nil {
		ra.WebsiteName = w.Name
	}
	if c, err := s.countries.GetByID(ctx, countryID); err == nil {
		ra.CountryName = c.Name
	}
	if p, err := s.projects.GetByID(ctx, projectID); err == nil {
		ra.ProjectName = p.Name
	}
	return &ra, nil
}

func (s *SubmissionService) rewriteLinks(ctx context.Context, data []*models.Submission) {
	if s.links == nil || len(data) == 0 {
		return
	}
	rules := s.links.Rules(ctx)
	if len(rules) == 0 {
		return
	}
	for _, sub := range data {
		if sub.Website != nil {
			sub.Website.URL = ReplaceSingleURL(sub.Website.URL, rules)
		}
		if sub.Note != nil {
			note := ReplaceLinksInText(*sub.Note, rules)
			sub.Note = &note
		}
	}
}

func nonEmpty(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}
