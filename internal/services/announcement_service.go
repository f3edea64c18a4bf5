package services

import (
	"context"
	"errors"
	"time"

	"smsguide/internal/interfaces"
	"smsguide/internal/models"
)

var ErrInvalidDateRange = errors.New("end_date must not be before start_date")

type AnnouncementService struct {
	repo interfaces.AnnouncementRepository
	now  func() time.Time
}

func NewAnnouncementService(repo interfaces.AnnouncementRepository) *AnnouncementService {
	return &AnnouncementService{repo: repo, now: time.Now}
}

// ActiveAnnouncements returns active announcements for position whose date
// window contains the current time, highest priority first.
func (s *AnnouncementService) ActiveAnnouncements(ctx context.Context, position string) ([]*models.Announcement, error) {
	rows, err := s.repo.ListActive(ctx, position)
	if err != nil {
		return nil, err
	}

	now := s.now()
	visible := make([]*models.Announcement, 0, len(rows))
	for _, a := range rows {
		if a.VisibleAt(now) {
			visible = append(visible, a)
		}
	}
	return visible, nil
}

func (s *AnnouncementService) List(ctx context.Context) ([]*models.Announcement, error) {
	return s.repo.List(ctx)
}

func (s *AnnouncementService) Get(ctx context.Context, id int64) (*models.Announcement, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *AnnouncementService) Create(ctx context.Context, req *models.AnnouncementRequest) (*models.Announcement, error) {
	a, err := announcementFromRequest(req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Update replaces every editable field of the announcement.
func (s *AnnouncementService) Update(ctx context.Context, id int64, req *models.AnnouncementRequest) (*models.Announcement, error) {
	a, err := announcementFromRequest(req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, id, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AnnouncementService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *AnnouncementService) RecordView(ctx context.Context, id int64) error {
	return s.repo.IncrementViews(ctx, id)
}

func (s *AnnouncementService) RecordClick(ctx context.Context, id int64) error {
	return s.repo.IncrementClicks(ctx, id)
}

func (s *AnnouncementService) Stats(ctx context.Context) (*models.AnnouncementStats, error) {
	return s.repo.Stats(ctx)
}

func announcementFromRequest(req *models.AnnouncementRequest) (*models.Announcement, error) {
	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return nil, ErrInvalidDateRange
	}

	a := &models.Announcement{
		Title:          req.Title,
		Content:        req.Content,
		ImageURL:       req.ImageURL,
		LinkURL:        req.LinkURL,
		Position:       req.Position,
		Type:           req.Type,
		Priority:       req.Priority,
		IsActive:       true,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		TargetBlank:    true,
		MobileImageURL: req.MobileImageURL,
	}
	if req.IsActive != nil {
		a.IsActive = *req.IsActive
	}
	if req.TargetBlank != nil {
		a.TargetBlank = *req.TargetBlank
	}
	return a, nil
}
