package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"smsguide/internal/models"
)

func TestActiveAnnouncementsAppliesDateWindow(t *testing.T) {
	now := time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)
	future := now.Add(24 * time.Hour)
	past := now.Add(-24 * time.Hour)

	repo := &mockAnnouncementRepo{active: []*models.Announcement{
		{ID: 1, Title: "unbounded", IsActive: true},
		{ID: 2, Title: "not started", IsActive: true, StartDate: &future},
		{ID: 3, Title: "expired", IsActive: true, EndDate: &past},
		{ID: 4, Title: "running", IsActive: true, StartDate: &past, EndDate: &future},
	}}
	svc := NewAnnouncementService(repo)
	svc.now = func() time.Time { return now }

	got, err := svc.ActiveAnnouncements(context.Background(), "banner")
	if err != nil {
		t.Fatalf("ActiveAnnouncements: %v", err)
	}
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 4 {
		t.Fatalf("unexpected visible set %+v", got)
	}
}

func TestCreateAnnouncementDefaults(t *testing.T) {
	repo := &mockAnnouncementRepo{}
	svc := NewAnnouncementService(repo)

	a, err := svc.Create(context.Background(), &models.AnnouncementRequest{Title: "Hello", Position: "notice", Type: "notice"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !a.IsActive || !a.TargetBlank || repo.created != a {
		t.Fatalf("expected active target_blank defaults, got %+v", a)
	}
}

func TestCreateAnnouncementRejectsInvertedDates(t *testing.T) {
	start := time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)
	end := start.Add(-time.Hour)

	_, err := NewAnnouncementService(&mockAnnouncementRepo{}).Create(context.Background(), &models.AnnouncementRequest{
		Title: "x", Position: "banner", Type: "ad", StartDate: &start, EndDate: &end,
	})
	if !errors.Is(err, ErrInvalidDateRange) {
		t.Fatalf("expected ErrInvalidDateRange, got %v", err)
	}
}
