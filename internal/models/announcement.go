package models

import "time"

type AnnouncementPosition string

const (
	PositionBanner  AnnouncementPosition = "banner"
	PositionSidebar AnnouncementPosition = "sidebar"
	PositionPopup   AnnouncementPosition = "popup"
	PositionNotice  AnnouncementPosition = "notice"
)

var AnnouncementPositions = []AnnouncementPosition{PositionBanner, PositionSidebar, PositionPopup, PositionNotice}

type Announcement struct {
	ID             int64      `json:"id"`
	Title          string     `json:"title"`
	Content        *string    `json:"content,omitempty"`
	ImageURL       *string    `json:"image_url,omitempty"`
	LinkURL        *string    `json:"link_url,omitempty"`
	Position       string     `json:"position"`
	Type           string     `json:"type"`
	Priority       int        `json:"priority"`
	IsActive       bool       `json:"is_active"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	EndDate        *time.Time `json:"end_date,omitempty"`
	ClickCount     int64      `json:"click_count"`
	ViewCount      int64      `json:"view_count"`
	TargetBlank    bool       `json:"target_blank"`
	MobileImageURL *string    `json:"mobile_image_url,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// VisibleAt reports whether the announcement should be shown at t. Missing
// date bounds are unbounded.
func (a *Announcement) VisibleAt(t time.Time) bool {
	if !a.IsActive {
		return false
	}
	if a.StartDate != nil && a.StartDate.After(t) {
		return false
	}
	if a.EndDate != nil && a.EndDate.Before(t) {
		return false
	}
	return true
}

// AnnouncementRequest is used for both create and full update.
type AnnouncementRequest struct {
	Title          string     `json:"title" validate:"required,max=255"`
	Content        *string    `json:"content,omitempty"`
	ImageURL       *string    `json:"image_url,omitempty" validate:"omitempty,url"`
	LinkURL        *string    `json:"link_url,omitempty" validate:"omitempty,url"`
	Position       string     `json:"position" validate:"required,oneof=banner sidebar popup notice"`
	Type           string     `json:"type" validate:"required,oneof=ad notice"`
	Priority       int        `json:"priority"`
	IsActive       *bool      `json:"is_active,omitempty"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	EndDate        *time.Time `json:"end_date,omitempty"`
	TargetBlank    *bool      `json:"target_blank,omitempty"`
	MobileImageURL *string    `json:"mobile_image_url,omitempty" validate:"omitempty,url"`
}

type AnnouncementStats struct {
	TotalAds    int   `json:"total_ads"`
	ActiveAds   int   `json:"active_ads"`
	TotalClicks int64 `json:"total_clicks"`
	TotalViews  int64 `json:"total_views"`
}
