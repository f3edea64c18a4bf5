package models

import "time"

type WebsiteStatus string

const (
	WebsiteStatusActive       WebsiteStatus = "active"
	WebsiteStatusInactive     WebsiteStatus = "inactive"
	WebsiteStatusDiscontinued WebsiteStatus = "discontinued"
	WebsiteStatusPending      WebsiteStatus = "pending"
	WebsiteStatusPersonal     WebsiteStatus = "personal"
	WebsiteStatusScammer      WebsiteStatus = "scammer"
)

// Website is an SMS relay service that reports are filed against.
type Website struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	URL       string        `json:"url"`
	Status    WebsiteStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
}

type CreateWebsiteRequest struct {
	Name   string `json:"name" validate:"required,max=255"`
	URL    string `json:"url" validate:"required,url,max=500"`
	Status string `json:"status,omitempty" validate:"omitempty,oneof=active inactive discontinued pending personal scammer"`
}

type UpdateWebsiteRequest struct {
	Name   *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	URL    *string `json:"url,omitempty" validate:"omitempty,url,max=500"`
	Status *string `json:"status,omitempty" validate:"omitempty,oneof=active inactive discontinued pending personal scammer"`
}
