package models

import "time"

type MatchType string

const (
	MatchExact    MatchType = "exact"
	MatchDomain   MatchType = "domain"
	MatchContains MatchType = "contains"
)

// LinkReplacement rewrites URLs shown to visitors, e.g. to swap in an
// affiliate link for a relay site.
type LinkReplacement struct {
	ID             string    `json:"id"`
	OriginalURL    string    `json:"original_url"`
	ReplacementURL string    `json:"replacement_url"`
	MatchType      MatchType `json:"match_type"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type LinkReplacementRequest struct {
	OriginalURL    string `json:"original_url" validate:"required,max=500"`
	ReplacementURL string `json:"replacement_url" validate:"required,max=500"`
	MatchType      string `json:"match_type" validate:"required,oneof=exact domain contains"`
	IsActive       *bool  `json:"is_active,omitempty"`
}
