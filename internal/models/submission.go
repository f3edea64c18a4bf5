package models

import "time"

type SubmissionResult string

// The literal values matter: listings sort by result ascending so that
// "failure" rows come before "success" rows.
const (
	ResultSuccess SubmissionResult = "success"
	ResultFailure SubmissionResult = "failure"
)

func (r SubmissionResult) Valid() bool {
	return r == ResultSuccess || r == ResultFailure
}

// Submission is one user-reported outcome for a (website, country, project)
// triple. Dimension ids may be nil when a custom entity could not be created.
type Submission struct {
	ID              string           `json:"id"`
	WebsiteID       *string          `json:"website_id"`
	CountryID       *string          `json:"country_id"`
	ProjectID       *string          `json:"project_id"`
	FailureReasonID *string          `json:"failure_reason_id,omitempty"`
	Result          SubmissionResult `json:"result"`
	Note            *string          `json:"note,omitempty"`
	IPAddress       string           `json:"-"`
	CreatedAt       time.Time        `json:"created_at"`

	Website       *Website       `json:"website,omitempty"`
	Country       *Country       `json:"country,omitempty"`
	Project       *Project       `json:"project,omitempty"`
	FailureReason *FailureReason `json:"failure_reason,omitempty"`
}

type CustomWebsite struct {
	Name string `json:"name" validate:"max=255"`
	URL  string `json:"url" validate:"max=500"`
}

type CustomCountry struct {
	Name      string `json:"name" validate:"max=255"`
	Code      string `json:"code" validate:"max=10"`
	PhoneCode string `json:"phone_code" validate:"max=10"`
}

type CustomProject struct {
	Name string `json:"name" validate:"max=255"`
	Code string `json:"code" validate:"max=64"`
}

type CreateSubmissionRequest struct {
	WebsiteID       *string `json:"website_id" validate:"omitempty,uuid"`
	CountryID       *string `json:"country_id" validate:"omitempty,uuid"`
	ProjectID       *string `json:"project_id" validate:"omitempty,uuid"`
	FailureReasonID *string `json:"failure_reason_id" validate:"omitempty,uuid"`
	Result          string  `json:"result" validate:"required,oneof=success failure"`
	Note            *string `json:"note" validate:"omitempty,max=2000"`

	CustomWebsite *CustomWebsite `json:"custom_website"`
	CustomCountry *CustomCountry `json:"custom_country"`
	CustomProject *CustomProject `json:"custom_project"`
}

// SubmissionFilter narrows a submission listing. Name filters match the
// joined display name exactly; Search is a case-insensitive substring match.
type SubmissionFilter struct {
	Result  string
	Search  string
	Website string
	Country string
	Project string
}

// SubmissionPage is one page of a filtered listing. FailureCount and
// SuccessCount cover every row matching the filter; the Page* counts cover
// only the rows in Data.
type SubmissionPage struct {
	Data     []*Submission `json:"data"`
	Total    int           `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
	HasMore  bool          `json:"has_more"`

	FailureCount     int `json:"failure_count"`
	SuccessCount     int `json:"success_count"`
	PageFailureCount int `json:"page_failure_count"`
	PageSuccessCount int `json:"page_success_count"`
}

type SubmissionCounts struct {
	Total        int
	FailureCount int
	SuccessCount int
}

type SubmissionOutcome struct {
	Result    SubmissionResult
	CreatedAt time.Time
}

type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

type RiskAssessment struct {
	WebsiteName   string     `json:"website_name"`
	CountryName   string     `json:"country_name"`
	ProjectName   string     `json:"project_name"`
	FailureCount  int        `json:"failure_count"`
	SuccessCount  int        `json:"success_count"`
	FailureRate   float64    `json:"failure_rate"`
	LastFailureAt *time.Time `json:"last_failure_date,omitempty"`
	RiskLevel     RiskLevel  `json:"risk_level"`
}
