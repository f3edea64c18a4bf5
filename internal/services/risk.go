package services

import (
	"time"

	"smsguide/internal/models"
)

const (
	highRiskPercent   = 80
	mediumRiskPercent = 50
	recentFailureDays = 7
	hoursPerDay       = 24
)

// ClassifyRisk scores a triple's history. Thresholds compare whole-number
// percentages exactly, so 4 failures of 5 is high and 5 of 10 is medium. A
// low score becomes medium when the latest failure is at most 7 whole days
// old.
func ClassifyRisk(outcomes []models.SubmissionOutcome, now time.Time) models.RiskAssessment {
	var (
		ra          models.RiskAssessment
		lastFailure *time.Time
	)

	for i := range outcomes {
		o := outcomes[i]
		switch o.Result {
		case models.ResultFailure:
			ra.FailureCount++
			if lastFailure == nil || o.CreatedAt.After(*lastFailure) {
				t := o.CreatedAt
				lastFailure = &t
			}
		case models.ResultSuccess:
			ra.SuccessCount++
		}
	}

	total := len(outcomes)
	ra.RiskLevel = models.RiskLow
	ra.LastFailureAt = lastFailure
	if total == 0 {
		return ra
	}

	ra.FailureRate = float64(ra.FailureCount) * 100 / float64(total)

	switch scaled := ra.FailureCount * 100; {
	case scaled >= highRiskPercent*total:
		ra.RiskLevel = models.RiskHigh
	case scaled >= mediumRiskPercent*total:
		ra.RiskLevel = models.RiskMedium
	}

	if ra.RiskLevel == models.RiskLow && lastFailure != nil {
		days := int(now.Sub(*lastFailure).Hours()) / hoursPerDay
		if days <= recentFailureDays {
			ra.RiskLevel = models.RiskMedium
		}
	}

	return ra
}
