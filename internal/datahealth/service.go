// Package datahealth computes a point-in-time data-quality report over the
// donor base. The report is recomputed from current database state on every
// request; nothing here is cached or persisted.
package datahealth

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/fundrazor/fundrazor/internal/domain"
	"github.com/fundrazor/fundrazor/internal/repository"
)

// freshnessWindow is how far back interaction activity counts as recent.
const freshnessWindow = 30 * 24 * time.Hour

// Health score penalties per defect, applied before clamping to [0, 100].
const (
	missingEmailPenalty      = 2
	missingPhonePenalty      = 1
	incompleteProfilePenalty = 1
	duplicatePenalty         = 5
)

// Service builds data-health reports.
type Service struct {
	persons       repository.PersonRepository
	interactions  repository.InteractionRepository
	opportunities repository.OpportunityRepository

	now func() time.Time
}

// NewService creates a data-health service over the given repositories.
func NewService(
	persons repository.PersonRepository,
	interactions repository.InteractionRepository,
	opportunities repository.OpportunityRepository,
) *Service {
	return &Service{
		persons:       persons,
		interactions:  interactions,
		opportunities: opportunities,
		now:           time.Now,
	}
}

// Report computes the data-health snapshot from current state. Any repository
// failure propagates to the caller; there is no retry or partial result.
func (s *Service) Report(ctx context.Context) (domain.DataHealthReport, error) {
	persons, err := s.persons.List(ctx)
	if err != nil {
		return domain.DataHealthReport{}, fmt.Errorf("load persons: %w", err)
	}

	var missingEmails, missingPhones, incompleteProfiles, completeProfiles int
	for _, p := range persons {
		if !p.HasEmail() {
			missingEmails++
		}
		if !p.HasPhone() {
			missingPhones++
		}
		if !p.HasSegmentation() {
			incompleteProfiles++
		}
		if p.HasEmail() && p.HasPhone() && p.HasSegmentation() {
			completeProfiles++
		}
	}

	// An empty donor base is defined as fully healthy.
	profileCompleteness := 100
	if len(persons) > 0 {
		profileCompleteness = int(math.Round(100 * float64(completeProfiles) / float64(len(persons))))
	}

	recent, err := s.interactions.ListSince(ctx, s.now().Add(-freshnessWindow))
	if err != nil {
		return domain.DataHealthReport{}, fmt.Errorf("load recent interactions: %w", err)
	}
	freshness := domain.FreshnessNeedsAttention
	if len(recent) > 0 {
		freshness = domain.FreshnessGood
	}

	unassigned, err := s.opportunities.ListUnassigned(ctx)
	if err != nil {
		return domain.DataHealthReport{}, fmt.Errorf("load unassigned opportunities: %w", err)
	}

	duplicateCount, err := s.persons.CountDuplicateNameGroups(ctx)
	if err != nil {
		return domain.DataHealthReport{}, fmt.Errorf("count duplicate names: %w", err)
	}

	overallHealth := 100 -
		missingEmailPenalty*missingEmails -
		missingPhonePenalty*missingPhones -
		incompleteProfilePenalty*incompleteProfiles -
		duplicatePenalty*duplicateCount
	if overallHealth < 0 {
		overallHealth = 0
	}
	if overallHealth > 100 {
		overallHealth = 100
	}

	return domain.DataHealthReport{
		Metrics: domain.HealthMetrics{
			OverallHealth:       overallHealth,
			ProfileCompleteness: profileCompleteness,
			MissingEmails:       missingEmails,
			DataFreshness:       freshness,
		},
		QualityChecks: domain.QualityChecks{
			EmailValidation:     checkStatus(missingEmails, 5),
			PhoneFormatting:     checkStatus(missingPhones, 10),
			AddressCompleteness: checkStatus(incompleteProfiles, 10),
			DuplicateDetection:  checkStatus(duplicateCount, 3),
		},
		ActionItems: buildActionItems(missingEmails, len(unassigned), duplicateCount),
	}, nil
}

// checkStatus maps a defect count to a status: zero passes, anything under the
// failing threshold warns.
func checkStatus(count, failingAt int) domain.CheckStatus {
	switch {
	case count == 0:
		return domain.CheckPassing
	case count < failingAt:
		return domain.CheckWarning
	default:
		return domain.CheckFailing
	}
}

// buildActionItems emits remediation items in a fixed order: missing emails,
// then unassigned opportunities, then duplicates.
func buildActionItems(missingEmails, unassignedOpportunities, duplicateCount int) []domain.ActionItem {
	items := []domain.ActionItem{}
	if missingEmails > 0 {
		items = append(items, domain.ActionItem{
			ID:          "missing-emails",
			Title:       fmt.Sprintf("%d donors missing email addresses", missingEmails),
			Description: "Add email addresses to reach these donors through campaigns and receipts.",
		})
	}
	if unassignedOpportunities > 0 {
		items = append(items, domain.ActionItem{
			ID:          "unassigned-opportunities",
			Title:       fmt.Sprintf("%d opportunities have no assigned owner", unassignedOpportunities),
			Description: "Assign a staff owner so these gifts keep moving through the pipeline.",
		})
	}
	if duplicateCount > 0 {
		items = append(items, domain.ActionItem{
			ID:          "duplicates",
			Title:       fmt.Sprintf("%d potential duplicate records detected", duplicateCount),
			Description: "Review and merge records that share the same donor name.",
		})
	}
	return items
}
