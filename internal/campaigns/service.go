// Package campaigns implements the fundraising campaign CRUD service.
package campaigns

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/fundrazor/fundrazor/internal/domain"
	"github.com/fundrazor/fundrazor/internal/repository"

	"github.com/google/uuid"
)

// Service validates campaign input and delegates persistence to the repository.
type Service struct {
	repo repository.CampaignRepository
}

// NewService creates a campaign service.
func NewService(repo repository.CampaignRepository) *Service {
	return &Service{repo: repo}
}

// CreateInput carries the fields accepted when creating a campaign.
type CreateInput struct {
	Name       string
	Type       string
	Status     domain.CampaignStatus
	Goal       *string
	Raised     *string
	DonorCount int
	GiftCount  int
	OwnerID    *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
}

// List returns all campaigns.
func (s *Service) List(ctx context.Context) ([]domain.Campaign, error) {
	return s.repo.List(ctx)
}

// Get returns a single campaign or NotFound.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (domain.Campaign, error) {
	return s.repo.GetByID(ctx, id)
}

// Create validates the input and persists a new campaign.
func (s *Service) Create(ctx context.Context, in CreateInput) (domain.Campaign, error) {
	verr := &domain.ValidationError{Message: "invalid campaign"}
	if strings.TrimSpace(in.Name) == "" {
		verr.WithField("name", "name is required")
	}
	if strings.TrimSpace(in.Type) == "" {
		verr.WithField("type", "type is required")
	}
	status := in.Status
	if status == "" {
		status = domain.CampaignPlanning
	}
	if !status.Valid() {
		verr.WithField("status", "status must be one of planning, active, completed, paused")
	}
	validateAmount(verr, "goal", in.Goal, true)
	validateAmount(verr, "raised", in.Raised, false)
	validateDateOrder(verr, in.StartDate, in.EndDate)
	if len(verr.Fields) > 0 {
		return domain.Campaign{}, verr
	}

	now := time.Now()
	campaign := domain.Campaign{
		ID:         uuid.New(),
		Name:       in.Name,
		Type:       in.Type,
		Status:     status,
		Goal:       in.Goal,
		Raised:     in.Raised,
		DonorCount: in.DonorCount,
		GiftCount:  in.GiftCount,
		OwnerID:    in.OwnerID,
		StartDate:  in.StartDate,
		EndDate:    in.EndDate,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	return s.repo.Create(ctx, campaign)
}

// Update loads the campaign, applies the patch, re-validates the constrained
// fields on the merged record, and persists it. A raced deletion surfaces as
// NotFound from the repository.
func (s *Service) Update(ctx context.Context, id uuid.UUID, patch domain.CampaignPatch) (domain.Campaign, error) {
	campaign, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Campaign{}, err
	}

	if patch.Name != nil {
		campaign.Name = *patch.Name
	}
	if patch.Type != nil {
		campaign.Type = *patch.Type
	}
	if patch.Status != nil {
		campaign.Status = *patch.Status
	}
	if patch.Goal != nil {
		campaign.Goal = patch.Goal
	}
	if patch.Raised != nil {
		campaign.Raised = patch.Raised
	}
	if patch.DonorCount != nil {
		campaign.DonorCount = *patch.DonorCount
	}
	if patch.GiftCount != nil {
		campaign.GiftCount = *patch.GiftCount
	}
	if patch.OwnerID != nil {
		campaign.OwnerID = patch.OwnerID
	}
	if patch.StartDate != nil {
		campaign.StartDate = patch.StartDate
	}
	if patch.EndDate != nil {
		campaign.EndDate = patch.EndDate
	}

	verr := &domain.ValidationError{Message: "invalid campaign"}
	if strings.TrimSpace(campaign.Name) == "" {
		verr.WithField("name", "name is required")
	}
	if strings.TrimSpace(campaign.Type) == "" {
		verr.WithField("type", "type is required")
	}
	if !campaign.Status.Valid() {
		verr.WithField("status", "status must be one of planning, active, completed, paused")
	}
	validateAmount(verr, "goal", campaign.Goal, true)
	validateAmount(verr, "raised", campaign.Raised, false)
	validateDateOrder(verr, campaign.StartDate, campaign.EndDate)
	if len(verr.Fields) > 0 {
		return domain.Campaign{}, verr
	}

	return s.repo.Update(ctx, campaign)
}

// Delete removes a campaign and returns its prior state.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) (domain.Campaign, error) {
	return s.repo.Delete(ctx, id)
}

// validateAmount checks that a monetary decimal string parses and, when
// positive is set, is strictly greater than zero.
func validateAmount(verr *domain.ValidationError, field string, value *string, positive bool) {
	if value == nil {
		return
	}
	amount, err := strconv.ParseFloat(strings.TrimSpace(*value), 64)
	if err != nil {
		verr.WithField(field, field+" must be a decimal amount")
		return
	}
	if positive && amount <= 0 {
		verr.WithField(field, field+" must be greater than zero")
	} else if !positive && amount < 0 {
		verr.WithField(field, field+" must not be negative")
	}
}

// validateDateOrder checks start <= end when both dates are present.
func validateDateOrder(verr *domain.ValidationError, start, end *time.Time) {
	if start != nil && end != nil && start.After(*end) {
		verr.WithField("startDate", "startDate must not be after endDate")
	}
}
