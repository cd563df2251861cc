// Package interactions implements the touchpoint CRUD service.
package interactions

import (
	"context"
	"time"

	"github.com/fundrazor/fundrazor/internal/domain"
	"github.com/fundrazor/fundrazor/internal/repository"

	"github.com/google/uuid"
)

// Service validates interaction input and delegates persistence to the
// repository.
type Service struct {
	repo repository.InteractionRepository
}

// NewService creates an interaction service.
func NewService(repo repository.InteractionRepository) *Service {
	return &Service{repo: repo}
}

// CreateInput carries the fields accepted when logging an interaction.
type CreateInput struct {
	PersonID         uuid.UUID
	Type             domain.InteractionType
	OccurredAt       time.Time
	OwnerID          *uuid.UUID
	Notes            *string
	Source           *string
	SourceSystem     *string
	SourceRecordID   *string
	SyncedAt         *time.Time
	DataQualityScore *int
}

// List returns interactions, filtered to one person when personID is set.
func (s *Service) List(ctx context.Context, personID *uuid.UUID) ([]domain.Interaction, error) {
	if personID != nil {
		return s.repo.ListByPerson(ctx, *personID)
	}
	return s.repo.List(ctx)
}

// Get returns a single interaction or NotFound.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (domain.Interaction, error) {
	return s.repo.GetByID(ctx, id)
}

// Create validates the input and persists a new interaction.
func (s *Service) Create(ctx context.Context, in CreateInput) (domain.Interaction, error) {
	verr := &domain.ValidationError{Message: "invalid interaction"}
	if in.PersonID == uuid.Nil {
		verr.WithField("personId", "personId is required")
	}
	if in.Type == "" {
		verr.WithField("type", "type is required")
	} else if !in.Type.Valid() {
		verr.WithField("type", "type must be one of email_open, email_click, meeting, call, event, note")
	}
	if in.OccurredAt.IsZero() {
		verr.WithField("occurredAt", "occurredAt is required")
	}
	validateQualityScore(verr, in.DataQualityScore)
	if len(verr.Fields) > 0 {
		return domain.Interaction{}, verr
	}

	now := time.Now()
	interaction := domain.Interaction{
		ID:               uuid.New(),
		PersonID:         in.PersonID,
		Type:             in.Type,
		OccurredAt:       in.OccurredAt,
		OwnerID:          in.OwnerID,
		Notes:            in.Notes,
		Source:           in.Source,
		SourceSystem:     in.SourceSystem,
		SourceRecordID:   in.SourceRecordID,
		SyncedAt:         in.SyncedAt,
		DataQualityScore: in.DataQualityScore,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	return s.repo.Create(ctx, interaction)
}

// Update loads the interaction, applies the patch, re-validates the
// constrained fields, and persists the merged record. The identifier is
// immutable; a raced deletion surfaces as NotFound from the repository.
func (s *Service) Update(ctx context.Context, id uuid.UUID, patch domain.InteractionPatch) (domain.Interaction, error) {
	interaction, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Interaction{}, err
	}

	if patch.Type != nil {
		interaction.Type = *patch.Type
	}
	if patch.OccurredAt != nil {
		interaction.OccurredAt = *patch.OccurredAt
	}
	if patch.OwnerID != nil {
		interaction.OwnerID = patch.OwnerID
	}
	if patch.Notes != nil {
		interaction.Notes = patch.Notes
	}
	if patch.Source != nil {
		interaction.Source = patch.Source
	}
	if patch.SourceSystem != nil {
		interaction.SourceSystem = patch.SourceSystem
	}
	if patch.SourceRecordID != nil {
		interaction.SourceRecordID = patch.SourceRecordID
	}
	if patch.SyncedAt != nil {
		interaction.SyncedAt = patch.SyncedAt
	}
	if patch.DataQualityScore != nil {
		interaction.DataQualityScore = patch.DataQualityScore
	}

	verr := &domain.ValidationError{Message: "invalid interaction"}
	if !interaction.Type.Valid() {
		verr.WithField("type", "type must be one of email_open, email_click, meeting, call, event, note")
	}
	if interaction.OccurredAt.IsZero() {
		verr.WithField("occurredAt", "occurredAt is required")
	}
	validateQualityScore(verr, interaction.DataQualityScore)
	if len(verr.Fields) > 0 {
		return domain.Interaction{}, verr
	}

	return s.repo.Update(ctx, interaction)
}

// Delete hard-deletes an interaction and returns its prior state.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) (domain.Interaction, error) {
	return s.repo.Delete(ctx, id)
}

func validateQualityScore(verr *domain.ValidationError, score *int) {
	if score != nil && (*score < 0 || *score > 100) {
		verr.WithField("dataQualityScore", "dataQualityScore must be between 0 and 100")
	}
}
