// Package canvas implements the organization canvas CRUD service.
package canvas

import (
	"context"
	"strings"
	"time"

	"github.com/fundrazor/fundrazor/internal/domain"
	"github.com/fundrazor/fundrazor/internal/repository"

	"github.com/google/uuid"
)

// Service validates canvas input and delegates persistence to the repository.
type Service struct {
	repo repository.CanvasRepository
}

// NewService creates a canvas service.
func NewService(repo repository.CanvasRepository) *Service {
	return &Service{repo: repo}
}

// CreateInput carries the fields accepted when creating a canvas.
type CreateInput struct {
	Name      string
	OwnerID   string
	Data      map[string]any
	IsDefault bool
}

// List returns canvases, filtered by owner when ownerID is non-empty.
func (s *Service) List(ctx context.Context, ownerID string) ([]domain.OrganizationCanvas, error) {
	return s.repo.List(ctx, ownerID)
}

// Get returns a single canvas or NotFound.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (domain.OrganizationCanvas, error) {
	return s.repo.GetByID(ctx, id)
}

// Create validates the input and persists a new canvas.
func (s *Service) Create(ctx context.Context, in CreateInput) (domain.OrganizationCanvas, error) {
	verr := &domain.ValidationError{Message: "invalid canvas"}
	if strings.TrimSpace(in.Name) == "" {
		verr.WithField("name", "name is required")
	}
	if strings.TrimSpace(in.OwnerID) == "" {
		verr.WithField("ownerId", "ownerId is required")
	}
	if len(verr.Fields) > 0 {
		return domain.OrganizationCanvas{}, verr
	}

	now := time.Now()
	canvas := domain.OrganizationCanvas{
		ID:        uuid.New(),
		Name:      in.Name,
		OwnerID:   in.OwnerID,
		Data:      in.Data,
		IsDefault: in.IsDefault,
		CreatedAt: now,
		UpdatedAt: now,
	}

	return s.repo.Create(ctx, canvas)
}

// Update loads the canvas, applies the patch, re-validates, and persists the
// merged record.
func (s *Service) Update(ctx context.Context, id uuid.UUID, patch domain.CanvasPatch) (domain.OrganizationCanvas, error) {
	canvas, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.OrganizationCanvas{}, err
	}

	if patch.Name != nil {
		canvas.Name = *patch.Name
	}
	if patch.OwnerID != nil {
		canvas.OwnerID = *patch.OwnerID
	}
	if patch.Data != nil {
		canvas.Data = patch.Data
	}
	if patch.IsDefault != nil {
		canvas.IsDefault = *patch.IsDefault
	}

	verr := &domain.ValidationError{Message: "invalid canvas"}
	if strings.TrimSpace(canvas.Name) == "" {
		verr.WithField("name", "name must be a non-empty string")
	}
	if strings.TrimSpace(canvas.OwnerID) == "" {
		verr.WithField("ownerId", "ownerId must be a non-empty string")
	}
	if len(verr.Fields) > 0 {
		return domain.OrganizationCanvas{}, verr
	}

	return s.repo.Update(ctx, canvas)
}

// Delete removes a canvas and returns its prior state.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) (domain.OrganizationCanvas, error) {
	return s.repo.Delete(ctx, id)
}
