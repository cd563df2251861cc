package repository

import (
	"context"
	"time"

	"github.com/fundrazor/fundrazor/internal/domain"

	"github.com/google/uuid"
)

// PersonRepository defines the interface for donor/contact record operations.
// Persons are written by the CRM-sync importer; the data-health report and
// export only read them.
type PersonRepository interface {
	List(ctx context.Context) ([]domain.Person, error)
	GetByEmail(ctx context.Context, email string) (domain.Person, error)
	Create(ctx context.Context, person domain.Person) (domain.Person, error)
	Update(ctx context.Context, person domain.Person) (domain.Person, error)
	// CountDuplicateNameGroups returns the number of case-insensitive
	// "first last" name groups containing more than one person. The value is
	// carried straight through to the duplicate-detection check and the
	// "potential duplicate records" action item.
	CountDuplicateNameGroups(ctx context.Context) (int, error)
}

// InteractionRepository defines the interface for touchpoint operations.
type InteractionRepository interface {
	List(ctx context.Context) ([]domain.Interaction, error)
	ListByPerson(ctx context.Context, personID uuid.UUID) ([]domain.Interaction, error)
	ListSince(ctx context.Context, since time.Time) ([]domain.Interaction, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Interaction, error)
	Create(ctx context.Context, interaction domain.Interaction) (domain.Interaction, error)
	Update(ctx context.Context, interaction domain.Interaction) (domain.Interaction, error)
	Delete(ctx context.Context, id uuid.UUID) (domain.Interaction, error)
}

// OpportunityRepository defines the interface for pipeline entry operations.
type OpportunityRepository interface {
	ListUnassigned(ctx context.Context) ([]domain.Opportunity, error)
}

// CampaignRepository defines the interface for campaign operations.
type CampaignRepository interface {
	List(ctx context.Context) ([]domain.Campaign, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Campaign, error)
	Create(ctx context.Context, campaign domain.Campaign) (domain.Campaign, error)
	Update(ctx context.Context, campaign domain.Campaign) (domain.Campaign, error)
	Delete(ctx context.Context, id uuid.UUID) (domain.Campaign, error)
}

// CanvasRepository defines the interface for organization canvas operations.
type CanvasRepository interface {
	List(ctx context.Context, ownerID string) ([]domain.OrganizationCanvas, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.OrganizationCanvas, error)
	Create(ctx context.Context, canvas domain.OrganizationCanvas) (domain.OrganizationCanvas, error)
	Update(ctx context.Context, canvas domain.OrganizationCanvas) (domain.OrganizationCanvas, error)
	Delete(ctx context.Context, id uuid.UUID) (domain.OrganizationCanvas, error)
}
