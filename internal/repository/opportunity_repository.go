package repository

import (
	"context"
	"fmt"

	"github.com/fundrazor/fundrazor/internal/db"
	"github.com/fundrazor/fundrazor/internal/domain"
)

// opportunityRepository implements OpportunityRepository over Postgres.
type opportunityRepository struct {
	db db.DBTX
}

// NewOpportunityRepository creates a new opportunity repository
func NewOpportunityRepository(exec db.DBTX) OpportunityRepository {
	return &opportunityRepository{db: exec}
}

// ListUnassigned retrieves pipeline entries with no owning staff member. A
// zero-UUID owner, the sentinel some upstream syncs write instead of NULL,
// counts as unassigned, matching Opportunity.Unassigned.
func (r *opportunityRepository) ListUnassigned(ctx context.Context) ([]domain.Opportunity, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, person_id, name, stage, amount::text, owner_id, created_at, updated_at
		FROM opportunities
		WHERE owner_id IS NULL OR owner_id = '00000000-0000-0000-0000-000000000000'
		ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list unassigned opportunities: %w", err)
	}
	defer rows.Close()

	var opportunities []domain.Opportunity
	for rows.Next() {
		var o domain.Opportunity
		err := rows.Scan(
			&o.ID, &o.PersonID, &o.Name, &o.Stage, &o.Amount, &o.OwnerID,
			&o.CreatedAt, &o.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan opportunity: %w", err)
		}
		opportunities = append(opportunities, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read opportunities: %w", err)
	}

	return opportunities, nil
}
