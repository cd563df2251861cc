package domain

import (
	"time"

	"github.com/google/uuid"
)

// Opportunity is a pipeline entry representing a prospective or in-progress
// gift. The data-health report only cares whether an owner is assigned.
type Opportunity struct {
	ID        uuid.UUID  `json:"id"`
	PersonID  uuid.UUID  `json:"personId"`
	Name      string     `json:"name"`
	Stage     string     `json:"stage"`
	Amount    *string    `json:"amount"`
	OwnerID   *uuid.UUID `json:"ownerId"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Unassigned reports whether no staff member owns the opportunity.
func (o Opportunity) Unassigned() bool {
	return o.OwnerID == nil || *o.OwnerID == uuid.Nil
}
