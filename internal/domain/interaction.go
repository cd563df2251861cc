package domain

import (
	"time"

	"github.com/google/uuid"
)

// InteractionType enumerates the kinds of logged touchpoints.
type InteractionType string

const (
	InteractionEmailOpen  InteractionType = "email_open"
	InteractionEmailClick InteractionType = "email_click"
	InteractionMeeting    InteractionType = "meeting"
	InteractionCall       InteractionType = "call"
	InteractionEvent      InteractionType = "event"
	InteractionNote       InteractionType = "note"
)

// InteractionTypes lists every valid interaction type, in display order.
var InteractionTypes = []InteractionType{
	InteractionEmailOpen,
	InteractionEmailClick,
	InteractionMeeting,
	InteractionCall,
	InteractionEvent,
	InteractionNote,
}

// Valid reports whether the type is one of the fixed enumeration.
func (t InteractionType) Valid() bool {
	for _, known := range InteractionTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Interaction is a timestamped touchpoint between a staff member and a person.
type Interaction struct {
	ID               uuid.UUID       `json:"id"`
	PersonID         uuid.UUID       `json:"personId"`
	Type             InteractionType `json:"type"`
	OccurredAt       time.Time       `json:"occurredAt"`
	OwnerID          *uuid.UUID      `json:"ownerId"`
	Notes            *string         `json:"notes"`
	Source           *string         `json:"source"`
	SourceSystem     *string         `json:"sourceSystem"`
	SourceRecordID   *string         `json:"sourceRecordId"`
	SyncedAt         *time.Time      `json:"syncedAt"`
	DataQualityScore *int            `json:"dataQualityScore"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// InteractionPatch carries the mutable fields of a partial update. Nil fields
// are left untouched.
type InteractionPatch struct {
	Type             *InteractionType `json:"type"`
	OccurredAt       *time.Time       `json:"occurredAt"`
	OwnerID          *uuid.UUID       `json:"ownerId"`
	Notes            *string          `json:"notes"`
	Source           *string          `json:"source"`
	SourceSystem     *string          `json:"sourceSystem"`
	SourceRecordID   *string          `json:"sourceRecordId"`
	SyncedAt         *time.Time       `json:"syncedAt"`
	DataQualityScore *int             `json:"dataQualityScore"`
}
