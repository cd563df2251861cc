package domain

import (
	"time"

	"github.com/google/uuid"
)

// CampaignStatus enumerates the lifecycle states of a fundraising campaign.
type CampaignStatus string

const (
	CampaignPlanning  CampaignStatus = "planning"
	CampaignActive    CampaignStatus = "active"
	CampaignCompleted CampaignStatus = "completed"
	CampaignPaused    CampaignStatus = "paused"
)

// CampaignStatuses lists every valid campaign status.
var CampaignStatuses = []CampaignStatus{
	CampaignPlanning,
	CampaignActive,
	CampaignCompleted,
	CampaignPaused,
}

// Valid reports whether the status is one of the fixed enumeration.
func (s CampaignStatus) Valid() bool {
	for _, known := range CampaignStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Campaign is a fundraising campaign. Monetary amounts are decimal strings to
// avoid float drift on the wire.
type Campaign struct {
	ID         uuid.UUID      `json:"id"`
	Name       string         `json:"name"`
	Type       string         `json:"type"`
	Status     CampaignStatus `json:"status"`
	Goal       *string        `json:"goal"`
	Raised     *string        `json:"raised"`
	DonorCount int            `json:"donorCount"`
	GiftCount  int            `json:"giftCount"`
	OwnerID    *uuid.UUID     `json:"ownerId"`
	StartDate  *time.Time     `json:"startDate"`
	EndDate    *time.Time     `json:"endDate"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

// CampaignPatch carries the mutable fields of a partial update. Nil fields are
// left untouched.
type CampaignPatch struct {
	Name       *string         `json:"name"`
	Type       *string         `json:"type"`
	Status     *CampaignStatus `json:"status"`
	Goal       *string         `json:"goal"`
	Raised     *string         `json:"raised"`
	DonorCount *int            `json:"donorCount"`
	GiftCount  *int            `json:"giftCount"`
	OwnerID    *uuid.UUID      `json:"ownerId"`
	StartDate  *time.Time      `json:"startDate"`
	EndDate    *time.Time      `json:"endDate"`
}
