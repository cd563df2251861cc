package domain

import (
	"time"

	"github.com/google/uuid"
)

// OrganizationCanvas is a named, owned freeform diagram/canvas state blob.
type OrganizationCanvas struct {
	ID        uuid.UUID      `json:"id"`
	Name      string         `json:"name"`
	OwnerID   string         `json:"ownerId"`
	Data      map[string]any `json:"data"`
	IsDefault bool           `json:"isDefault"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// CanvasPatch carries the mutable fields of a canvas update. Nil fields are
// left untouched.
type CanvasPatch struct {
	Name      *string        `json:"name"`
	OwnerID   *string        `json:"ownerId"`
	Data      map[string]any `json:"data"`
	IsDefault *bool          `json:"isDefault"`
}
