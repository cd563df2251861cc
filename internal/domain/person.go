package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Person represents a donor or contact record. Persons are written by the
// CRM-sync importer or manual entry; the data-health report only reads them.
type Person struct {
	ID           uuid.UUID `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        *string   `json:"email"`
	Phone        *string   `json:"phone"`
	Organization *string   `json:"organization"`
	WealthBand   *string   `json:"wealthBand"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NewPerson creates a person with a fresh identifier and timestamps.
func NewPerson(firstName, lastName string) Person {
	now := time.Now()
	return Person{
		ID:        uuid.New(),
		FirstName: firstName,
		LastName:  lastName,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// HasEmail reports whether the person has a non-blank primary email.
func (p Person) HasEmail() bool {
	return p.Email != nil && strings.TrimSpace(*p.Email) != ""
}

// HasPhone reports whether the person has a non-blank primary phone.
func (p Person) HasPhone() bool {
	return p.Phone != nil && strings.TrimSpace(*p.Phone) != ""
}

// HasSegmentation reports whether the person carries either an organization
// name or a wealth band.
func (p Person) HasSegmentation() bool {
	return (p.Organization != nil && *p.Organization != "") ||
		(p.WealthBand != nil && *p.WealthBand != "")
}
