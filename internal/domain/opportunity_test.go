package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestOpportunity_Unassigned(t *testing.T) {
	owner := uuid.New()
	zero := uuid.Nil

	cases := []struct {
		name    string
		ownerID *uuid.UUID
		want    bool
	}{
		{"no owner", nil, true},
		{"zero-uuid owner", &zero, true},
		{"assigned owner", &owner, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			o := Opportunity{OwnerID: tc.ownerID}
			if got := o.Unassigned(); got != tc.want {
				t.Fatalf("Unassigned() = %v, want %v", got, tc.want)
			}
		})
	}
}
