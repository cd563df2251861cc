package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/fundrazor/fundrazor/internal/domain"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// dateLayouts are the accepted formats for date fields, tried in order.
var dateLayouts = []string{"2006-01-02", time.RFC3339}

func decodeBody(r *http.Request, target any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		return domain.NewValidation("invalid request body").WithField("body", "request body must be valid JSON")
	}
	return nil
}

func pathID(r *http.Request) (uuid.UUID, error) {
	raw := mux.Vars(r)["id"]
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domain.NewValidation("invalid id %q", raw).WithField("id", "id must be a UUID")
	}
	return id, nil
}

// parseDate parses a date field, returning a ValidationError naming the field
// when no layout matches.
func parseDate(field, value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, domain.NewValidation("invalid %s", field).
		WithField(field, field+" must be a date like 2006-01-02")
}
