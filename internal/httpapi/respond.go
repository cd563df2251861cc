package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/fundrazor/fundrazor/internal/domain"
)

// errorResponse is the JSON body returned for every failed request.
type errorResponse struct {
	Message string              `json:"message"`
	Errors  []domain.FieldError `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(payload)
}

// writeError maps the service error taxonomy to HTTP statuses: validation
// failures to 400, missing records to 404, everything else to a generic 500.
func writeError(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: verr.Message, Errors: verr.Fields})
		return
	}

	var nferr *domain.NotFoundError
	if errors.As(err, &nferr) {
		writeJSON(w, http.StatusNotFound, errorResponse{Message: nferr.Error()})
		return
	}

	log.Printf("[HTTP] internal error: %v", err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "internal server error"})
}
