package httpapi

import (
	"net/http"

	"github.com/fundrazor/fundrazor/internal/datahealth"
)

// DataHealthHandler serves GET /api/data-health.
type DataHealthHandler struct {
	service *datahealth.Service
}

// NewDataHealthHandler creates a data-health handler.
func NewDataHealthHandler(service *datahealth.Service) *DataHealthHandler {
	return &DataHealthHandler{service: service}
}

func (h *DataHealthHandler) Report(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.Report(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
