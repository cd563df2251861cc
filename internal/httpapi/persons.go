package httpapi

import (
	"errors"
	"log"
	"net/http"

	"github.com/fundrazor/fundrazor/internal/domain"
	"github.com/fundrazor/fundrazor/internal/export"
	"github.com/fundrazor/fundrazor/internal/importer"
	"github.com/fundrazor/fundrazor/internal/repository"
)

// PersonHandler serves the /api/persons routes: listing, CRM-sync import, and
// CSV export.
type PersonHandler struct {
	persons  repository.PersonRepository
	importer *importer.Service
	exporter *export.Service
}

// NewPersonHandler creates a person handler.
func NewPersonHandler(persons repository.PersonRepository, imp *importer.Service, exp *export.Service) *PersonHandler {
	return &PersonHandler{persons: persons, importer: imp, exporter: exp}
}

func (h *PersonHandler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.persons.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if result == nil {
		result = []domain.Person{}
	}
	writeJSON(w, http.StatusOK, result)
}

// Import accepts a multipart upload with a "file" part holding a CSV or XLSX
// donor sheet.
func (h *PersonHandler) Import(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, domain.NewValidation("invalid form data: %v", err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, domain.NewValidation("file is required").WithField("file", "attach a CSV or XLSX file"))
		return
	}
	defer file.Close()

	summary, err := h.importer.Import(r.Context(), importer.Request{
		FileName: header.Filename,
		Data:     file,
	})
	if err != nil {
		if errors.Is(err, importer.ErrUnsupportedFormat) {
			writeError(w, domain.NewValidation("%v", err).WithField("file", "only .csv and .xlsx files are supported"))
			return
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// Export streams the donor base as a CSV attachment.
func (h *PersonHandler) Export(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="donors.csv"`)
	if err := h.exporter.WriteCSV(r.Context(), w); err != nil {
		// Headers may already be out; log and truncate rather than emit JSON.
		log.Printf("[HTTP] failed to export donors: %v", err)
	}
}
