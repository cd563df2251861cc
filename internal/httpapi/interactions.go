package httpapi

import (
	"net/http"
	"time"

	"github.com/fundrazor/fundrazor/internal/domain"
	"github.com/fundrazor/fundrazor/internal/interactions"

	"github.com/google/uuid"
)

// InteractionHandler serves the /api/interactions routes.
type InteractionHandler struct {
	service *interactions.Service
}

// NewInteractionHandler creates an interaction handler.
func NewInteractionHandler(service *interactions.Service) *InteractionHandler {
	return &InteractionHandler{service: service}
}

// interactionRequest is the wire shape shared by create and patch.
type interactionRequest struct {
	PersonID         *uuid.UUID `json:"personId"`
	Type             *string    `json:"type"`
	OccurredAt       *time.Time `json:"occurredAt"`
	OwnerID          *uuid.UUID `json:"ownerId"`
	Notes            *string    `json:"notes"`
	Source           *string    `json:"source"`
	SourceSystem     *string    `json:"sourceSystem"`
	SourceRecordID   *string    `json:"sourceRecordId"`
	SyncedAt         *time.Time `json:"syncedAt"`
	DataQualityScore *int       `json:"dataQualityScore"`
}

func (h *InteractionHandler) List(w http.ResponseWriter, r *http.Request) {
	var personID *uuid.UUID
	if raw := r.URL.Query().Get("personId"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, domain.NewValidation("invalid personId %q", raw).
				WithField("personId", "personId must be a UUID"))
			return
		}
		personID = &parsed
	}

	result, err := h.service.List(r.Context(), personID)
	if err != nil {
		writeError(w, err)
		return
	}
	if result == nil {
		result = []domain.Interaction{}
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *InteractionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	interaction, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, interaction)
}

func (h *InteractionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req interactionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	in := interactions.CreateInput{
		OwnerID:          req.OwnerID,
		Notes:            req.Notes,
		Source:           req.Source,
		SourceSystem:     req.SourceSystem,
		SourceRecordID:   req.SourceRecordID,
		SyncedAt:         req.SyncedAt,
		DataQualityScore: req.DataQualityScore,
	}
	if req.PersonID != nil {
		in.PersonID = *req.PersonID
	}
	if req.Type != nil {
		in.Type = domain.InteractionType(*req.Type)
	}
	if req.OccurredAt != nil {
		in.OccurredAt = *req.OccurredAt
	}

	interaction, err := h.service.Create(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, interaction)
}

func (h *InteractionHandler) Patch(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req interactionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	patch := domain.InteractionPatch{
		OccurredAt:       req.OccurredAt,
		OwnerID:          req.OwnerID,
		Notes:            req.Notes,
		Source:           req.Source,
		SourceSystem:     req.SourceSystem,
		SourceRecordID:   req.SourceRecordID,
		SyncedAt:         req.SyncedAt,
		DataQualityScore: req.DataQualityScore,
	}
	if req.Type != nil {
		interactionType := domain.InteractionType(*req.Type)
		patch.Type = &interactionType
	}

	interaction, err := h.service.Update(r.Context(), id, patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, interaction)
}

func (h *InteractionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	interaction, err := h.service.Delete(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, interaction)
}
