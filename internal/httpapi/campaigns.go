package httpapi

import (
	"net/http"
	"time"

	"github.com/fundrazor/fundrazor/internal/campaigns"
	"github.com/fundrazor/fundrazor/internal/domain"

	"github.com/google/uuid"
)

// CampaignHandler serves the /api/campaigns routes.
type CampaignHandler struct {
	service *campaigns.Service
}

// NewCampaignHandler creates a campaign handler.
func NewCampaignHandler(service *campaigns.Service) *CampaignHandler {
	return &CampaignHandler{service: service}
}

// campaignRequest is the wire shape shared by create and patch. Dates arrive
// as strings and are parsed against the accepted layouts.
type campaignRequest struct {
	Name       *string    `json:"name"`
	Type       *string    `json:"type"`
	Status     *string    `json:"status"`
	Goal       *string    `json:"goal"`
	Raised     *string    `json:"raised"`
	DonorCount *int       `json:"donorCount"`
	GiftCount  *int       `json:"giftCount"`
	OwnerID    *uuid.UUID `json:"ownerId"`
	StartDate  *string    `json:"startDate"`
	EndDate    *string    `json:"endDate"`
}

func (h *CampaignHandler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if result == nil {
		result = []domain.Campaign{}
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *CampaignHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	campaign, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, campaign)
}

func (h *CampaignHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req campaignRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	in := campaigns.CreateInput{
		Goal:    req.Goal,
		Raised:  req.Raised,
		OwnerID: req.OwnerID,
	}
	if req.Name != nil {
		in.Name = *req.Name
	}
	if req.Type != nil {
		in.Type = *req.Type
	}
	if req.Status != nil {
		in.Status = domain.CampaignStatus(*req.Status)
	}
	if req.DonorCount != nil {
		in.DonorCount = *req.DonorCount
	}
	if req.GiftCount != nil {
		in.GiftCount = *req.GiftCount
	}

	var err error
	if in.StartDate, err = optionalDate("startDate", req.StartDate); err != nil {
		writeError(w, err)
		return
	}
	if in.EndDate, err = optionalDate("endDate", req.EndDate); err != nil {
		writeError(w, err)
		return
	}

	campaign, err := h.service.Create(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, campaign)
}

func (h *CampaignHandler) Patch(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req campaignRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	patch := domain.CampaignPatch{
		Name:       req.Name,
		Type:       req.Type,
		Goal:       req.Goal,
		Raised:     req.Raised,
		DonorCount: req.DonorCount,
		GiftCount:  req.GiftCount,
		OwnerID:    req.OwnerID,
	}
	if req.Status != nil {
		status := domain.CampaignStatus(*req.Status)
		patch.Status = &status
	}
	if patch.StartDate, err = optionalDate("startDate", req.StartDate); err != nil {
		writeError(w, err)
		return
	}
	if patch.EndDate, err = optionalDate("endDate", req.EndDate); err != nil {
		writeError(w, err)
		return
	}

	campaign, err := h.service.Update(r.Context(), id, patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, campaign)
}

func (h *CampaignHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	campaign, err := h.service.Delete(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, campaign)
}

func optionalDate(field string, value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	parsed, err := parseDate(field, *value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
