package httpapi

import (
	"net/http"

	"github.com/fundrazor/fundrazor/internal/canvas"
	"github.com/fundrazor/fundrazor/internal/domain"
)

// CanvasHandler serves the /api/organization-canvases routes.
type CanvasHandler struct {
	service *canvas.Service
}

// NewCanvasHandler creates a canvas handler.
func NewCanvasHandler(service *canvas.Service) *CanvasHandler {
	return &CanvasHandler{service: service}
}

type canvasRequest struct {
	Name      *string        `json:"name"`
	OwnerID   *string        `json:"ownerId"`
	Data      map[string]any `json:"data"`
	IsDefault *bool          `json:"isDefault"`
}

func (h *CanvasHandler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context(), r.URL.Query().Get("ownerId"))
	if err != nil {
		writeError(w, err)
		return
	}
	if result == nil {
		result = []domain.OrganizationCanvas{}
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *CanvasHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	result, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Create responds 200 rather than 201; the SPA's canvas editor expects the
// created record on a plain OK.
func (h *CanvasHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req canvasRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	in := canvas.CreateInput{Data: req.Data}
	if req.Name != nil {
		in.Name = *req.Name
	}
	if req.OwnerID != nil {
		in.OwnerID = *req.OwnerID
	}
	if req.IsDefault != nil {
		in.IsDefault = *req.IsDefault
	}

	result, err := h.service.Create(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *CanvasHandler) Put(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req canvasRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.service.Update(r.Context(), id, domain.CanvasPatch{
		Name:      req.Name,
		OwnerID:   req.OwnerID,
		Data:      req.Data,
		IsDefault: req.IsDefault,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *CanvasHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if _, err := h.service.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
