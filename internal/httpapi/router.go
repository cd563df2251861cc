// Package httpapi exposes the FundRazor REST surface.
package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Handlers groups the route handlers the router mounts.
type Handlers struct {
	DataHealth   *DataHealthHandler
	Campaigns    *CampaignHandler
	Interactions *InteractionHandler
	Canvases     *CanvasHandler
	Persons      *PersonHandler
}

// NewRouter mounts the REST routes under /api. Endpoints marked auth-required
// by the API contract sit behind the bearer-token middleware.
func NewRouter(h Handlers, authToken string) *mux.Router {
	router := mux.NewRouter()
	api := router.PathPrefix("/api").Subrouter()
	authed := requireToken(authToken)

	api.HandleFunc("/data-health", h.DataHealth.Report).Methods(http.MethodGet)

	api.HandleFunc("/campaigns", h.Campaigns.List).Methods(http.MethodGet)
	api.HandleFunc("/campaigns/{id}", h.Campaigns.Get).Methods(http.MethodGet)
	api.Handle("/campaigns", authed(http.HandlerFunc(h.Campaigns.Create))).Methods(http.MethodPost)
	api.Handle("/campaigns/{id}", authed(http.HandlerFunc(h.Campaigns.Patch))).Methods(http.MethodPatch)
	api.Handle("/campaigns/{id}", authed(http.HandlerFunc(h.Campaigns.Delete))).Methods(http.MethodDelete)

	api.Handle("/interactions", authed(http.HandlerFunc(h.Interactions.List))).Methods(http.MethodGet)
	api.Handle("/interactions/{id}", authed(http.HandlerFunc(h.Interactions.Get))).Methods(http.MethodGet)
	api.Handle("/interactions", authed(http.HandlerFunc(h.Interactions.Create))).Methods(http.MethodPost)
	api.Handle("/interactions/{id}", authed(http.HandlerFunc(h.Interactions.Patch))).Methods(http.MethodPatch)
	api.Handle("/interactions/{id}", authed(http.HandlerFunc(h.Interactions.Delete))).Methods(http.MethodDelete)

	api.HandleFunc("/organization-canvases", h.Canvases.List).Methods(http.MethodGet)
	api.HandleFunc("/organization-canvases/{id}", h.Canvases.Get).Methods(http.MethodGet)
	api.HandleFunc("/organization-canvases", h.Canvases.Create).Methods(http.MethodPost)
	api.HandleFunc("/organization-canvases/{id}", h.Canvases.Put).Methods(http.MethodPut)
	api.HandleFunc("/organization-canvases/{id}", h.Canvases.Delete).Methods(http.MethodDelete)

	api.HandleFunc("/persons", h.Persons.List).Methods(http.MethodGet)
	api.HandleFunc("/persons/export", h.Persons.Export).Methods(http.MethodGet)
	api.Handle("/persons/import", authed(http.HandlerFunc(h.Persons.Import))).Methods(http.MethodPost)

	return router
}
