package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fundrazor/fundrazor/internal/campaigns"
	"github.com/fundrazor/fundrazor/internal/canvas"
	"github.com/fundrazor/fundrazor/internal/datahealth"
	"github.com/fundrazor/fundrazor/internal/domain"
	"github.com/fundrazor/fundrazor/internal/export"
	"github.com/fundrazor/fundrazor/internal/importer"
	"github.com/fundrazor/fundrazor/internal/interactions"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// memStore backs every repository interface with in-process maps so handler
// tests can exercise the real router, services, and error mapping.
type memStore struct {
	persons         map[uuid.UUID]domain.Person
	interactions    map[uuid.UUID]domain.Interaction
	opportunities   map[uuid.UUID]domain.Opportunity
	campaigns       map[uuid.UUID]domain.Campaign
	canvases        map[uuid.UUID]domain.OrganizationCanvas
	duplicateGroups int
}

func newMemStore() *memStore {
	return &memStore{
		persons:       map[uuid.UUID]domain.Person{},
		interactions:  map[uuid.UUID]domain.Interaction{},
		opportunities: map[uuid.UUID]domain.Opportunity{},
		campaigns:     map[uuid.UUID]domain.Campaign{},
		canvases:      map[uuid.UUID]domain.OrganizationCanvas{},
	}
}

type memPersonRepo struct{ store *memStore }

func (r *memPersonRepo) List(ctx context.Context) ([]domain.Person, error) {
	var all []domain.Person
	for _, p := range r.store.persons {
		all = append(all, p)
	}
	return all, nil
}

func (r *memPersonRepo) GetByEmail(ctx context.Context, email string) (domain.Person, error) {
	for _, p := range r.store.persons {
		if p.Email != nil && strings.EqualFold(*p.Email, email) {
			return p, nil
		}
	}
	return domain.Person{}, domain.NewNotFound("person", email)
}

func (r *memPersonRepo) Create(ctx context.Context, p domain.Person) (domain.Person, error) {
	r.store.persons[p.ID] = p
	return p, nil
}

func (r *memPersonRepo) Update(ctx context.Context, p domain.Person) (domain.Person, error) {
	if _, ok := r.store.persons[p.ID]; !ok {
		return domain.Person{}, domain.NewNotFound("person", p.ID.String())
	}
	r.store.persons[p.ID] = p
	return p, nil
}

func (r *memPersonRepo) CountDuplicateNameGroups(ctx context.Context) (int, error) {
	return r.store.duplicateGroups, nil
}

type memInteractionRepo struct{ store *memStore }

func (r *memInteractionRepo) List(ctx context.Context) ([]domain.Interaction, error) {
	var all []domain.Interaction
	for _, i := range r.store.interactions {
		all = append(all, i)
	}
	return all, nil
}

func (r *memInteractionRepo) ListByPerson(ctx context.Context, personID uuid.UUID) ([]domain.Interaction, error) {
	var matched []domain.Interaction
	for _, i := range r.store.interactions {
		if i.PersonID == personID {
			matched = append(matched, i)
		}
	}
	return matched, nil
}

func (r *memInteractionRepo) ListSince(ctx context.Context, since time.Time) ([]domain.Interaction, error) {
	var matched []domain.Interaction
	for _, i := range r.store.interactions {
		if !i.OccurredAt.Before(since) {
			matched = append(matched, i)
		}
	}
	return matched, nil
}

func (r *memInteractionRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Interaction, error) {
	i, ok := r.store.interactions[id]
	if !ok {
		return domain.Interaction{}, domain.NewNotFound("interaction", id.String())
	}
	return i, nil
}

func (r *memInteractionRepo) Create(ctx context.Context, i domain.Interaction) (domain.Interaction, error) {
	r.store.interactions[i.ID] = i
	return i, nil
}

func (r *memInteractionRepo) Update(ctx context.Context, i domain.Interaction) (domain.Interaction, error) {
	if _, ok := r.store.interactions[i.ID]; !ok {
		return domain.Interaction{}, domain.NewNotFound("interaction", i.ID.String())
	}
	r.store.interactions[i.ID] = i
	return i, nil
}

func (r *memInteractionRepo) Delete(ctx context.Context, id uuid.UUID) (domain.Interaction, error) {
	i, ok := r.store.interactions[id]
	if !ok {
		return domain.Interaction{}, domain.NewNotFound("interaction", id.String())
	}
	delete(r.store.interactions, id)
	return i, nil
}

type memOpportunityRepo struct{ store *memStore }

func (r *memOpportunityRepo) ListUnassigned(ctx context.Context) ([]domain.Opportunity, error) {
	var matched []domain.Opportunity
	for _, o := range r.store.opportunities {
		if o.Unassigned() {
			matched = append(matched, o)
		}
	}
	return matched, nil
}

type memCampaignRepo struct{ store *memStore }

func (r *memCampaignRepo) List(ctx context.Context) ([]domain.Campaign, error) {
	var all []domain.Campaign
	for _, c := range r.store.campaigns {
		all = append(all, c)
	}
	return all, nil
}

func (r *memCampaignRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Campaign, error) {
	c, ok := r.store.campaigns[id]
	if !ok {
		return domain.Campaign{}, domain.NewNotFound("campaign", id.String())
	}
	return c, nil
}

func (r *memCampaignRepo) Create(ctx context.Context, c domain.Campaign) (domain.Campaign, error) {
	r.store.campaigns[c.ID] = c
	return c, nil
}

func (r *memCampaignRepo) Update(ctx context.Context, c domain.Campaign) (domain.Campaign, error) {
	if _, ok := r.store.campaigns[c.ID]; !ok {
		return domain.Campaign{}, domain.NewNotFound("campaign", c.ID.String())
	}
	r.store.campaigns[c.ID] = c
	return c, nil
}

func (r *memCampaignRepo) Delete(ctx context.Context, id uuid.UUID) (domain.Campaign, error) {
	c, ok := r.store.campaigns[id]
	if !ok {
		return domain.Campaign{}, domain.NewNotFound("campaign", id.String())
	}
	delete(r.store.campaigns, id)
	return c, nil
}

type memCanvasRepo struct{ store *memStore }

func (r *memCanvasRepo) List(ctx context.Context, ownerID string) ([]domain.OrganizationCanvas, error) {
	var matched []domain.OrganizationCanvas
	for _, c := range r.store.canvases {
		if ownerID == "" || c.OwnerID == ownerID {
			matched = append(matched, c)
		}
	}
	return matched, nil
}

func (r *memCanvasRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.OrganizationCanvas, error) {
	c, ok := r.store.canvases[id]
	if !ok {
		return domain.OrganizationCanvas{}, domain.NewNotFound("canvas", id.String())
	}
	return c, nil
}

func (r *memCanvasRepo) Create(ctx context.Context, c domain.OrganizationCanvas) (domain.OrganizationCanvas, error) {
	r.store.canvases[c.ID] = c
	return c, nil
}

func (r *memCanvasRepo) Update(ctx context.Context, c domain.OrganizationCanvas) (domain.OrganizationCanvas, error) {
	if _, ok := r.store.canvases[c.ID]; !ok {
		return domain.OrganizationCanvas{}, domain.NewNotFound("canvas", c.ID.String())
	}
	r.store.canvases[c.ID] = c
	return c, nil
}

func (r *memCanvasRepo) Delete(ctx context.Context, id uuid.UUID) (domain.OrganizationCanvas, error) {
	c, ok := r.store.canvases[id]
	if !ok {
		return domain.OrganizationCanvas{}, domain.NewNotFound("canvas", id.String())
	}
	delete(r.store.canvases, id)
	return c, nil
}

// newTestRouter wires the full route table over the in-memory store.
func newTestRouter(store *memStore, authToken string) *mux.Router {
	personRepo := &memPersonRepo{store: store}
	interactionRepo := &memInteractionRepo{store: store}
	opportunityRepo := &memOpportunityRepo{store: store}
	campaignRepo := &memCampaignRepo{store: store}
	canvasRepo := &memCanvasRepo{store: store}

	return NewRouter(Handlers{
		DataHealth:   NewDataHealthHandler(datahealth.NewService(personRepo, interactionRepo, opportunityRepo)),
		Campaigns:    NewCampaignHandler(campaigns.NewService(campaignRepo)),
		Interactions: NewInteractionHandler(interactions.NewService(interactionRepo)),
		Canvases:     NewCanvasHandler(canvas.NewService(canvasRepo)),
		Persons:      NewPersonHandler(personRepo, importer.NewService(personRepo), export.NewService(personRepo)),
	}, authToken)
}

// doJSON issues a request with an optional JSON body and decodes the response
// into a generic map.
func doJSON(t *testing.T, router *mux.Router, method, path string, body any, headers map[string]string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	var decoded map[string]any
	if raw := recorder.Body.Bytes(); len(raw) > 0 && strings.HasPrefix(recorder.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("failed to parse response: %v\nRaw: %s", err, raw)
		}
	}
	return recorder, decoded
}

// doJSONList is doJSON for endpoints returning a JSON array.
func doJSONList(t *testing.T, router *mux.Router, method, path string) (*httptest.ResponseRecorder, []any) {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	var decoded []any
	if err := json.Unmarshal(recorder.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to parse response: %v\nRaw: %s", err, recorder.Body.String())
	}
	return recorder, decoded
}
