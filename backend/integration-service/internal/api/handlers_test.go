package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/anaghasb/CC-phase2-integration/backend/integration-service/internal/clients"
	"github.com/anaghasb/CC-phase2-integration/backend/integration-service/internal/db"
	"github.com/anaghasb/CC-phase2-integration/backend/integration-service/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUpstream serves records by id and records every lookup.
type fakeUpstream struct {
	records map[int]string
	listErr error
	calls   []int
}

func (f *fakeUpstream) get(id int) (json.RawMessage, error) {
	f.calls = append(f.calls, id)
	rec, ok := f.records[id]
	if !ok {
		return nil, fmt.Errorf("id %d: %w", id, clients.ErrNotFound)
	}
	return json.RawMessage(rec), nil
}

func (f *fakeUpstream) list() (json.RawMessage, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]json.RawMessage, 0, len(f.records))
	for id := 0; len(out) < len(f.records); id++ {
		if rec, ok := f.records[id]; ok {
			out = append(out, json.RawMessage(rec))
		}
	}
	return json.Marshal(out)
}

type fakeProcesses struct{ fakeUpstream }

func (f *fakeProcesses) ListProcesses(context.Context) (json.RawMessage, error) { return f.list() }
func (f *fakeProcesses) GetProcess(_ context.Context, id int) (json.RawMessage, error) {
	return f.get(id)
}

type fakePartners struct{ fakeUpstream }

func (f *fakePartners) ListPartners(context.Context) (json.RawMessage, error) { return f.list() }
func (f *fakePartners) GetPartner(_ context.Context, id int) (json.RawMessage, error) {
	return f.get(id)
}

type memLinks struct {
	mu        sync.Mutex
	nextID    int
	links     []models.ProcessPartnerLink
	healthErr error
}

func (s *memLinks) Health(context.Context) error { return s.healthErr }

func (s *memLinks) CreateLink(_ context.Context, processID, partnerID int) (*models.ProcessPartnerLink, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	l := models.ProcessPartnerLink{ID: s.nextID, ProcessID: processID, PartnerID: partnerID}
	s.links = append(s.links, l)
	return &l, nil
}

func (s *memLinks) filter(match func(models.ProcessPartnerLink) bool) []models.ProcessPartnerLink {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.ProcessPartnerLink, 0)
	for _, l := range s.links {
		if match(l) {
			out = append(out, l)
		}
	}
	return out
}

func (s *memLinks) ListLinksByPartner(_ context.Context, partnerID int) ([]models.ProcessPartnerLink, error) {
	return s.filter(func(l models.ProcessPartnerLink) bool { return l.PartnerID == partnerID }), nil
}

func (s *memLinks) ListLinksByProcess(_ context.Context, processID int) ([]models.ProcessPartnerLink, error) {
	return s.filter(func(l models.ProcessPartnerLink) bool { return l.ProcessID == processID }), nil
}

func (s *memLinks) DeleteLink(_ context.Context, processID, partnerID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, l := range s.links {
		if l.ProcessID == processID && l.PartnerID == partnerID {
			s.links = append(s.links[:i], s.links[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("link: %w", db.ErrNotFound)
}

const (
	weld  = `{"id":1,"name":"Weld","amount":10,"completed_qty":3}`
	paint = `{"id":2,"name":"Paint","amount":5,"completed_qty":5}`
	acme  = `{"id":1,"company_name":"Acme","domain":"mfg","contact_person":"A. Lee","contact_email":"a@acme.com","description":null}`
	bolt  = `{"id":2,"company_name":"Bolt","domain":"auto","contact_person":"B. Ray","contact_email":"b@bolt.io","description":"fasteners"}`
)

type fixture struct {
	router    *gin.Engine
	processes *fakeProcesses
	partners  *fakePartners
	links     *memLinks
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	f := &fixture{
		processes: &fakeProcesses{fakeUpstream{records: map[int]string{1: weld, 2: paint}}},
		partners:  &fakePartners{fakeUpstream{records: map[int]string{1: acme, 2: bolt}}},
		links:     &memLinks{},
	}
	h := NewHandler(f.processes, f.partners, f.links)
	f.router = gin.New()
	f.router.GET("/ready", h.Health)
	h.RegisterRoutes(f.router)
	return f
}

func (f *fixture) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestRelayCollections(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/processes/", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "["+weld+","+paint+"]", w.Body.String())

	w = f.do(t, http.MethodGet, "/partners/", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "["+acme+","+bolt+"]", w.Body.String())
}

func TestRelayErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"upstream status", &clients.StatusError{Upstream: "process", StatusCode: http.StatusServiceUnavailable}, http.StatusServiceUnavailable},
		{"upstream 404", fmt.Errorf("x: %w", clients.ErrNotFound), http.StatusNotFound},
		{"unreachable", errors.New("dial tcp: connection refused"), http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.processes.listErr = tt.err
			f.partners.listErr = tt.err

			w := f.do(t, http.MethodGet, "/processes/", "")
			assert.Equal(t, tt.status, w.Code)
			assert.JSONEq(t, `{"detail":"Failed to fetch processes"}`, w.Body.String())

			w = f.do(t, http.MethodGet, "/partners/", "")
			assert.Equal(t, tt.status, w.Code)
			assert.JSONEq(t, `{"detail":"Failed to fetch partners"}`, w.Body.String())
		})
	}
}

func TestCreateLink(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/link/", `{"process_id":1,"partner_id":2}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.JSONEq(t, `{"id":1,"process_id":1,"partner_id":2}`, w.Body.String())
	assert.Len(t, f.links.links, 1)
}

func TestCreateLink_ProcessCheckedFirst(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/link/", `{"process_id":99,"partner_id":98}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail":"Process not found"}`, w.Body.String())
	assert.Empty(t, f.partners.calls, "partner lookup must not run after a failed process lookup")
	assert.Empty(t, f.links.links)
}

func TestCreateLink_UnknownPartner(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/link/", `{"process_id":1,"partner_id":98}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail":"Partner not found"}`, w.Body.String())
	assert.Empty(t, f.links.links)
}

func TestCreateLink_BadBody(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/link/", `{"process_id":"one"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, f.processes.calls)
}

func TestPartnerProcesses_SkipsUnresolved(t *testing.T) {
	f := newFixture(t)
	f.do(t, http.MethodPost, "/link/", `{"process_id":1,"partner_id":1}`)
	f.do(t, http.MethodPost, "/link/", `{"process_id":2,"partner_id":1}`)
	delete(f.processes.records, 2)

	w := f.do(t, http.MethodGet, "/partner/1/processes", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "["+weld+"]", w.Body.String())
}

func TestPartnerProcesses_Empty(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/partner/2/processes", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestPartnerProcesses_UnknownPartner(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/partner/42/processes", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail":"Partner not found"}`, w.Body.String())

	w = f.do(t, http.MethodGet, "/partner/abc/processes", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProcessPartners_SkipsUnresolved(t *testing.T) {
	f := newFixture(t)
	f.do(t, http.MethodPost, "/link/", `{"process_id":1,"partner_id":1}`)
	f.do(t, http.MethodPost, "/link/", `{"process_id":1,"partner_id":2}`)
	delete(f.partners.records, 1)

	w := f.do(t, http.MethodGet, "/process/1/partners", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "["+bolt+"]", w.Body.String())

	w = f.do(t, http.MethodGet, "/process/42/partners", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail":"Process not found"}`, w.Body.String())
}

func TestDeleteLink(t *testing.T) {
	f := newFixture(t)
	f.do(t, http.MethodPost, "/link/", `{"process_id":1,"partner_id":2}`)
	f.do(t, http.MethodPost, "/link/", `{"process_id":1,"partner_id":2}`)
	f.processes.calls = nil
	f.partners.calls = nil

	w := f.do(t, http.MethodDelete, "/link/?process_id=1&partner_id=2", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Link removed successfully"}`, w.Body.String())
	require.Len(t, f.links.links, 1)
	assert.Equal(t, 2, f.links.links[0].ID)
	assert.Empty(t, f.processes.calls)
	assert.Empty(t, f.partners.calls)

	f.do(t, http.MethodDelete, "/link/?process_id=1&partner_id=2", "")
	w = f.do(t, http.MethodDelete, "/link/?process_id=1&partner_id=2", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail":"Link not found"}`, w.Body.String())

	w = f.do(t, http.MethodDelete, "/link/?process_id=1", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealth(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusOK, w.Code)

	f.links.healthErr = errors.New("connection refused")
	w = f.do(t, http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestCreateLink_ZeroIDsReachUpstream(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/link/", `{"process_id":0,"partner_id":1}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail":"Process not found"}`, w.Body.String())
	assert.Equal(t, []int{0}, f.processes.calls)

	f.processes.records[0] = `{"id":0,"name":"Setup","amount":1,"completed_qty":0}`
	f.partners.records[0] = `{"id":0,"company_name":"Zero","domain":"x","contact_person":"Z","contact_email":"z@zero.io","description":null}`
	w = f.do(t, http.MethodPost, "/link/", `{"process_id":0,"partner_id":0}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.JSONEq(t, `{"id":1,"process_id":0,"partner_id":0}`, w.Body.String())
}

func TestCreateLink_MissingFields(t *testing.T) {
	f := newFixture(t)

	for _, body := range []string{`{"partner_id":1}`, `{"process_id":1}`, `{"process_id":null,"partner_id":1}`} {
		w := f.do(t, http.MethodPost, "/link/", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
	assert.Empty(t, f.processes.calls)
}

func TestDeleteLink_ZeroIDs(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodDelete, "/link/?process_id=0&partner_id=0", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail":"Link not found"}`, w.Body.String())

	w = f.do(t, http.MethodDelete, "/link/?process_id=x&partner_id=0", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPartnerProcesses_ZeroID(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/partner/0/processes", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail":"Partner not found"}`, w.Body.String())
}
