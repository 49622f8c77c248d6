package api

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/anaghasb/CC-phase2-integration/backend/industry-connect-service/internal/db"
	"github.com/anaghasb/CC-phase2-integration/backend/industry-connect-service/internal/models"
)

// memStore is an in-memory Store with the same not-found and cascade rules as the postgres schema.
type memStore struct {
	mu            sync.Mutex
	nextID        int
	partners      map[int]models.IndustryPartner
	links         map[int]models.UserIndustryLink
	events        map[int]models.Event
	registrations []models.EventRegistration
	feedback      []models.EventFeedback
	healthErr     error
	failWith      error
}

func newMemStore() *memStore {
	return &memStore{
		partners: map[int]models.IndustryPartner{},
		links:    map[int]models.UserIndustryLink{},
		events:   map[int]models.Event{},
	}
}

func (s *memStore) id() int {
	s.nextID++
	return s.nextID
}

func (s *memStore) Health(context.Context) error { return s.healthErr }

func (s *memStore) CreatePartner(_ context.Context, req models.IndustryPartnerCreateRequest) (*models.IndustryPartner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	p := models.IndustryPartner{
		ID:            s.id(),
		CompanyName:   *req.CompanyName,
		Domain:        *req.Domain,
		ContactPerson: *req.ContactPerson,
		ContactEmail:  req.ContactEmail,
		Description:   req.Description,
	}
	s.partners[p.ID] = p
	return &p, nil
}

func (s *memStore) ListPartners(context.Context) ([]models.IndustryPartner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	out := make([]models.IndustryPartner, 0, len(s.partners))
	for _, p := range s.partners {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memStore) GetPartner(_ context.Context, id int) (*models.IndustryPartner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.partners[id]
	if !ok {
		return nil, fmt.Errorf("partner: %w", db.ErrNotFound)
	}
	return &p, nil
}

func (s *memStore) UpdatePartner(_ context.Context, id int, req models.IndustryPartnerUpdateRequest) (*models.IndustryPartner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.partners[id]
	if !ok {
		return nil, fmt.Errorf("partner: %w", db.ErrNotFound)
	}
	if req.CompanyName.Set {
		p.CompanyName = req.CompanyName.Value
	}
	if req.Domain.Set {
		p.Domain = req.Domain.Value
	}
	if req.ContactPerson.Set {
		p.ContactPerson = req.ContactPerson.Value
	}
	if req.ContactEmail.Set {
		p.ContactEmail = req.ContactEmail.Value
	}
	if req.Description.Set {
		if req.Description.Null {
			p.Description = nil
		} else {
			v := req.Description.Value
			p.Description = &v
		}
	}
	s.partners[id] = p
	return &p, nil
}

func (s *memStore) DeletePartner(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.partners[id]; !ok {
		return fmt.Errorf("partner: %w", db.ErrNotFound)
	}
	delete(s.partners, id)
	for lid, l := range s.links {
		if l.PartnerID == id {
			delete(s.links, lid)
		}
	}
	return nil
}

func (s *memStore) CreateUserLink(_ context.Context, req models.UserIndustryLinkCreateRequest) (*models.UserIndustryLink, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.partners[*req.PartnerID]; !ok {
		return nil, fmt.Errorf("partner: %w", db.ErrNotFound)
	}
	l := models.UserIndustryLink{ID: s.id(), UserID: *req.UserID, PartnerID: *req.PartnerID}
	s.links[l.ID] = l
	return &l, nil
}

func (s *memStore) ListUserLinks(context.Context) ([]models.UserIndustryLink, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.UserIndustryLink, 0, len(s.links))
	for _, l := range s.links {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memStore) CreateEvent(_ context.Context, req models.EventCreateRequest) (*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := models.Event{
		ID:               s.id(),
		Title:            *req.Title,
		Description:      *req.Description,
		Datetime:         req.Datetime.Time.UTC(),
		Mode:             *req.Mode,
		Location:         *req.Location,
		HostOrganization: *req.HostOrganization,
		MaxParticipants:  *req.MaxParticipants,
	}
	s.events[e.ID] = e
	return &e, nil
}

func (s *memStore) ListUpcomingEvents(_ context.Context, now time.Time) ([]models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Event, 0)
	for _, e := range s.events {
		if e.Datetime.After(now) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Datetime.Before(out[j].Datetime) })
	return out, nil
}

func (s *memStore) GetEvent(_ context.Context, id int) (*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.events[id]
	if !ok {
		return nil, fmt.Errorf("event: %w", db.ErrNotFound)
	}
	return &e, nil
}

func (s *memStore) CreateRegistration(_ context.Context, req models.RegisterUserRequest) (*models.EventRegistration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := models.EventRegistration{ID: s.id(), EventID: *req.EventID, UserID: *req.UserID}
	s.registrations = append(s.registrations, r)
	return &r, nil
}

func (s *memStore) ListRegistrations(_ context.Context, eventID int) ([]models.EventRegistration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.EventRegistration, 0)
	for _, r := range s.registrations {
		if r.EventID == eventID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *memStore) CreateFeedback(_ context.Context, req models.FeedbackCreateRequest) (*models.EventFeedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := models.EventFeedback{ID: s.id(), EventID: *req.EventID, UserID: *req.UserID, Feedback: *req.Feedback}
	s.feedback = append(s.feedback, f)
	return &f, nil
}

var errStoreDown = errors.New("connection refused")
