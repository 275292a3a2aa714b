// Package memory provides process-local repositories for DATA_BACKEND=memory and tests.
package memory

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"locali/database/repository"
	eventRepo "locali/database/repository/event"
	userRepo "locali/database/repository/user"
	"locali/models"
)

// Store holds users, events and attendees behind one lock so RSVPs stay consistent.
type Store struct {
	mu        sync.Mutex
	users     map[string]models.User
	events    map[string]models.Event
	attendees map[string]map[string]models.Attendee // eventID -> userID -> attendee
	creds     map[string]models.Credential          // email -> credential
	nextID    int
}

func NewStore() *Store {
	return &Store{
		users:     make(map[string]models.User),
		events:    make(map[string]models.Event),
		attendees: make(map[string]map[string]models.Attendee),
		creds:     make(map[string]models.Credential),
	}
}

// Events returns the store as an EventRepository.
func (s *Store) Events() eventRepo.EventRepository { return (*events)(s) }

// Users returns the store as a UserRepository.
func (s *Store) Users() userRepo.UserRepository { return (*users)(s) }

// Credentials returns the store as a CredentialRepository.
func (s *Store) Credentials() userRepo.CredentialRepository { return (*credentials)(s) }

type events Store

func (r *events) Create(_ context.Context, ev *models.Event) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	ev.ID = "evt-" + strconv.Itoa(r.nextID)
	now := time.Now()
	ev.CreatedAt = now
	ev.UpdatedAt = now
	r.events[ev.ID] = cloneEvent(*ev)
	return ev.ID, nil
}

func (r *events) GetByID(_ context.Context, id string) (*models.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ev, ok := r.events[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := cloneEvent(ev)
	return &out, nil
}

func (r *events) List(_ context.Context, q eventRepo.Query) ([]models.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Event{}
	for _, ev := range r.events {
		if q.Featured && !ev.Featured {
			continue
		}
		if q.HostID != "" && ev.HostID != q.HostID {
			continue
		}
		out = append(out, cloneEvent(ev))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date == out[j].Date {
			return out[i].ID < out[j].ID
		}
		return out[i].Date < out[j].Date
	})
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (r *events) Update(_ context.Context, id string, fields map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ev, ok := r.events[id]
	if !ok {
		return repository.ErrNotFound
	}
	applyEventFields(&ev, fields)
	ev.UpdatedAt = time.Now()
	r.events[id] = ev
	return nil
}

func (r *events) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.events, id)
	for userID := range r.attendees[id] {
		if u, ok := r.users[userID]; ok {
			u.RsvpedEvents = without(u.RsvpedEvents, id)
			r.users[userID] = u
		}
	}
	delete(r.attendees, id)
	return nil
}

func (r *events) AddAppliedSuggestion(_ context.Context, id, suggestionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ev, ok := r.events[id]
	if !ok {
		return repository.ErrNotFound
	}
	if !contains(ev.AppliedSuggestions, suggestionID) {
		ev.AppliedSuggestions = append(ev.AppliedSuggestions, suggestionID)
	}
	r.events[id] = ev
	return nil
}

func (r *events) AddAttendee(_ context.Context, eventID string, a models.Attendee) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ev, ok := r.events[eventID]
	if !ok {
		return repository.ErrNotFound
	}
	if _, ok := r.attendees[eventID][a.UserID]; ok {
		return repository.ErrAlreadyAttending
	}
	if ev.Capacity > 0 && ev.AttendeeCount >= ev.Capacity {
		return repository.ErrEventFull
	}
	if r.attendees[eventID] == nil {
		r.attendees[eventID] = make(map[string]models.Attendee)
	}
	a.EventID = eventID
	r.attendees[eventID][a.UserID] = a
	ev.AttendeeCount++
	r.events[eventID] = ev
	if u, ok := r.users[a.UserID]; ok && !contains(u.RsvpedEvents, eventID) {
		u.RsvpedEvents = append(u.RsvpedEvents, eventID)
		r.users[a.UserID] = u
	}
	return nil
}

func (r *events) RemoveAttendee(_ context.Context, eventID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ev, ok := r.events[eventID]
	if !ok {
		return repository.ErrNotFound
	}
	if _, ok := r.attendees[eventID][userID]; !ok {
		return repository.ErrNotAttending
	}
	delete(r.attendees[eventID], userID)
	if ev.AttendeeCount > 0 {
		ev.AttendeeCount--
	}
	r.events[eventID] = ev
	if u, ok := r.users[userID]; ok {
		u.RsvpedEvents = without(u.RsvpedEvents, eventID)
		r.users[userID] = u
	}
	return nil
}

func (r *events) GetAttendee(_ context.Context, eventID, userID string) (*models.Attendee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.attendees[eventID][userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &a, nil
}

func (r *events) ListAttendees(_ context.Context, eventID string) ([]models.Attendee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Attendee{}
	for _, a := range r.attendees[eventID] {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].UserID < out[j].UserID
		}
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out, nil
}

type users Store

func (r *users) Create(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; ok {
		return repository.ErrDuplicate
	}
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	r.users[u.ID] = cloneUser(*u)
	return nil
}

func (r *users) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := cloneUser(u)
	return &out, nil
}

func (r *users) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			out := cloneUser(u)
			return &out, nil
		}
	}
	return nil, nil
}

func (r *users) GetByIDs(_ context.Context, ids []string) (map[string]*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]*models.User, len(ids))
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			c := cloneUser(u)
			out[id] = &c
		}
	}
	return out, nil
}

func (r *users) Update(_ context.Context, id string, fields map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	applyUserFields(&u, fields)
	u.UpdatedAt = time.Now()
	r.users[id] = u
	return nil
}

type credentials Store

func (r *credentials) Create(_ context.Context, cred *models.Credential) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.creds[cred.Email]; ok {
		return repository.ErrDuplicate
	}
	cred.CreatedAt = time.Now()
	r.creds[cred.Email] = *cred
	return nil
}

func (r *credentials) GetByEmail(_ context.Context, email string) (*models.Credential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cred, ok := r.creds[email]
	if !ok {
		return nil, nil
	}
	return &cred, nil
}
