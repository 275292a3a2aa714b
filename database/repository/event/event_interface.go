package eventRepo

import (
	"context"

	"locali/models"
)

// Query selects events at the store level. Finer filtering happens in the service.
type Query struct {
	Featured bool
	HostID   string
	Limit    int
}

// EventRepository stores events and their attendee lists.
type EventRepository interface {
	Create(ctx context.Context, ev *models.Event) (string, error)
	GetByID(ctx context.Context, id string) (*models.Event, error)
	List(ctx context.Context, q Query) ([]models.Event, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
	AddAppliedSuggestion(ctx context.Context, id, suggestionID string) error

	// AddAttendee records the RSVP, bumps attendeeCount and links the event on the user profile.
	AddAttendee(ctx context.Context, eventID string, a models.Attendee) error
	// RemoveAttendee reverses AddAttendee.
	RemoveAttendee(ctx context.Context, eventID, userID string) error
	GetAttendee(ctx context.Context, eventID, userID string) (*models.Attendee, error)
	ListAttendees(ctx context.Context, eventID string) ([]models.Attendee, error)
}
