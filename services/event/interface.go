package event

import (
	"context"
	"io"

	"locali/models"
)

// EventService covers the event catalogue, hosting and RSVPs.
type EventService interface {
	Create(ctx context.Context, hostID string, in models.EventInput) (*models.Event, error)
	CreateFromBooking(ctx context.Context, hostID string, rec models.BookingRecord) (string, error)
	Get(ctx context.Context, id string) (*models.Event, error)
	List(ctx context.Context, filter models.EventFilter) ([]models.ScoredEvent, error)
	Featured(ctx context.Context, limit int) ([]models.Event, error)
	Update(ctx context.Context, hostID, id string, in models.EventInput) (*models.Event, error)
	Delete(ctx context.Context, hostID, id string) error

	RSVP(ctx context.Context, userID, eventID string) (*models.Event, error)
	CancelRSVP(ctx context.Context, userID, eventID string) (*models.Event, error)
	IsAttending(ctx context.Context, userID, eventID string) (bool, error)
	Attendees(ctx context.Context, eventID string) ([]models.AttendeeProfile, error)

	UploadImage(ctx context.Context, hostID, eventID string, r io.Reader) (string, error)
	DeleteImage(ctx context.Context, hostID, eventID string) error

	MarkSuggestionApplied(ctx context.Context, eventID, suggestionID string) error
}

// ReminderScheduler queues and withdraws RSVP reminders.
type ReminderScheduler interface {
	ScheduleReminder(ctx context.Context, ev models.Event, userID string) error
	CancelReminder(ctx context.Context, eventID, userID string) error
}
