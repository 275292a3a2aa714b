package dialogue

import (
	"context"
	"fmt"
	"time"

	"locali/models"
)

// EventCreator turns a completed booking into a durable event.
type EventCreator interface {
	CreateFromBooking(ctx context.Context, hostID string, record models.BookingRecord) (string, error)
}

// Finalize hands the completed booking to creator and navigates the surface on success.
// Fields are not re-validated and failures are returned without retry. The session lock
// is released while creator runs; a reset in that window discards the outcome.
func (s *Session) Finalize(ctx context.Context, hostID string, creator EventCreator) (string, error) {
	s.mu.Lock()
	if s.finalized {
		eventID := s.eventID
		s.mu.Unlock()
		return eventID, ErrAlreadyFinalized
	}
	if s.finalizing {
		s.mu.Unlock()
		return "", ErrFinalizeInProgress
	}
	if s.pending {
		s.mu.Unlock()
		return "", ErrReplyPending
	}
	if s.draft.Step < StepDone {
		s.mu.Unlock()
		return "", ErrBookingIncomplete
	}
	record := Record(s.draft, s.agenda)
	gen := s.generation
	s.finalizing = true
	s.mu.Unlock()

	eventID, err := creator.CreateFromBooking(ctx, hostID, record)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != gen {
		return eventID, ErrSessionReset
	}
	s.finalizing = false
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrCreateEvent, err)
	}

	s.finalized = true
	s.eventID = eventID
	s.updatedAt = time.Now()
	s.render()
	s.opts.Surface.Navigate(s.shell.CompletionPath(eventID))
	return eventID, nil
}
