package dialogue

import "errors"

var (
	// ErrReplyPending rejects input while the assistant reply for the previous turn is outstanding.
	ErrReplyPending = errors.New("dialogue: assistant reply pending")
	// ErrSessionReset is returned to a submitter whose pending reply was discarded by a reset.
	ErrSessionReset = errors.New("dialogue: session was reset")
	// ErrBookingIncomplete is returned when finalizing before every field is collected.
	ErrBookingIncomplete = errors.New("dialogue: booking is not complete")
	// ErrAlreadyFinalized is returned when a session already produced an event.
	ErrAlreadyFinalized = errors.New("dialogue: booking already finalized")
	// ErrFinalizeInProgress rejects a second finalize while the first is still creating the event.
	ErrFinalizeInProgress = errors.New("dialogue: finalize in progress")
	// ErrSessionNotFound covers unknown, expired and foreign sessions.
	ErrSessionNotFound = errors.New("dialogue: session not found")
	// ErrCreateEvent wraps a failure reported by the EventCreator.
	ErrCreateEvent = errors.New("dialogue: create event")
	// ErrUnknownShell rejects a shell name other than modal or page.
	ErrUnknownShell = errors.New("dialogue: unknown shell")
)
