// Package repository holds the errors shared by the document store implementations.
package repository

import "errors"

var (
	ErrNotFound         = errors.New("document not found")
	ErrDuplicate        = errors.New("document already exists")
	ErrAlreadyAttending = errors.New("user already attending event")
	ErrNotAttending     = errors.New("user is not attending event")
	ErrEventFull        = errors.New("event is at capacity")
)

// Collection names used by every backend.
const (
	UsersCollection       = "users"
	EventsCollection      = "events"
	AttendeesCollection   = "attendees"
	CredentialsCollection = "credentials"
)
