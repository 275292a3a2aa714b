package event

import (
	"errors"

	"locali/database/repository"
)

var (
	ErrNotHost   = errors.New("only the host can manage this event")
	ErrNotFound  = repository.ErrNotFound
	ErrInvalid   = errors.New("invalid event")
	ErrNoProfile = errors.New("member profile not found")

	ErrAlreadyAttending = repository.ErrAlreadyAttending
	ErrNotAttending     = repository.ErrNotAttending
	ErrEventFull        = repository.ErrEventFull
)
