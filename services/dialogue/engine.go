package dialogue

import (
	"errors"
	"fmt"
	"strings"

	"locali/models"
)

// Dialogue steps. A draft starts at StepDate and stops at StepDone.
const (
	StepDate = iota + 1
	StepTimeSlot
	StepCapacity
	StepEventName
	StepConfirm
	StepDone
)

const (
	// BookedRoom is the only room the assistant assigns.
	BookedRoom = "Katharyn Alvord Gerlich Theater"
	// BookedVenue is the building housing BookedRoom.
	BookedVenue = "Meany Hall for the Performing Arts"

	Greeting = "Welcome to the Locali AI Event Creation System! What date would you like to book a room? (Please enter in M/D/YYYY format)"

	msgDateAccepted     = "Great! I've noted the date: %s. Now, please enter the time slot (e.g., 10:00 AM - 12:00 PM or 11:00am-12:00pm):"
	msgDateRejected     = "Please enter a valid date in M/D/YYYY format."
	msgSlotAccepted     = "Got it! Time slot: %s. Now, what is your required room capacity (number of people)?"
	msgSlotRejected     = "Please enter a valid time slot format (e.g., 10:00 AM - 12:00 PM)."
	msgCapacityAccepted = "Room " + BookedRoom + " in " + BookedVenue + " has been successfully booked!\n\nWhat is the name of your event?"
	msgCapacityRejected = "Please enter a valid capacity (a positive number)."
	msgNameAccepted     = "Would you like me to generate a suggested content agenda for your %s event?"
	msgAgendaDeclined   = "No problem! Your event has been created. Would you like to add any additional details or make any changes?"
)

// ErrEmptyInput is returned for blank submissions. They never reach the transcript.
var ErrEmptyInput = errors.New("dialogue: empty input")

// Turn is the outcome of applying one user input to a draft.
type Turn struct {
	Draft     models.BookingDraft
	Reply     string
	Advanced  bool
	Rejection *ValidationRejected
	Agenda    string // generated content, set only when the user accepted a suggestion
}

// Engine applies the booking state machine. It holds no per-session state.
type Engine struct {
	shell Shell
}

// NewEngine returns an engine whose terminal replies come from the given shell.
func NewEngine(shell Shell) *Engine {
	return &Engine{shell: shell}
}

// NewDraft returns an empty draft at the first step.
func NewDraft() models.BookingDraft {
	return models.BookingDraft{Step: StepDate}
}

// Advance applies input to draft and returns the resulting draft and assistant reply.
// The input draft is not modified.
func (e *Engine) Advance(draft models.BookingDraft, input string) (Turn, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return Turn{Draft: draft}, ErrEmptyInput
	}

	next := draft
	switch draft.Step {
	case StepDate:
		if !ValidateDate(input) {
			return reject(draft, input, msgDateRejected), nil
		}
		next.Date = strPtr(input)
		next.Step = StepTimeSlot
		return Turn{Draft: next, Reply: fmt.Sprintf(msgDateAccepted, input), Advanced: true}, nil

	case StepTimeSlot:
		if !ValidateTimeSlot(input) {
			return reject(draft, input, msgSlotRejected), nil
		}
		slot := NormalizeTimeSlot(input)
		next.TimeSlot = strPtr(slot)
		next.Step = StepCapacity
		return Turn{Draft: next, Reply: fmt.Sprintf(msgSlotAccepted, slot), Advanced: true}, nil

	case StepCapacity:
		capacity, ok := ParseCapacity(input)
		if !ok {
			return reject(draft, input, msgCapacityRejected), nil
		}
		next.Capacity = &capacity
		next.SelectedRoom = strPtr(BookedRoom)
		next.Step = StepEventName
		return Turn{Draft: next, Reply: msgCapacityAccepted, Advanced: true}, nil

	case StepEventName:
		next.EventName = strPtr(input)
		next.Step = StepConfirm
		return Turn{Draft: next, Reply: fmt.Sprintf(msgNameAccepted, input), Advanced: true}, nil

	case StepConfirm:
		next.Step = StepDone
		if IsAffirmative(input) {
			agenda := SuggestContent(deref(draft.EventName))
			return Turn{Draft: next, Reply: agenda, Advanced: true, Agenda: agenda}, nil
		}
		return Turn{Draft: next, Reply: msgAgendaDeclined, Advanced: true}, nil

	default:
		return Turn{Draft: draft, Reply: e.shell.FinalizedMessage()}, nil
	}
}

func reject(draft models.BookingDraft, input, reply string) Turn {
	return Turn{
		Draft:     draft,
		Reply:     reply,
		Rejection: &ValidationRejected{Step: draft.Step, Input: input},
	}
}

// InputPrompt returns the placeholder and hint shown under the input for a step.
func InputPrompt(step int) (placeholder, hint string) {
	switch step {
	case StepDate:
		return "Enter date (M/D/YYYY)", "Enter the date to find available rooms"
	case StepTimeSlot:
		return "Enter time slot", "Format: 10:00 AM - 12:00 PM or similar"
	case StepCapacity:
		return "Enter capacity", "Enter the number of people you expect"
	case StepEventName:
		return "Enter event name", "Name your event to get content suggestions"
	default:
		return "Type your message...", "AI-powered booking assistance"
	}
}

// Record converts a completed draft into a booking record.
func Record(draft models.BookingDraft, agenda string) models.BookingRecord {
	rec := models.BookingRecord{
		Date:         deref(draft.Date),
		TimeSlot:     deref(draft.TimeSlot),
		SelectedRoom: deref(draft.SelectedRoom),
		EventName:    deref(draft.EventName),
		Agenda:       agenda,
	}
	if draft.Capacity != nil {
		rec.Capacity = *draft.Capacity
	}
	return rec
}

func strPtr(s string) *string { return &s }

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
