package dialogue

import (
	"strings"
	"testing"

	"locali/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func advance(t *testing.T, e *Engine, d models.BookingDraft, input string) Turn {
	t.Helper()
	turn, err := e.Advance(d, input)
	require.NoError(t, err)
	return turn
}

func TestAdvanceRejectsInvalidInputWithoutChangingDraft(t *testing.T) {
	e := NewEngine(ModalShell{})

	start := NewDraft()
	turn := advance(t, e, start, "tomorrow")
	assert.Equal(t, start, turn.Draft)
	assert.False(t, turn.Advanced)
	assert.Equal(t, msgDateRejected, turn.Reply)
	require.NotNil(t, turn.Rejection)
	assert.Equal(t, StepDate, turn.Rejection.Step)

	atSlot := advance(t, e, start, "3/15/2024").Draft
	turn = advance(t, e, atSlot, "noon")
	assert.Equal(t, atSlot, turn.Draft)
	assert.Equal(t, msgSlotRejected, turn.Reply)

	atCapacity := advance(t, e, atSlot, "10:00am-11:30am").Draft
	turn = advance(t, e, atCapacity, "-3")
	assert.Equal(t, atCapacity, turn.Draft)
	assert.Nil(t, turn.Draft.Capacity)
	assert.Nil(t, turn.Draft.SelectedRoom)
	assert.Equal(t, msgCapacityRejected, turn.Reply)
}

func TestAdvanceFullBooking(t *testing.T) {
	e := NewEngine(PageShell{})
	d := NewDraft()

	turn := advance(t, e, d, "3/15/2024")
	assert.Equal(t, StepTimeSlot, turn.Draft.Step)
	assert.Equal(t, "3/15/2024", *turn.Draft.Date)
	assert.Nil(t, turn.Draft.TimeSlot)
	assert.Contains(t, turn.Reply, "I've noted the date: 3/15/2024")

	turn = advance(t, e, turn.Draft, "10:00am-11:30am")
	assert.Equal(t, StepCapacity, turn.Draft.Step)
	assert.Equal(t, "10:00 AM-11:30 AM", *turn.Draft.TimeSlot)
	assert.Equal(t, "Got it! Time slot: 10:00 AM-11:30 AM. Now, what is your required room capacity (number of people)?", turn.Reply)

	turn = advance(t, e, turn.Draft, "50")
	assert.Equal(t, StepEventName, turn.Draft.Step)
	assert.Equal(t, 50, *turn.Draft.Capacity)
	assert.Equal(t, BookedRoom, *turn.Draft.SelectedRoom)
	assert.Contains(t, turn.Reply, BookedRoom+" in "+BookedVenue)

	turn = advance(t, e, turn.Draft, "AI Ethics Roundtable")
	assert.Equal(t, StepConfirm, turn.Draft.Step)
	assert.Equal(t, "AI Ethics Roundtable", *turn.Draft.EventName)
	assert.Equal(t, "Would you like me to generate a suggested content agenda for your AI Ethics Roundtable event?", turn.Reply)

	turn = advance(t, e, turn.Draft, "yes")
	assert.Equal(t, StepDone, turn.Draft.Step)
	assert.True(t, strings.HasPrefix(turn.Reply, "Suggested content for AI Ethics Roundtable:\n\n1. Introduction to Deep Learning"))
	assert.Equal(t, turn.Reply, turn.Agenda)

	done := turn.Draft
	turn = advance(t, e, done, "anything else?")
	assert.Equal(t, done, turn.Draft)
	assert.False(t, turn.Advanced)
	assert.Equal(t, PageShell{}.FinalizedMessage(), turn.Reply)
}

func TestAdvanceDeclinedAgenda(t *testing.T) {
	e := NewEngine(ModalShell{})
	d := NewDraft()
	for _, in := range []string{"1/2/2025", "9am-10am", "20", "Book Club"} {
		d = advance(t, e, d, in).Draft
	}
	turn := advance(t, e, d, "no thanks")
	assert.Equal(t, StepDone, turn.Draft.Step)
	assert.Equal(t, msgAgendaDeclined, turn.Reply)
	assert.Empty(t, turn.Agenda)
}

func TestAdvanceAmbiguousConfirmationIsAffirmative(t *testing.T) {
	e := NewEngine(ModalShell{})
	d := NewDraft()
	for _, in := range []string{"1/2/2025", "9am-10am", "20", "Book Club"} {
		d = advance(t, e, d, in).Draft
	}
	turn := advance(t, e, d, "not sure, ok fine")
	assert.True(t, strings.HasPrefix(turn.Reply, "Suggested content for Book Club:"))
}

func TestAdvanceTrimsInputAndRejectsBlank(t *testing.T) {
	e := NewEngine(ModalShell{})
	turn := advance(t, e, NewDraft(), "  3/15/2024  ")
	assert.Equal(t, "3/15/2024", *turn.Draft.Date)

	_, err := e.Advance(NewDraft(), "   ")
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestFieldsSetOnlyAfterTheirStep(t *testing.T) {
	e := NewEngine(ModalShell{})
	d := NewDraft()
	for _, in := range []string{"1/2/2025", "9am-10am", "20", "Book Club", "no"} {
		d = advance(t, e, d, in).Draft
		assert.Equal(t, d.Step > StepDate, d.Date != nil)
		assert.Equal(t, d.Step > StepTimeSlot, d.TimeSlot != nil)
		assert.Equal(t, d.Step > StepCapacity, d.Capacity != nil)
		assert.Equal(t, d.Step > StepCapacity, d.SelectedRoom != nil)
		assert.Equal(t, d.Step > StepEventName, d.EventName != nil)
	}
}

func TestInputPrompt(t *testing.T) {
	p, h := InputPrompt(StepDate)
	assert.Equal(t, "Enter date (M/D/YYYY)", p)
	assert.Equal(t, "Enter the date to find available rooms", h)
	p, _ = InputPrompt(StepConfirm)
	assert.Equal(t, "Type your message...", p)
}

func TestAdvanceAcceptsLargeCapacity(t *testing.T) {
	e := NewEngine(ModalShell{})
	d := advance(t, e, NewDraft(), "3/15/2024").Draft
	d = advance(t, e, d, "10:00am-11:30am").Draft

	turn := advance(t, e, d, "150000")
	assert.True(t, turn.Advanced)
	assert.Equal(t, StepEventName, turn.Draft.Step)
	assert.Equal(t, 150000, *turn.Draft.Capacity)
	assert.Equal(t, BookedRoom, *turn.Draft.SelectedRoom)
}
