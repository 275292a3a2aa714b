package dialogue

import (
	"context"
	"sync"
	"testing"
	"time"

	"locali/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSurface struct {
	mu        sync.Mutex
	views     []View
	navigated []string
}

func (r *recordingSurface) Render(v View) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.views = append(r.views, v)
}

func (r *recordingSurface) Navigate(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.navigated = append(r.navigated, path)
}

func (r *recordingSurface) last() View {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.views[len(r.views)-1]
}

// gatedSleep blocks every reply until release is closed.
func gatedSleep(entered chan<- struct{}, release <-chan struct{}) func(context.Context, time.Duration) error {
	return func(ctx context.Context, _ time.Duration) error {
		entered <- struct{}{}
		<-release
		return nil
	}
}

func newTestSession(surface Surface) *Session {
	return NewSession("s-1", "user-1", ModalShell{}, Options{ReplyDelay: 0, Surface: surface})
}

func submitAll(t *testing.T, s *Session, inputs ...string) {
	t.Helper()
	for _, in := range inputs {
		_, err := s.Submit(context.Background(), in)
		require.NoError(t, err, in)
	}
}

func TestNewSessionShowsGreeting(t *testing.T) {
	surface := &recordingSurface{}
	s := newTestSession(surface)

	msgs := s.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, models.RoleAssistant, msgs[0].Role)
	assert.Equal(t, Greeting, msgs[0].Content)
	assert.Equal(t, "1", msgs[0].ID)
	assert.Equal(t, StepDate, s.Draft().Step)
	assert.Len(t, surface.views, 1)
}

func TestSubmitAppendsTwoMessagesPerTurn(t *testing.T) {
	s := newTestSession(nil)

	view, err := s.Submit(context.Background(), "not a date")
	require.NoError(t, err)
	require.Len(t, view.Messages, 3)
	assert.Equal(t, models.RoleUser, view.Messages[1].Role)
	assert.Equal(t, "not a date", view.Messages[1].Content)
	assert.Equal(t, msgDateRejected, view.Messages[2].Content)
	assert.Equal(t, StepDate, view.Draft.Step)

	view, err = s.Submit(context.Background(), "3/15/2024")
	require.NoError(t, err)
	assert.Len(t, view.Messages, 5)
	assert.Equal(t, StepTimeSlot, view.Draft.Step)
	assert.Equal(t, "3/15/2024", *view.Draft.Date)
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, ids(view.Messages))
}

func TestSubmitIgnoresBlankInput(t *testing.T) {
	s := newTestSession(nil)
	_, err := s.Submit(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyInput)
	assert.Len(t, s.Messages(), 1)
}

func TestSubmitRejectedWhileReplyPending(t *testing.T) {
	entered := make(chan struct{}, 1)
	release := make(chan struct{})
	surface := &recordingSurface{}
	s := NewSession("s-1", "user-1", ModalShell{}, Options{Surface: surface, Sleep: gatedSleep(entered, release)})

	done := make(chan error, 1)
	go func() {
		_, err := s.Submit(context.Background(), "3/15/2024")
		done <- err
	}()
	<-entered

	view := s.View()
	assert.True(t, view.Pending)
	assert.False(t, view.InputEnabled)
	assert.Len(t, view.Messages, 2)
	assert.True(t, surface.last().Pending)

	_, err := s.Submit(context.Background(), "10am-11am")
	assert.ErrorIs(t, err, ErrReplyPending)
	assert.Len(t, s.Messages(), 2)

	close(release)
	require.NoError(t, <-done)
	assert.Len(t, s.Messages(), 3)
	assert.Equal(t, StepTimeSlot, s.Draft().Step)
	assert.False(t, surface.last().Pending)
}

func TestResetDiscardsPendingReply(t *testing.T) {
	entered := make(chan struct{}, 1)
	release := make(chan struct{})
	s := NewSession("s-1", "user-1", PageShell{}, Options{Sleep: gatedSleep(entered, release)})

	done := make(chan error, 1)
	go func() {
		_, err := s.Submit(context.Background(), "3/15/2024")
		done <- err
	}()
	<-entered

	view := s.Reset()
	assert.False(t, view.Pending)
	close(release)
	assert.ErrorIs(t, <-done, ErrSessionReset)

	msgs := s.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, Greeting, msgs[0].Content)
	assert.Equal(t, NewDraft(), s.Draft())
}

func TestResetReturnsToInitialState(t *testing.T) {
	s := newTestSession(nil)
	submitAll(t, s, "3/15/2024", "10:00am-11:30am", "50", "AI Ethics Roundtable")

	view := s.Reset()
	assert.Equal(t, StepDate, view.Draft.Step)
	assert.Nil(t, view.Draft.Date)
	assert.Nil(t, view.Draft.TimeSlot)
	assert.Nil(t, view.Draft.Capacity)
	assert.Nil(t, view.Draft.SelectedRoom)
	assert.Nil(t, view.Draft.EventName)
	require.Len(t, view.Messages, 1)
	assert.Equal(t, models.RoleAssistant, view.Messages[0].Role)
	assert.Equal(t, "1", view.Messages[0].ID)
}

func TestInvalidThenValidDateRecovers(t *testing.T) {
	s := newTestSession(nil)
	submitAll(t, s, "March 15", "3/15/2024")

	msgs := s.Messages()
	require.Len(t, msgs, 5)
	assert.Equal(t, msgDateRejected, msgs[2].Content)
	assert.Equal(t, StepTimeSlot, s.Draft().Step)
}

func TestViewSummaryAndPrompts(t *testing.T) {
	s := newTestSession(nil)
	submitAll(t, s, "3/15/2024", "10:00am-11:30am", "50")

	view := s.View()
	assert.True(t, view.ShowSummary)
	assert.Equal(t, "Enter event name", view.Placeholder)

	submitAll(t, s, "AI Ethics Roundtable", "yes")
	view = s.View()
	assert.False(t, view.ShowSummary)
	assert.False(t, view.InputEnabled)
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := newTestSession(nil)
	submitAll(t, s, "3/15/2024", "10:00am-11:30am")

	restored, err := RestoreSession(s.Snapshot(), Options{})
	require.NoError(t, err)
	assert.Equal(t, s.Draft(), restored.Draft())
	assert.Equal(t, s.Messages(), restored.Messages())

	_, err = restored.Submit(context.Background(), "40")
	require.NoError(t, err)
	msgs := restored.Messages()
	assert.Equal(t, "7", msgs[len(msgs)-1].ID)
}

func TestSubmitHonoursReplyDelay(t *testing.T) {
	var waited time.Duration
	s := NewSession("s-1", "user-1", ModalShell{}, Options{
		ReplyDelay: DefaultReplyDelay,
		Sleep: func(_ context.Context, d time.Duration) error {
			waited = d
			return nil
		},
	})
	submitAll(t, s, "3/15/2024")
	assert.Equal(t, DefaultReplyDelay, waited)
}

func ids(msgs []models.ConversationMessage) []string {
	out := make([]string, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, m.ID)
	}
	return out
}
