package cron

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"locali/database/repository/memory"
	"locali/models"
	"locali/services/tasks"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingNotifier struct {
	users []string
	data  []map[string]string
	err   error
}

func (r *recordingNotifier) SendUserPushNotification(_ context.Context, userID, _, _ string, data map[string]string) error {
	r.users = append(r.users, userID)
	r.data = append(r.data, data)
	return r.err
}

func reminderTask(t *testing.T, eventID, userID string) *asynq.Task {
	t.Helper()
	p := models.ReminderPayload{
		EventID:    eventID,
		UserID:     userID,
		Title:      "Upcoming event: Talk",
		ReminderID: tasks.ReminderID(eventID, userID),
	}
	b, err := json.Marshal(p)
	require.NoError(t, err)
	return asynq.NewTask(tasks.TypeSendReminder, b)
}

func TestReminderSentToAttendee(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	id, err := store.Events().Create(ctx, &models.Event{Title: "Talk"})
	require.NoError(t, err)
	require.NoError(t, store.Events().AddAttendee(ctx, id, models.Attendee{UserID: "u1"}))

	notifier := &recordingNotifier{}
	h := &ReminderHandler{Events: store.Events(), Notification: notifier, Logger: zap.NewNop()}

	require.NoError(t, h.ProcessTask(ctx, reminderTask(t, id, "u1")))
	require.Equal(t, []string{"u1"}, notifier.users)
	assert.Equal(t, "reminder:"+id+":u1", notifier.data[0]["reminderId"])
}

func TestReminderDroppedAfterCancel(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	id, err := store.Events().Create(ctx, &models.Event{Title: "Talk"})
	require.NoError(t, err)

	notifier := &recordingNotifier{}
	h := &ReminderHandler{Events: store.Events(), Notification: notifier, Logger: zap.NewNop()}

	require.NoError(t, h.ProcessTask(ctx, reminderTask(t, id, "u1")))
	assert.Empty(t, notifier.users)
}

func TestReminderSendFailureRetries(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	id, err := store.Events().Create(ctx, &models.Event{Title: "Talk"})
	require.NoError(t, err)
	require.NoError(t, store.Events().AddAttendee(ctx, id, models.Attendee{UserID: "u1"}))

	boom := errors.New("fcm down")
	h := &ReminderHandler{Events: store.Events(), Notification: &recordingNotifier{err: boom}, Logger: zap.NewNop()}
	assert.ErrorIs(t, h.ProcessTask(ctx, reminderTask(t, id, "u1")), boom)
}

func TestReminderBadPayloadSkipsRetry(t *testing.T) {
	h := &ReminderHandler{Logger: zap.NewNop()}
	err := h.ProcessTask(context.Background(), asynq.NewTask(tasks.TypeSendReminder, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestScheduleSkipsPastAndUndated(t *testing.T) {
	s := &ReminderScheduler{
		Lead:   24 * time.Hour,
		Logger: zap.NewNop(),
		Now:    func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.Local) },
	}
	ctx := context.Background()
	// Client is nil, so reaching the enqueue step would panic.
	assert.NoError(t, s.ScheduleReminder(ctx, models.Event{ID: "e1", Date: "someday"}, "u1"))
	assert.NoError(t, s.ScheduleReminder(ctx, models.Event{ID: "e1", Date: "2026-03-02", StartTime: "9:00 AM"}, "u1"))
}

func TestReminderBody(t *testing.T) {
	ev := models.Event{Title: "Talk", Date: "3/15/2026", Time: "10:00 AM-11:30 AM", Location: "Meany Hall"}
	assert.Equal(t, "Talk is coming up on 3/15/2026 at 10:00 AM-11:30 AM in Meany Hall.", reminderBody(ev))
}
