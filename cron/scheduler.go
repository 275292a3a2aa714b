package cron

import (
	"context"
	"errors"
	"time"

	"locali/models"
	"locali/services/event"
	"locali/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const reminderQueue = "default"

// ReminderScheduler queues RSVP reminders on asynq, Lead before the event starts.
type ReminderScheduler struct {
	Client    *asynq.Client
	Inspector *asynq.Inspector
	Lead      time.Duration
	Logger    *zap.Logger
	Now       func() time.Time
}

func NewReminderScheduler(opt asynq.RedisConnOpt, lead time.Duration, logger *zap.Logger) *ReminderScheduler {
	return &ReminderScheduler{
		Client:    asynq.NewClient(opt),
		Inspector: asynq.NewInspector(opt),
		Lead:      lead,
		Logger:    logger,
		Now:       time.Now,
	}
}

// ScheduleReminder enqueues the reminder. Events without a parseable date, or whose reminder
// time has already passed, get none.
func (s *ReminderScheduler) ScheduleReminder(ctx context.Context, ev models.Event, userID string) error {
	startsAt, ok := event.StartsAt(ev.Date, ev.StartTime)
	if !ok {
		s.Logger.Debug("no reminder for unparseable date", zap.String("eventID", ev.ID), zap.String("date", ev.Date))
		return nil
	}
	fireAt := startsAt.Add(-s.Lead)
	if !fireAt.After(s.Now()) {
		return nil
	}

	payload := models.ReminderPayload{
		EventID:    ev.ID,
		UserID:     userID,
		Title:      "Upcoming event: " + ev.Title,
		Body:       reminderBody(ev),
		FireDate:   fireAt.Format(time.RFC3339),
		ReminderID: tasks.ReminderID(ev.ID, userID),
	}
	task, opts, err := tasks.NewReminderTask(payload, fireAt)
	if err != nil {
		return err
	}
	info, err := s.Client.EnqueueContext(ctx, task, append(opts, asynq.Queue(reminderQueue))...)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		return nil
	}
	if err != nil {
		return err
	}
	s.Logger.Info("reminder scheduled", zap.String("taskID", info.ID), zap.Time("fireAt", fireAt))
	return nil
}

func (s *ReminderScheduler) CancelReminder(_ context.Context, eventID, userID string) error {
	err := s.Inspector.DeleteTask(reminderQueue, tasks.ReminderID(eventID, userID))
	if errors.Is(err, asynq.ErrTaskNotFound) || errors.Is(err, asynq.ErrQueueNotFound) {
		return nil
	}
	return err
}

func (s *ReminderScheduler) Close() error {
	if err := s.Inspector.Close(); err != nil {
		return err
	}
	return s.Client.Close()
}

func reminderBody(ev models.Event) string {
	when := ev.Date
	if ev.Time != "" {
		when += " at " + ev.Time
	}
	if ev.Location != "" {
		return ev.Title + " is coming up on " + when + " in " + ev.Location + "."
	}
	return ev.Title + " is coming up on " + when + "."
}
