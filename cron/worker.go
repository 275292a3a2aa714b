package cron

import (
	"context"
	"errors"
	"time"

	"locali/database/repository"
	eventRepo "locali/database/repository/event"
	"locali/services/notification"
	"locali/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// ReminderHandler delivers reminders for members still attending when the task fires.
type ReminderHandler struct {
	Events       eventRepo.EventRepository
	Notification notification.NotificationService
	Logger       *zap.Logger
}

func (h *ReminderHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	p, err := tasks.ParseReminderTask(task)
	if err != nil {
		h.Logger.Error("invalid reminder payload", zap.Error(err))
		return errors.Join(err, asynq.SkipRetry)
	}

	if _, err := h.Events.GetAttendee(ctx, p.EventID, p.UserID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.Logger.Debug("member no longer attending, dropping reminder", zap.String("reminderID", p.ReminderID))
			return nil
		}
		return err
	}

	data := map[string]string{
		"eventId":    p.EventID,
		"reminderId": p.ReminderID,
		"fireDate":   p.FireDate,
		"type":       "reminder",
	}
	if err := h.Notification.SendUserPushNotification(ctx, p.UserID, p.Title, p.Body, data); err != nil {
		h.Logger.Error("failed to send reminder", zap.String("reminderID", p.ReminderID), zap.Error(err))
		return err
	}
	h.Logger.Info("reminder sent", zap.String("reminderID", p.ReminderID))
	return nil
}

// StartReminderWorker runs the asynq server in the background, retrying startup with backoff.
// The returned server is shut down by the caller.
func StartReminderWorker(opt asynq.RedisConnOpt, handler *ReminderHandler, logger *zap.Logger) *asynq.Server {
	srv := asynq.NewServer(opt, asynq.Config{
		Concurrency: 10,
		Queues:      map[string]int{reminderQueue: 1},
	})

	mux := asynq.NewServeMux()
	mux.Handle(tasks.TypeSendReminder, handler)

	go func() {
		const maxAttempts = 5
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			err := srv.Start(mux)
			if err == nil {
				logger.Info("reminder worker started")
				return
			}
			logger.Warn("reminder worker failed to start",
				zap.Int("attempt", attempt), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			time.Sleep(time.Duration(attempt*2) * time.Second)
		}
		logger.Error("reminder worker gave up; reminders will queue until restart")
	}()
	return srv
}
