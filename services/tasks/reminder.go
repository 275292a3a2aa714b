package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"locali/models"

	"github.com/hibiken/asynq"
)

const TypeSendReminder = "reminder:send"

// ReminderID is the asynq task id for a member's reminder about one event.
// One id per pair keeps repeated RSVPs from queueing duplicates.
func ReminderID(eventID, userID string) string {
	return fmt.Sprintf("reminder:%s:%s", eventID, userID)
}

func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.TaskID(payload.ReminderID),
		asynq.MaxRetry(3),
	}
	return task, opts, nil
}

func ParseReminderTask(t *asynq.Task) (models.ReminderPayload, error) {
	var p models.ReminderPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return p, fmt.Errorf("reminder payload: %w", err)
	}
	return p, nil
}
