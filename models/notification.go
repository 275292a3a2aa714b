package models

// ReminderPayload is the asynq payload for an RSVP reminder.
type ReminderPayload struct {
	EventID    string `json:"eventId"`
	UserID     string `json:"userId"`
	Title      string `json:"title"`
	Body       string `json:"body"`
	FireDate   string `json:"fireDate"`
	ReminderID string `json:"reminderId"`
}
