package models

import "time"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ConversationMessage is one immutable transcript entry.
type ConversationMessage struct {
	ID      string `json:"id"`
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// DialogueSnapshot is the persisted form of a booking dialogue session.
type DialogueSnapshot struct {
	ID        string                `json:"id"`
	OwnerID   string                `json:"ownerId"`
	Shell     string                `json:"shell"`
	Draft     BookingDraft          `json:"draft"`
	Messages  []ConversationMessage `json:"messages"`
	NextID    int                   `json:"nextId"`
	Agenda    string                `json:"agenda,omitempty"`
	Finalized bool                  `json:"finalized"`
	EventID   string                `json:"eventId,omitempty"`
	UpdatedAt time.Time             `json:"updatedAt"`
}
