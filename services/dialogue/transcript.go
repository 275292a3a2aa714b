package dialogue

import (
	"strconv"

	"locali/models"
)

// Transcript is the append-only message history of one session.
// It always begins with the assistant greeting.
type Transcript struct {
	messages []models.ConversationMessage
	nextID   int
}

// NewTranscript returns a transcript holding only the greeting.
func NewTranscript() *Transcript {
	t := &Transcript{}
	t.Reset()
	return t
}

// Reset drops every message and reseeds the greeting.
func (t *Transcript) Reset() {
	t.messages = nil
	t.nextID = 1
	t.Append(models.RoleAssistant, Greeting)
}

// Append adds a message and returns it.
func (t *Transcript) Append(role, content string) models.ConversationMessage {
	msg := models.ConversationMessage{
		ID:      strconv.Itoa(t.nextID),
		Role:    role,
		Content: content,
	}
	t.nextID++
	t.messages = append(t.messages, msg)
	return msg
}

// Messages returns a copy of the history in order.
func (t *Transcript) Messages() []models.ConversationMessage {
	out := make([]models.ConversationMessage, len(t.messages))
	copy(out, t.messages)
	return out
}

// Len is the number of messages.
func (t *Transcript) Len() int { return len(t.messages) }

func restoreTranscript(messages []models.ConversationMessage, nextID int) *Transcript {
	if len(messages) == 0 {
		return NewTranscript()
	}
	t := &Transcript{messages: make([]models.ConversationMessage, len(messages)), nextID: nextID}
	copy(t.messages, messages)
	if t.nextID <= len(messages) {
		t.nextID = len(messages) + 1
	}
	return t
}
