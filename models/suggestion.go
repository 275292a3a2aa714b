package models

const (
	SuggestionTopic    = "topic"
	SuggestionFormat   = "format"
	SuggestionTiming   = "timing"
	SuggestionAudience = "audience"
)

// Suggestion is a host-facing optimization hint for an event.
type Suggestion struct {
	ID      string `json:"id"`
	Type    string `json:"type"` // topic | format | timing | audience
	Content string `json:"content"`
	Reason  string `json:"reason"`
	Applied bool   `json:"applied"`
}
