package dialogue

import (
	"fmt"

	"locali/models"
)

const (
	ShellModal = "modal"
	ShellPage  = "page"
)

// Shell is the presentation context hosting a dialogue. Both shells share one engine.
type Shell interface {
	Name() string
	FinalizedMessage() string
	CompletionPath(eventID string) string
}

// ModalShell is the dialog opened from the dashboard.
type ModalShell struct{}

func (ModalShell) Name() string { return ShellModal }

func (ModalShell) FinalizedMessage() string {
	return "Your booking has been finalized! Click 'Create Event' to complete the process."
}

func (ModalShell) CompletionPath(string) string { return "/dashboard/events" }

// PageShell is the full-page booking flow.
type PageShell struct{}

func (PageShell) Name() string { return ShellPage }

func (PageShell) FinalizedMessage() string {
	return "Your booking has been finalized. Click 'Continue' to view your event details."
}

func (PageShell) CompletionPath(eventID string) string { return "/events/" + eventID }

// ShellByName resolves a shell from its name. Empty selects the modal.
func ShellByName(name string) (Shell, error) {
	switch name {
	case "", ShellModal:
		return ModalShell{}, nil
	case ShellPage:
		return PageShell{}, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownShell, name)
	}
}

// View is everything a surface needs to draw the conversation.
type View struct {
	SessionID    string                       `json:"sessionId"`
	Shell        string                       `json:"shell"`
	Messages     []models.ConversationMessage `json:"messages"`
	Draft        models.BookingDraft          `json:"draft"`
	Pending      bool                         `json:"pending"`
	InputEnabled bool                         `json:"inputEnabled"`
	ShowSummary  bool                         `json:"showSummary"`
	Placeholder  string                       `json:"placeholder"`
	Hint         string                       `json:"hint"`
	Finalized    bool                         `json:"finalized"`
	EventID      string                       `json:"eventId,omitempty"`
	RedirectPath string                       `json:"redirectPath,omitempty"`
}

// Surface receives a fresh view after every transcript change.
type Surface interface {
	Render(View)
	Navigate(path string)
}

// NopSurface discards renders. Used when a session is driven over HTTP and views are pulled.
type NopSurface struct{}

func (NopSurface) Render(View)     {}
func (NopSurface) Navigate(string) {}
