package dialogue

import (
	"context"
	"strings"
	"sync"
	"time"

	"locali/models"
)

// DefaultReplyDelay is the pause between a user message and the assistant reply.
const DefaultReplyDelay = 800 * time.Millisecond

// Options configures new sessions.
type Options struct {
	ReplyDelay time.Duration
	Surface    Surface
	// Sleep waits for the reply delay. Defaults to a context-aware timer.
	Sleep func(ctx context.Context, d time.Duration) error
}

func (o Options) withDefaults() Options {
	if o.ReplyDelay < 0 {
		o.ReplyDelay = 0
	}
	if o.Surface == nil {
		o.Surface = NopSurface{}
	}
	if o.Sleep == nil {
		o.Sleep = sleepContext
	}
	return o
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Session is one booking conversation. The draft and transcript change together under mu.
// Surface callbacks run with mu held and must not call back into the session.
type Session struct {
	mu sync.Mutex

	id      string
	ownerID string
	shell   Shell
	engine  *Engine
	opts    Options

	draft      models.BookingDraft
	transcript *Transcript
	agenda     string
	pending    bool
	generation uint64
	finalizing bool
	finalized  bool
	eventID    string
	updatedAt  time.Time
}

// NewSession opens a conversation at the first step with the greeting shown.
func NewSession(id, ownerID string, shell Shell, opts Options) *Session {
	s := &Session{
		id:         id,
		ownerID:    ownerID,
		shell:      shell,
		engine:     NewEngine(shell),
		opts:       opts.withDefaults(),
		draft:      NewDraft(),
		transcript: NewTranscript(),
		updatedAt:  time.Now(),
	}
	s.mu.Lock()
	s.render()
	s.mu.Unlock()
	return s
}

// RestoreSession rebuilds a session from a snapshot.
func RestoreSession(snap models.DialogueSnapshot, opts Options) (*Session, error) {
	shell, err := ShellByName(snap.Shell)
	if err != nil {
		return nil, err
	}
	draft := snap.Draft
	if draft.Step < StepDate || draft.Step > StepDone {
		draft = NewDraft()
	}
	return &Session{
		id:         snap.ID,
		ownerID:    snap.OwnerID,
		shell:      shell,
		engine:     NewEngine(shell),
		opts:       opts.withDefaults(),
		draft:      draft,
		transcript: restoreTranscript(snap.Messages, snap.NextID),
		agenda:     snap.Agenda,
		finalized:  snap.Finalized,
		eventID:    snap.EventID,
		updatedAt:  snap.UpdatedAt,
	}, nil
}

func (s *Session) ID() string      { return s.id }
func (s *Session) OwnerID() string { return s.ownerID }

// Submit processes one user input. The user message is appended immediately and the
// assistant reply after the reply delay. A reset during the delay discards the reply.
func (s *Session) Submit(ctx context.Context, input string) (View, error) {
	if strings.TrimSpace(input) == "" {
		return s.View(), ErrEmptyInput
	}

	s.mu.Lock()
	if s.finalized {
		s.mu.Unlock()
		return s.View(), ErrAlreadyFinalized
	}
	if s.pending {
		s.mu.Unlock()
		return s.View(), ErrReplyPending
	}
	s.transcript.Append(models.RoleUser, input)
	s.pending = true
	gen := s.generation
	s.updatedAt = time.Now()
	s.render()
	s.mu.Unlock()

	// A cancelled wait only shortens the delay; the turn still completes.
	_ = s.opts.Sleep(ctx, s.opts.ReplyDelay)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != gen {
		return s.view(), ErrSessionReset
	}

	turn, err := s.engine.Advance(s.draft, input)
	if err != nil {
		s.pending = false
		s.render()
		return s.view(), err
	}
	s.draft = turn.Draft
	if turn.Agenda != "" {
		s.agenda = turn.Agenda
	}
	s.transcript.Append(models.RoleAssistant, turn.Reply)
	s.pending = false
	s.updatedAt = time.Now()
	s.render()
	return s.view(), nil
}

// Reset returns the session to the greeting with an empty draft.
func (s *Session) Reset() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.draft = NewDraft()
	s.transcript.Reset()
	s.agenda = ""
	s.pending = false
	s.finalizing = false
	s.finalized = false
	s.eventID = ""
	s.updatedAt = time.Now()
	s.render()
	return s.view()
}

// View returns the current presentation state.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view()
}

// Draft returns a copy of the booking draft.
func (s *Session) Draft() models.BookingDraft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// Messages returns a copy of the transcript.
func (s *Session) Messages() []models.ConversationMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transcript.Messages()
}

// Snapshot captures the persistent state of the session.
func (s *Session) Snapshot() models.DialogueSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.DialogueSnapshot{
		ID:        s.id,
		OwnerID:   s.ownerID,
		Shell:     s.shell.Name(),
		Draft:     s.draft,
		Messages:  s.transcript.Messages(),
		NextID:    s.transcript.nextID,
		Agenda:    s.agenda,
		Finalized: s.finalized,
		EventID:   s.eventID,
		UpdatedAt: s.updatedAt,
	}
}

func (s *Session) lastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt
}

func (s *Session) view() View {
	placeholder, hint := InputPrompt(s.draft.Step)
	v := View{
		SessionID:    s.id,
		Shell:        s.shell.Name(),
		Messages:     s.transcript.Messages(),
		Draft:        s.draft,
		Pending:      s.pending,
		InputEnabled: s.draft.Step < StepDone && !s.pending,
		ShowSummary:  s.draft.Step >= StepEventName && s.draft.Step < StepDone,
		Placeholder:  placeholder,
		Hint:         hint,
		Finalized:    s.finalized,
		EventID:      s.eventID,
	}
	if s.finalized {
		v.RedirectPath = s.shell.CompletionPath(s.eventID)
	}
	return v
}

func (s *Session) render() {
	s.opts.Surface.Render(s.view())
}
