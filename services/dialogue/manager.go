package dialogue

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FinalizeResult tells the caller where the shell navigates next.
type FinalizeResult struct {
	EventID      string `json:"eventId"`
	RedirectPath string `json:"redirectPath"`
}

// Manager owns the live sessions of this process and mirrors them to a SessionStore.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session

	store   SessionStore
	creator EventCreator
	opts    Options
	idleTTL time.Duration
	logger  *zap.Logger
}

// NewManager builds a manager. idleTTL bounds how long an untouched session stays in memory.
func NewManager(store SessionStore, creator EventCreator, opts Options, idleTTL time.Duration, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		sessions: make(map[string]*Session),
		store:    store,
		creator:  creator,
		opts:     opts,
		idleTTL:  idleTTL,
		logger:   logger,
	}
}

// Open starts a new conversation for ownerID in the named shell.
func (m *Manager) Open(ctx context.Context, ownerID, shellName string) (View, error) {
	shell, err := ShellByName(shellName)
	if err != nil {
		return View{}, err
	}
	m.evictIdle()

	s := NewSession(uuid.NewString(), ownerID, shell, m.opts)
	m.mu.Lock()
	m.sessions[s.ID()] = s
	m.mu.Unlock()

	m.persist(ctx, s)
	m.logger.Info("dialogue session opened",
		zap.String("sessionID", s.ID()), zap.String("ownerID", ownerID), zap.String("shell", shell.Name()))
	return s.View(), nil
}

// Get returns the live session, restoring it from the store when needed.
func (m *Manager) Get(ctx context.Context, id, ownerID string) (*Session, error) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	m.mu.Unlock()
	if !ok {
		snap, err := m.store.Load(ctx, id)
		if err != nil {
			return nil, err
		}
		if snap == nil {
			return nil, ErrSessionNotFound
		}
		restored, err := RestoreSession(*snap, m.opts)
		if err != nil {
			return nil, err
		}
		m.mu.Lock()
		// Another request may have restored it first.
		if existing, ok := m.sessions[id]; ok {
			restored = existing
		} else {
			m.sessions[id] = restored
		}
		m.mu.Unlock()
		s = restored
	}
	if s.OwnerID() != ownerID {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Submit forwards one user input to the session.
func (m *Manager) Submit(ctx context.Context, id, ownerID, input string) (View, error) {
	s, err := m.Get(ctx, id, ownerID)
	if err != nil {
		return View{}, err
	}
	view, err := s.Submit(ctx, input)
	if err == nil {
		m.persist(ctx, s)
	}
	return view, err
}

// Reset restarts the conversation.
func (m *Manager) Reset(ctx context.Context, id, ownerID string) (View, error) {
	s, err := m.Get(ctx, id, ownerID)
	if err != nil {
		return View{}, err
	}
	view := s.Reset()
	m.persist(ctx, s)
	return view, nil
}

// View returns the current presentation state.
func (m *Manager) View(ctx context.Context, id, ownerID string) (View, error) {
	s, err := m.Get(ctx, id, ownerID)
	if err != nil {
		return View{}, err
	}
	return s.View(), nil
}

// Finalize creates the event for a completed booking, hosted by the session owner.
func (m *Manager) Finalize(ctx context.Context, id, ownerID string) (FinalizeResult, error) {
	s, err := m.Get(ctx, id, ownerID)
	if err != nil {
		return FinalizeResult{}, err
	}
	eventID, err := s.Finalize(ctx, ownerID, m.creator)
	if err != nil {
		return FinalizeResult{}, err
	}
	m.persist(ctx, s)
	m.logger.Info("dialogue booking finalized", zap.String("sessionID", id), zap.String("eventID", eventID))
	return FinalizeResult{EventID: eventID, RedirectPath: s.View().RedirectPath}, nil
}

// Close discards the session.
func (m *Manager) Close(ctx context.Context, id, ownerID string) error {
	if _, err := m.Get(ctx, id, ownerID); err != nil {
		return err
	}
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
	return m.store.Delete(ctx, id)
}

// persist saves a snapshot. The in-memory session stays authoritative when the store fails.
func (m *Manager) persist(ctx context.Context, s *Session) {
	if err := m.store.Save(ctx, s.Snapshot()); err != nil {
		m.logger.Warn("failed to persist dialogue session", zap.String("sessionID", s.ID()), zap.Error(err))
	}
}

func (m *Manager) evictIdle() {
	if m.idleTTL <= 0 {
		return
	}
	cutoff := time.Now().Add(-m.idleTTL)
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, s := range m.sessions {
		if s.lastActive().Before(cutoff) {
			delete(m.sessions, id)
		}
	}
}
