package conversation

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/misssam/tutor-backend/internal/model/chat"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrNoUserTurns     = errors.New("no user turns to remove")
)

// Service holds per-session conversation state. Each session carries two
// append-only turn sequences (user and assistant) plus a one-shot greeted
// flag. Within a session there is a single writer per event; the mutex only
// protects the session map across concurrent sessions.
type Service struct {
	mu       sync.RWMutex
	sessions map[string]*sessionState
}

type sessionState struct {
	session        chat.Session
	userTurns      []chat.Turn
	assistantTurns []chat.Turn
	greeted        bool
}

// NewService bootstraps the in-memory conversation store. State lives for
// the process lifetime only; nothing is persisted.
func NewService() *Service {
	return &Service{
		sessions: make(map[string]*sessionState),
	}
}

// CreateSession provisions a fresh anonymous session with empty history.
func (s *Service) CreateSession(_ context.Context) (chat.Session, error) {
	session := chat.Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.sessions[session.ID] = &sessionState{
		session:        session,
		userTurns:      make([]chat.Turn, 0, 16),
		assistantTurns: make([]chat.Turn, 0, 16),
	}
	s.mu.Unlock()

	return session, nil
}

// GetSession retrieves a session by identifier.
func (s *Service) GetSession(_ context.Context, sessionID string) (chat.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.sessions[sessionID]
	if !ok {
		return chat.Session{}, ErrSessionNotFound
	}
	return state.session, nil
}

// AppendUser appends a user turn at the end of the session's user sequence.
func (s *Service) AppendUser(_ context.Context, sessionID, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.sessions[sessionID]
	if !ok {
		return ErrSessionNotFound
	}

	state.userTurns = append(state.userTurns, chat.Turn{
		Origin:    chat.OriginUser,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	})
	return nil
}

// AppendAssistant appends an assistant turn at the end of the session's
// assistant sequence.
func (s *Service) AppendAssistant(_ context.Context, sessionID, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.sessions[sessionID]
	if !ok {
		return ErrSessionNotFound
	}

	state.assistantTurns = append(state.assistantTurns, chat.Turn{
		Origin:    chat.OriginAssistant,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	})
	return nil
}

// PopLastUser removes the most recently appended user turn. Used when a
// guard rejects input so the rejected message never reaches prompt assembly.
func (s *Service) PopLastUser(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.sessions[sessionID]
	if !ok {
		return ErrSessionNotFound
	}
	if len(state.userTurns) == 0 {
		return ErrNoUserTurns
	}

	state.userTurns = state.userTurns[:len(state.userTurns)-1]
	return nil
}

// Greeted reports whether the one-shot greeting has been delivered.
func (s *Service) Greeted(_ context.Context, sessionID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.sessions[sessionID]
	if !ok {
		return false, ErrSessionNotFound
	}
	return state.greeted, nil
}

// MarkGreeted flips the greeted flag. The flag is never reset.
func (s *Service) MarkGreeted(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.sessions[sessionID]
	if !ok {
		return ErrSessionNotFound
	}
	state.greeted = true
	return nil
}

// Turns returns copies of both turn sequences for prompt assembly.
func (s *Service) Turns(_ context.Context, sessionID string) (users, assistants []chat.Turn, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.sessions[sessionID]
	if !ok {
		return nil, nil, ErrSessionNotFound
	}

	users = make([]chat.Turn, len(state.userTurns))
	copy(users, state.userTurns)
	assistants = make([]chat.Turn, len(state.assistantTurns))
	copy(assistants, state.assistantTurns)
	return users, assistants, nil
}

// PairedTurns renders the fully-paired prefix of the conversation for
// display: user turn then assistant turn for each pair index, stopping at
// min(len(user), len(assistant)). A user turn still awaiting its reply is
// not rendered.
func (s *Service) PairedTurns(_ context.Context, sessionID string) ([]chat.RenderedTurn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	pairs := len(state.userTurns)
	if len(state.assistantTurns) < pairs {
		pairs = len(state.assistantTurns)
	}

	rendered := make([]chat.RenderedTurn, 0, pairs*2)
	for i := 0; i < pairs; i++ {
		rendered = append(rendered,
			chat.RenderedTurn{Text: state.userTurns[i].Text, IsUser: true, Ordinal: i},
			chat.RenderedTurn{Text: state.assistantTurns[i].Text, IsUser: false, Ordinal: i},
		)
	}
	return rendered, nil
}
