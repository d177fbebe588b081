package assistant

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"techtrack-api/internal/models"
)

// Greeting is the first message of every session
const Greeting = "Hello! I'm your Inventory AI Assistant. I can help you analyze your hardware assets, check warranty statuses, or suggest replacements. Ask me anything about your inventory!"

var (
	// ErrEmptyQuery is returned for blank questions
	ErrEmptyQuery = errors.New("query is empty")
	// ErrQueryInFlight is returned while the session awaits a reply
	ErrQueryInFlight = errors.New("a query is already in progress")
)

// Session is an append-only conversation with at most one outstanding query
type Session struct {
	mu       sync.Mutex
	messages []models.ChatMessage
	sending  bool
	now      func() time.Time
}

// NewSession starts a conversation with the greeting
func NewSession() *Session {
	s := &Session{now: time.Now}
	s.messages = append(s.messages, s.message(models.RoleModel, Greeting))
	return s
}

// Messages returns a copy of the history in order
func (s *Session) Messages() []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

// Busy reports whether a query is outstanding
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sending
}

// Send records text as a user message, asks analyst about snapshot and
// appends the reply. The analyst runs without holding the session lock.
func (s *Session) Send(ctx context.Context, analyst Analyst, snapshot []models.Asset, text string) (models.ChatMessage, error) {
	if strings.TrimSpace(text) == "" {
		return models.ChatMessage{}, ErrEmptyQuery
	}

	s.mu.Lock()
	if s.sending {
		s.mu.Unlock()
		return models.ChatMessage{}, ErrQueryInFlight
	}
	s.sending = true
	s.messages = append(s.messages, s.message(models.RoleUser, text))
	s.mu.Unlock()

	reply := analyst.Query(ctx, snapshot, text)

	s.mu.Lock()
	defer s.mu.Unlock()
	msg := s.message(models.RoleModel, reply)
	s.messages = append(s.messages, msg)
	s.sending = false
	return msg, nil
}

func (s *Session) message(role models.Role, text string) models.ChatMessage {
	return models.ChatMessage{
		ID:        uuid.NewString(),
		Role:      role,
		Text:      text,
		Timestamp: s.now(),
	}
}

// Sessions maps session ids to conversations, creating them on first use
type Sessions struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewSessions creates an empty registry
func NewSessions() *Sessions {
	return &Sessions{sessions: make(map[string]*Session)}
}

// Get returns the session for id, starting one if needed
func (r *Sessions) Get(id string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		s = NewSession()
		r.sessions[id] = s
	}
	return s
}
