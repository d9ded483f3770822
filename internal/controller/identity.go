package controller

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"supportbot/internal/model"
)

// sessionSuffixLen is the length of the random tail of a session id.
const sessionSuffixLen = 9

// NewSessionID returns an opaque id of the form session_<unix-millis>_<suffix>.
// It is unique with overwhelming probability but is not a secret.
func NewSessionID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:sessionSuffixLen]
	return fmt.Sprintf("session_%d_%s", time.Now().UnixMilli(), suffix)
}

// Session is the controller-owned session state shared by every component.
// The id is fixed at construction; the provider and active conversation
// change as the user works.
type Session struct {
	mu           sync.RWMutex
	id           string
	provider     string
	conversation model.ConversationID
	returned     map[model.ConversationID]struct{}
}

// NewSession creates a session whose id comes from newID, or NewSessionID
// when newID is nil.
func NewSession(newID func() string) *Session {
	if newID == nil {
		newID = NewSessionID
	}
	return &Session{
		id:       newID(),
		returned: make(map[model.ConversationID]struct{}),
	}
}

// ID returns the session id.
func (s *Session) ID() string {
	return s.id
}

// Provider returns the selected provider, empty when none is selected.
func (s *Session) Provider() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.provider
}

func (s *Session) setProvider(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.provider = name
}

// ActiveConversation returns the conversation id of the last completed exchange.
func (s *Session) ActiveConversation() model.ConversationID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.conversation
}

func (s *Session) setActiveConversation(id model.ConversationID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversation = id
	s.returned[id] = struct{}{}
}

// returnedBySend reports whether a send in this session produced id.
func (s *Session) returnedBySend(id model.ConversationID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.returned[id]
	return ok
}

// Snapshot returns a copy of the session context.
func (s *Session) Snapshot() model.SessionContext {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return model.SessionContext{SessionID: s.id, SelectedProvider: s.provider}
}
