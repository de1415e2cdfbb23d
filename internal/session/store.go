// Package session keeps per-conversation message history in process memory.
// Sessions are never evicted; callers delete them explicitly or not at all.
package session

import (
	"strings"
	"sync"

	"github.com/google/uuid"
)

// HistoryLimit caps how many entries History returns. Stored history is
// unbounded; the cap applies only at read time, for prompt composition.
const HistoryLimit = 10

// Message is one conversation entry.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type session struct {
	mu       sync.Mutex
	messages []Message
}

// Store maps session ids to ordered message history. The outer map has its
// own lock; each session carries a separate mutex so concurrent requests for
// different sessions never contend, and a user/assistant pair is appended as
// a unit.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*session
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*session)}
}

// GetOrCreate returns id when it names a known session, otherwise allocates
// a fresh session id with an empty history. Unknown ids are treated as
// "create new"; GetOrCreate never fails.
func (s *Store) GetOrCreate(id string) string {
	id = strings.TrimSpace(id)
	if id != "" {
		s.mu.RLock()
		_, ok := s.sessions[id]
		s.mu.RUnlock()
		if ok {
			return id
		}
	}
	fresh := uuid.NewString()
	s.mu.Lock()
	s.sessions[fresh] = &session{}
	s.mu.Unlock()
	return fresh
}

func (s *Store) get(id string) *session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[id]
}

// History returns a copy of the last HistoryLimit entries for id, oldest
// first. An unknown id yields nil.
func (s *Store) History(id string) []Message {
	sess := s.get(id)
	if sess == nil {
		return nil
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	msgs := sess.messages
	if len(msgs) > HistoryLimit {
		msgs = msgs[len(msgs)-HistoryLimit:]
	}
	out := make([]Message, len(msgs))
	copy(out, msgs)
	return out
}

// Append adds one entry to the session. Appending to an unknown id is a
// no-op.
func (s *Store) Append(id, role, content string) {
	sess := s.get(id)
	if sess == nil {
		return
	}
	sess.mu.Lock()
	sess.messages = append(sess.messages, Message{Role: role, Content: content})
	sess.mu.Unlock()
}

// AppendExchange adds the user message and the assistant reply under one
// lock, so two concurrent requests on the same session can never interleave
// their pairs.
func (s *Store) AppendExchange(id, userContent, assistantContent string) {
	sess := s.get(id)
	if sess == nil {
		return
	}
	sess.mu.Lock()
	sess.messages = append(sess.messages,
		Message{Role: "user", Content: userContent},
		Message{Role: "assistant", Content: assistantContent},
	)
	sess.mu.Unlock()
}

// Delete removes the session. Deleting an unknown id is not an error.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Exists reports whether id names a known session.
func (s *Store) Exists(id string) bool {
	return s.get(id) != nil
}
