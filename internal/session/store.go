// ABOUTME: In-memory conversation session store with a sliding history window
// ABOUTME: Sessions are created lazily; only the last N exchanges are kept
package session

import (
	"sync"

	"github.com/google/uuid"

	"github.com/lectern/lectern/internal/models"
)

// DefaultWindow is the number of exchanges kept per session by default
const DefaultWindow = 2

// Store keeps per-session conversation history in memory. Any session id
// is accepted; unknown ids read as empty history and are created on first
// append. Appends for the same session are serialized on a per-session
// lock so concurrent requests cannot interleave a session's history.
type Store struct {
	mu       sync.RWMutex
	window   int
	sessions map[string]*session
}

type session struct {
	mu    sync.Mutex
	turns []models.Turn
}

// NewStore creates a session store keeping the last window exchanges per
// session. A negative window falls back to DefaultWindow; zero keeps no
// history at all.
func NewStore(window int) *Store {
	if window < 0 {
		window = DefaultWindow
	}
	return &Store{
		window:   window,
		sessions: make(map[string]*session),
	}
}

// NewSession returns a fresh unique session id
func (s *Store) NewSession() string {
	return uuid.New().String()
}

// lookup returns the session for an id, optionally creating it
func (s *Store) lookup(sessionID string, create bool) *session {
	s.mu.RLock()
	sess := s.sessions[sessionID]
	s.mu.RUnlock()
	if sess != nil || !create {
		return sess
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess = s.sessions[sessionID]; sess == nil {
		sess = &session{}
		s.sessions[sessionID] = sess
	}
	return sess
}

// History returns a copy of the retained exchanges for a session, oldest
// first. Unknown sessions have empty history.
func (s *Store) History(sessionID string) []models.Turn {
	sess := s.lookup(sessionID, false)
	if sess == nil {
		return nil
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if len(sess.turns) == 0 {
		return nil
	}
	out := make([]models.Turn, len(sess.turns))
	copy(out, sess.turns)
	return out
}

// Append records one completed exchange, evicting the oldest entries
// beyond the window
func (s *Store) Append(sessionID string, turn models.Turn) {
	if s.window == 0 {
		return
	}

	sess := s.lookup(sessionID, true)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.turns = append(sess.turns, turn)
	if len(sess.turns) > s.window {
		sess.turns = sess.turns[len(sess.turns)-s.window:]
	}
}

// Clear removes all history for a session. The id remains usable.
func (s *Store) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

// Len returns the number of sessions currently holding history
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
