// ABOUTME: In-memory session store with TTL cleanup and capacity limits
// ABOUTME: Thread-safe storage for managing active wizard sessions
package wizard

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/erdsmith/erdsmith/erd"
	"github.com/erdsmith/erdsmith/erd/validator"
	"github.com/google/uuid"
)

type SessionStore struct {
	mu          sync.RWMutex
	sessions    map[string]*Session
	maxSessions int
	ttl         time.Duration
}

// NewSessionStore creates a new session store
func NewSessionStore(maxSessions int, ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions:    make(map[string]*Session),
		maxSessions: maxSessions,
		ttl:         ttl,
	}
}

// Create creates a new session from diagram source
func (s *SessionStore) Create(source string) (*Session, error) {
	if strings.TrimSpace(source) == "" {
		return nil, fmt.Errorf("diagram source is required")
	}

	model := erd.Parse(source)

	s.mu.Lock()
	defer s.mu.Unlock()

	// Check capacity
	if len(s.sessions) >= s.maxSessions {
		// Evict oldest session
		var oldestID string
		var oldestTime time.Time
		for id, sess := range s.sessions {
			if oldestTime.IsZero() || sess.LastAccess.Before(oldestTime) {
				oldestID = id
				oldestTime = sess.LastAccess
			}
		}
		delete(s.sessions, oldestID)
	}

	now := time.Now()
	sess := &Session{
		ID:         uuid.New().String(),
		Source:     source,
		Model:      model,
		Result:     validator.Run(model),
		CreatedAt:  now,
		LastAccess: now,
	}

	s.sessions[sess.ID] = sess
	return sess, nil
}

// Get retrieves a session by ID and updates its LastAccess time
func (s *SessionStore) Get(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}

	sess.LastAccess = time.Now()
	return sess, true
}

// Len reports the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Cleanup removes sessions older than TTL
func (s *SessionStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-s.ttl)
	for id, sess := range s.sessions {
		if sess.LastAccess.Before(cutoff) {
			delete(s.sessions, id)
		}
	}
}

// StartCleanup starts a background cleanup goroutine and returns a stop function
func (s *SessionStore) StartCleanup(interval time.Duration) func() {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-ticker.C:
				s.Cleanup()
			case <-done:
				ticker.Stop()
				return
			}
		}
	}()

	return func() {
		close(done)
	}
}
