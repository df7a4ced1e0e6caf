package storage

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/screenguide/screenguide/internal/models"
)

// DefaultCapacity bounds the number of retained sessions. Each session holds
// a full screenshot in memory, so the store evicts the oldest session once
// the cap is reached.
const DefaultCapacity = 128

// SessionStore holds analyzed screenshots keyed by session id. Sessions are
// immutable once stored; there is no update operation.
type SessionStore struct {
	sessions map[string]*models.Session
	order    []string // insertion order, oldest first
	capacity int
	mu       sync.RWMutex
}

func New() *SessionStore {
	return NewWithCapacity(DefaultCapacity)
}

func NewWithCapacity(capacity int) *SessionStore {
	if capacity < 1 {
		capacity = 1
	}
	return &SessionStore{
		sessions: make(map[string]*models.Session),
		capacity: capacity,
	}
}

// Put stores a new session for the capture/analysis pair and returns it.
// Every call assigns a fresh id; no two puts collide.
func (s *SessionStore) Put(capture *models.ScreenCapture, analysis models.ProgramAnalysis) *models.Session {
	session := &models.Session{
		ID:        uuid.NewString(),
		Capture:   capture,
		Analysis:  analysis,
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for len(s.order) >= s.capacity {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.sessions, oldest)
	}

	s.sessions[session.ID] = session
	s.order = append(s.order, session.ID)
	return session
}

func (s *SessionStore) Get(sessionID string) (*models.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, exists := s.sessions[sessionID]
	return session, exists
}

// Latest returns the most recently stored session. Non-deterministic when
// analyses race; callers that care should track ids explicitly.
func (s *SessionStore) Latest() (*models.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.order) == 0 {
		return nil, false
	}
	session := s.sessions[s.order[len(s.order)-1]]
	return session, true
}

// All returns the stored sessions, oldest first.
func (s *SessionStore) All() []*models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*models.Session, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.sessions[id])
	}
	return result
}

func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
