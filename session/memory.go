package session

import (
	"context"
	"sync"

	"plantdesk/models"
)

// MemoryStore keeps sessions in a process-local map. Used by tests and by
// single-instance dev setups with no Redis.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]models.Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]models.Session)}
}

func (s *MemoryStore) Get(_ context.Context, sessionID string) (*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	// Copy out so callers never share the stored record.
	out := sess
	out.Flash = append([]models.FlashMessage(nil), sess.Flash...)
	return &out, nil
}

func (s *MemoryStore) Put(_ context.Context, sess *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *sess
	stored.Flash = append([]models.FlashMessage(nil), sess.Flash...)
	s.sessions[sess.SessionID] = stored
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sessionID)
	return nil
}

// Len reports the number of live sessions. Test helper.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
