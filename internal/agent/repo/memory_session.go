package repo

import (
	"context"
	"sync"

	"github.com/chative-support-desk/server/internal/agent/model"
)

// MemorySessionStore keeps histories in process memory. Sessions live as
// long as the process.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string][]model.Turn
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string][]model.Turn)}
}

func (s *MemorySessionStore) Load(_ context.Context, sessionID string) ([]model.Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return model.CloneTurns(s.sessions[sessionID]), nil
}

func (s *MemorySessionStore) Append(_ context.Context, sessionID string, turn model.Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = append(s.sessions[sessionID], turn)
	return nil
}

func (s *MemorySessionStore) Reset(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

var _ model.SessionStore = (*MemorySessionStore)(nil)
