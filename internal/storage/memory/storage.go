package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mcoot/blockgame-go/internal/model"
	"github.com/mcoot/blockgame-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface. Sessions
// are copied on the way in and out so callers never share grid state.
type Storage struct {
	mu sync.RWMutex

	sessions   map[model.SessionID]*model.Session
	bestScores map[model.Variant]int
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		sessions:   make(map[model.SessionID]*model.Session),
		bestScores: make(map[model.Variant]int),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session.Clone()
	return nil
}

func (s *Storage) GetSession(ctx context.Context, id model.SessionID) (*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	return session.Clone(), nil
}

func (s *Storage) DeleteSession(ctx context.Context, id model.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *Storage) ListSessionIDs(ctx context.Context) ([]model.SessionID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]model.SessionID, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// Best score operations

func (s *Storage) GetBestScore(ctx context.Context, variant model.Variant) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bestScores[variant], nil
}

func (s *Storage) SaveBestScore(ctx context.Context, variant model.Variant, score int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if score > s.bestScores[variant] {
		s.bestScores[variant] = score
	}
	return s.bestScores[variant], nil
}
