package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Wyydra/calling/internal/core/domain"
)

type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[domain.SessionID]*domain.Session
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{
		sessions: make(map[domain.SessionID]*domain.Session),
	}
}

func (r *SessionRepository) Save(ctx context.Context, s *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = s
	return nil
}

func (r *SessionRepository) Get(ctx context.Context, id domain.SessionID) (*domain.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return s, nil
}

func (r *SessionRepository) DeleteCreatedBefore(ctx context.Context, t time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, s := range r.sessions {
		if s.CreatedAt.Before(t) {
			delete(r.sessions, id)
			n++
		}
	}
	return n, nil
}
