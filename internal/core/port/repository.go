package port

import (
	"context"
	"time"

	"github.com/Wyydra/calling/internal/core/domain"
)

type SessionRepository interface {
	Save(ctx context.Context, s *domain.Session) error
	Get(ctx context.Context, id domain.SessionID) (*domain.Session, error)
	DeleteCreatedBefore(ctx context.Context, t time.Time) (int, error)
}
