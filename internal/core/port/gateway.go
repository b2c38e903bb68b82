package port

import (
	"context"

	"github.com/Wyydra/calling/internal/core/domain"
)

// SessionGateway pushes session changes to the browser tabs bound to a session.
type SessionGateway interface {
	NotifySessionChanged(ctx context.Context, update domain.SessionUpdate) error
}
