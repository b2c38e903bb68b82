package ws

import "github.com/Wyydra/calling/internal/core/domain"

type Client interface {
	ID() string
	SessionID() domain.SessionID
	SendUpdate(update domain.SessionUpdate) error
	Close() error
}
