package port

import (
	"context"

	"github.com/Wyydra/calling/internal/core/domain"
)

type RoomProvisioner interface {
	CreateRoom(ctx context.Context) (string, error)
}

type RoomMembership interface {
	AddUserToRoom(ctx context.Context, userID, roomID string, role domain.Role) error
}
