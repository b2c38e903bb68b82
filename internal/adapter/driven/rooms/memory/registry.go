package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/Wyydra/calling/internal/core/domain"
	"github.com/google/uuid"
)

// RoomRegistry stands in for the room API when no server is configured.
type RoomRegistry struct {
	mu    sync.Mutex
	rooms map[string]map[string]domain.Role
}

func NewRoomRegistry() *RoomRegistry {
	return &RoomRegistry{
		rooms: make(map[string]map[string]domain.Role),
	}
}

func (r *RoomRegistry) CreateRoom(ctx context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := uuid.New().String()
	r.rooms[id] = make(map[string]domain.Role)
	return id, nil
}

func (r *RoomRegistry) AddUserToRoom(ctx context.Context, userID, roomID string, role domain.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	members, ok := r.rooms[roomID]
	if !ok {
		return fmt.Errorf("room %s not found", roomID)
	}
	members[userID] = role
	return nil
}

// Role reports the role userID holds in roomID.
func (r *RoomRegistry) Role(roomID, userID string) (domain.Role, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	role, ok := r.rooms[roomID][userID]
	return role, ok
}
