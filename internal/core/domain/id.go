package domain

import (
	"github.com/google/uuid"
)

type SessionID uuid.UUID

func NewSessionID() SessionID {
	return SessionID(uuid.New())
}

func ParseSessionID(s string) (SessionID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return SessionID{}, err
	}
	return SessionID(id), nil
}

func (id SessionID) String() string {
	return uuid.UUID(id).String()
}

// NewGroupID returns a fresh group call id, used when nothing in the request
// points at an existing call.
func NewGroupID() string {
	return uuid.New().String()
}
