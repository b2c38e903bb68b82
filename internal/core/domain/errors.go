package domain

import "errors"

var (
	ErrInvalidIdentity  = errors.New("invalid identity for room membership")
	ErrRoomProvisioning = errors.New("room provisioning failed")
	ErrMissingLocator   = errors.New("no call locator available")
	ErrNoCallees        = errors.New("no callees given")
	ErrAttemptInFlight  = errors.New("call attempt already in progress")
	ErrCallInProgress   = errors.New("call already started")
	ErrSessionNotFound  = errors.New("session not found")
	ErrUnknownOption    = errors.New("unknown call option")
	ErrEmptyDisplayName = errors.New("display name cannot be empty")
)
