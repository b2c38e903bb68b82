package domain

import "time"

// Credentials are fetched once per session and never mutated afterwards.
type Credentials struct {
	Token     string
	ExpiresOn time.Time
	User      Identity
}

func (c Credentials) Valid() bool {
	return c.Token != "" && c.User.RawID != ""
}
