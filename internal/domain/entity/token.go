package entity

import "time"

// Token is an opaque bearer credential. It is the sole proof of identity for
// authenticated operations and carries nothing beyond its owner and expiry.
type Token struct {
	ID        string    `json:"tokenId"`
	UserID    string    `json:"userId"`
	ExpiresAt time.Time `json:"expires"`
}

// Expired reports whether the token is no longer valid at the given instant.
// A token is valid strictly before its expiry; an expiry equal to now counts
// as expired.
func (t *Token) Expired(now time.Time) bool {
	return !t.ExpiresAt.After(now)
}
