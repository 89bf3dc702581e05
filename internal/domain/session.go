package domain

import "time"

// Session records an issued login, keyed by the session id embedded in the
// token. Logout deletes the record, which invalidates the token before its
// natural expiry.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session has passed its expiry instant.
func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
