package domain

import "time"

// Session is the identity resolved from a signed session token. It carries
// exactly what handlers need and nothing else.
type Session struct {
	AccountID string    `json:"id"`
	Role      Role      `json:"role"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Owns reports whether the session's account is ownerID.
func (s *Session) Owns(ownerID string) bool {
	return s != nil && s.AccountID != "" && s.AccountID == ownerID
}
