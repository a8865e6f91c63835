package domain

import (
	"strings"
	"time"
)

// Role is the single role an account holds.
type Role string

const (
	RolePerformer Role = "performer"
	RoleOrganizer Role = "organizer"

	// legacyRoleComedian is the value older clients still send for performers.
	legacyRoleComedian = "comedian"
)

// ParseRole normalises a client-supplied role. The legacy "comedian" value
// maps to RolePerformer.
func ParseRole(s string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(RolePerformer), legacyRoleComedian:
		return RolePerformer, true
	case string(RoleOrganizer):
		return RoleOrganizer, true
	}
	return "", false
}

// NormalizeEmail lowercases and trims an address; uniqueness is enforced on
// the normalised form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Account models a registered user.
type Account struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
