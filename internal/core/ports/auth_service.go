package ports

import (
	"context"

	"github.com/laughline/booking-api/internal/core/domain"
)

// RegisterInput carries the registration form.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.Account, error)
	// Authenticate never distinguishes an unknown email from a wrong password.
	Authenticate(ctx context.Context, email, password string) (*domain.Account, error)
	Login(ctx context.Context, email, password string) (string, *domain.Session, *domain.Account, error)
	// UpdateRole returns a fresh token and session carrying the new role.
	UpdateRole(ctx context.Context, sess *domain.Session, role string) (string, *domain.Session, *domain.Account, error)
}

// SessionResolver turns a presented token back into a session.
type SessionResolver interface {
	Resolve(token string) (*domain.Session, error)
}
