package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/laughline/booking-api/internal/core/domain"
	"github.com/laughline/booking-api/internal/core/ports"
)

const (
	minNameLen     = 2
	maxNameLen     = 50
	minPasswordLen = 6
)

var (
	dummyHashOnce sync.Once
	dummyHash     []byte
)

// AuthService implements registration, credential checks and session issue.
type AuthService struct {
	repo     ports.AccountRepository
	sessions *SessionIssuer
	validate *validator.Validate
	log      zerolog.Logger
	now      func() time.Time
}

func NewAuthService(repo ports.AccountRepository, sessions *SessionIssuer, log zerolog.Logger) *AuthService {
	return &AuthService{
		repo:     repo,
		sessions: sessions,
		validate: validator.New(),
		log:      log,
		now:      time.Now,
	}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.Account, error) {
	name := strings.TrimSpace(in.Name)
	email := domain.NormalizeEmail(in.Email)

	if n := utf8.RuneCountInString(name); n < minNameLen || n > maxNameLen {
		return nil, domain.Validation("name must be between %d and %d characters", minNameLen, maxNameLen)
	}
	if err := s.validate.Var(email, "required,email"); err != nil {
		return nil, domain.Validation("a valid email is required")
	}
	if len(in.Password) < minPasswordLen {
		return nil, domain.Validation("password must be at least %d characters", minPasswordLen)
	}
	role, ok := domain.ParseRole(in.Role)
	if !ok {
		return nil, domain.Validation("role must be one of: performer organizer")
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, domain.Dependency("hash password", err)
	}

	now := s.now().UTC()
	created, err := s.repo.Create(ctx, &domain.Account{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("account_id", created.ID).Str("role", string(created.Role)).Msg("account registered")
	return created, nil
}

func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*domain.Account, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	account, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrAccountNotFound) {
		// Burn the same bcrypt time as a real comparison.
		_ = bcrypt.CompareHashAndPassword(placeholderHash(), []byte(password))
		s.log.Info().Str("reason", "unknown_email").Msg("authentication failed")
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !verifyPassword(account.PasswordHash, password) {
		s.log.Info().Str("reason", "wrong_password").Str("account_id", account.ID).Msg("authentication failed")
		return nil, domain.ErrInvalidCredentials
	}
	return account, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.Session, *domain.Account, error) {
	account, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return "", nil, nil, err
	}

	token, sess, err := s.sessions.Issue(account)
	if err != nil {
		return "", nil, nil, err
	}
	return token, sess, account, nil
}

// UpdateRole changes the role of the session's own account and returns a
// fresh token carrying the new role.
func (s *AuthService) UpdateRole(ctx context.Context, sess *domain.Session, role string) (string, *domain.Session, *domain.Account, error) {
	if sess == nil || sess.AccountID == "" {
		return "", nil, nil, domain.ErrUnauthorized
	}
	parsed, ok := domain.ParseRole(role)
	if !ok {
		return "", nil, nil, domain.Validation("invalid role")
	}

	account, err := s.repo.UpdateRole(ctx, sess.AccountID, parsed)
	if err != nil {
		return "", nil, nil, err
	}

	token, fresh, err := s.sessions.Issue(account)
	if err != nil {
		return "", nil, nil, err
	}

	s.log.Info().Str("account_id", account.ID).Str("role", string(parsed)).Msg("role updated")
	return token, fresh, account, nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func verifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func placeholderHash() []byte {
	dummyHashOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("placeholder-password"), bcrypt.DefaultCost)
	})
	return dummyHash
}
