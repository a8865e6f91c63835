package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/laughline/booking-api/internal/core/domain"
)

// DefaultSessionTTL is the fixed session window.
const DefaultSessionTTL = 30 * 24 * time.Hour

const sessionIssuer = "comedy-booking-api"

type sessionClaims struct {
	Role  string `json:"role"`
	Name  string `json:"name"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// SessionIssuer signs and resolves HS256 session tokens. Nothing is stored
// server side; revocation happens by expiry or by the client dropping the
// token.
type SessionIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSessionIssuer(secret string, ttl time.Duration) *SessionIssuer {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// TTL is the lifetime of issued sessions.
func (s *SessionIssuer) TTL() time.Duration {
	return s.ttl
}

// Issue signs a session for account.
func (s *SessionIssuer) Issue(account *domain.Account) (string, *domain.Session, error) {
	now := s.now().UTC().Truncate(time.Second)
	sess := &domain.Session{
		AccountID: account.ID,
		Role:      account.Role,
		Name:      account.Name,
		Email:     account.Email,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.ttl),
	}

	claims := sessionClaims{
		Role:  string(account.Role),
		Name:  account.Name,
		Email: account.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    sessionIssuer,
			Subject:   account.ID,
			IssuedAt:  jwt.NewNumericDate(sess.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
			ID:        uuid.NewString(),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, domain.Dependency("sign session", err)
	}
	return token, sess, nil
}

// Resolve validates token and returns its session. Any failure, including
// expiry, is domain.ErrUnauthorized.
func (s *SessionIssuer) Resolve(token string) (*domain.Session, error) {
	if token == "" {
		return nil, domain.ErrUnauthorized
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(sessionIssuer),
		jwt.WithTimeFunc(s.now),
	)

	claims := &sessionClaims{}
	if _, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	}); err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, &domain.Error{Kind: domain.KindUnauthorized, Message: "session expired", Err: err}
		}
		return nil, &domain.Error{Kind: domain.KindUnauthorized, Message: "invalid session", Err: err}
	}

	role, ok := domain.ParseRole(claims.Role)
	if claims.Subject == "" || !ok {
		return nil, domain.ErrUnauthorized
	}

	sess := &domain.Session{
		AccountID: claims.Subject,
		Role:      role,
		Name:      claims.Name,
		Email:     claims.Email,
		ExpiresAt: claims.ExpiresAt.Time.UTC(),
	}
	if claims.IssuedAt != nil {
		sess.IssuedAt = claims.IssuedAt.Time.UTC()
	}
	return sess, nil
}
