package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/laughline/booking-api/internal/core/domain"
	"github.com/laughline/booking-api/internal/core/ports"
)

// SessionKey is the echo context key holding the resolved *domain.Session.
const SessionKey = "session"

// Auth resolves the session token from the Authorization header, falling back
// to the session cookie, and injects the session into the context.
func Auth(resolver ports.SessionResolver, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := tokenFromRequest(c, cookieName)
			if err != nil {
				return err
			}

			sess, err := resolver.Resolve(token)
			if err != nil {
				msg := "invalid session"
				var de *domain.Error
				if errors.As(err, &de) && de.Message != "" {
					msg = de.Message
				}
				return echo.NewHTTPError(http.StatusUnauthorized, msg)
			}

			c.Set(SessionKey, sess)
			return next(c)
		}
	}
}

func tokenFromRequest(c echo.Context, cookieName string) (string, error) {
	if authHeader := c.Request().Header.Get(echo.HeaderAuthorization); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
			return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
		}
		return strings.TrimSpace(parts[1]), nil
	}

	if cookieName != "" {
		if ck, err := c.Cookie(cookieName); err == nil && ck.Value != "" {
			return ck.Value, nil
		}
	}
	return "", echo.NewHTTPError(http.StatusUnauthorized, "missing session")
}
