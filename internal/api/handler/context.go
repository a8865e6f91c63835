package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/laughline/booking-api/internal/api/middleware"
	"github.com/laughline/booking-api/internal/core/domain"
)

// ctxSession returns the session injected by the Auth middleware. A missing
// session means the route was mounted without Auth and is treated as
// unauthenticated.
func ctxSession(c echo.Context) (*domain.Session, error) {
	sess, _ := c.Get(middleware.SessionKey).(*domain.Session)
	if sess == nil || sess.AccountID == "" {
		return nil, domain.ErrUnauthorized
	}
	return sess, nil
}

// dataResponse is the {"data": ...} envelope used by list and detail reads.
type dataResponse struct {
	Data any `json:"data"`
}

type errorResponse struct {
	Error string `json:"error"`
}
