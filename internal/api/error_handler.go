package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/laughline/booking-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// ErrorReporter receives server-side failures. *sentry.Reporter satisfies it.
type ErrorReporter interface {
	CaptureException(err error, tags map[string]string)
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps domain error kinds to their HTTP status codes.
//   - Logs and reports 5xx errors without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger, reporter ErrorReporter) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err)
		if code >= http.StatusInternalServerError {
			log.Error().
				Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
				Msg("unhandled error")
			if reporter != nil {
				reporter.CaptureException(err, map[string]string{
					"method": c.Request().Method,
					"path":   c.Path(),
				})
			}
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error) (int, string) {
	// Echo's own errors (bind failures, 404 from router, auth middleware, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Internal != nil && he.Code >= http.StatusInternalServerError {
			return he.Code, http.StatusText(he.Code)
		}
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	var de *domain.Error
	if !errors.As(err, &de) {
		return http.StatusInternalServerError, "internal server error"
	}

	switch de.Kind {
	case domain.KindValidation, domain.KindConflict:
		return http.StatusBadRequest, de.Message
	case domain.KindUnauthorized:
		return http.StatusUnauthorized, de.Message
	case domain.KindNotFound:
		return http.StatusNotFound, de.Message
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}
