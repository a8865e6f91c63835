// Package sentry reports unexpected server errors. Every method is a no-op
// when no DSN is configured.
package sentry

import (
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog"
)

type Config struct {
	DSN         string
	Environment string
	Release     string
}

type Reporter struct {
	initialized bool
}

// New initialises the global Sentry client. Init failures are logged and leave
// the reporter disabled.
func New(cfg Config, log zerolog.Logger) *Reporter {
	if cfg.DSN == "" {
		log.Info().Msg("SENTRY_DSN not set, error reporting disabled")
		return &Reporter{}
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
		Release:     cfg.Release,
	})
	if err != nil {
		log.Error().Err(err).Msg("sentry init failed")
		return &Reporter{}
	}

	log.Info().Str("environment", cfg.Environment).Msg("sentry initialised")
	return &Reporter{initialized: true}
}

// Enabled reports whether events are actually sent.
func (r *Reporter) Enabled() bool {
	return r != nil && r.initialized
}

// CaptureException sends err with the given tags attached.
func (r *Reporter) CaptureException(err error, tags map[string]string) {
	if !r.Enabled() || err == nil {
		return
	}
	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetTags(tags)
		sentry.CaptureException(err)
	})
}

// Flush waits up to timeout for buffered events.
func (r *Reporter) Flush(timeout time.Duration) bool {
	if !r.Enabled() {
		return true
	}
	return sentry.Flush(timeout)
}
