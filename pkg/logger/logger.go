// Package logger holds the process-wide zerolog logger of the booking API.
//
// main calls Init once with values from config; everything else receives the
// logger by injection or, where that is awkward, through Get.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultService is the "service" field when Options.Service is empty.
const DefaultService = "booking-api"

// Options controls logger behaviour at initialisation time.
type Options struct {
	// Level is one of trace, debug, info, warn, error. Anything else is info.
	Level string
	// Env is the deployment environment (ENV). It is attached as "env" and
	// switches on console output for development and local.
	Env string
	// Pretty forces console output regardless of Env.
	Pretty bool
	// Output defaults to os.Stdout.
	Output io.Writer
	// Service defaults to DefaultService.
	Service string
}

// console reports whether entries should be human-readable text.
func (o Options) console() bool {
	if o.Pretty {
		return true
	}
	switch strings.ToLower(strings.TrimSpace(o.Env)) {
	case "development", "dev", "local":
		return true
	}
	return false
}

var (
	instance    zerolog.Logger
	once        sync.Once
	initialized bool
)

// Init builds the logger on the first call and returns it; later calls return
// the same logger and ignore opts.
func Init(opts Options) zerolog.Logger {
	once.Do(func() {
		zerolog.TimeFieldFormat = time.RFC3339Nano

		out := opts.Output
		if out == nil {
			out = os.Stdout
		}
		if opts.console() {
			out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
		}

		service := opts.Service
		if service == "" {
			service = DefaultService
		}

		lvl := parseLevel(opts.Level)
		zerolog.SetGlobalLevel(lvl)

		ctx := zerolog.New(out).
			Level(lvl).
			With().
			Timestamp().
			Str("service", service)
		if opts.Env != "" {
			ctx = ctx.Str("env", opts.Env)
		}
		if lvl <= zerolog.DebugLevel {
			ctx = ctx.Caller()
		}
		instance = ctx.Logger()

		initialized = true
	})
	return instance
}

// Get returns the logger built by Init. It panics before Init.
func Get() zerolog.Logger {
	if !initialized {
		panic("logger: Get() called before Init()")
	}
	return instance
}

// Reset forgets the logger so the next Init rebuilds it. Tests only.
func Reset() {
	once = sync.Once{}
	instance = zerolog.Logger{}
	initialized = false
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
