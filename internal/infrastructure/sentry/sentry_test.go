package sentry

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestReporter_DisabledWithoutDSN(t *testing.T) {
	r := New(Config{}, zerolog.Nop())
	if r.Enabled() {
		t.Fatalf("expected reporter to be disabled")
	}
	// Must not panic or block.
	r.CaptureException(errors.New("boom"), map[string]string{"path": "/shows"})
	if !r.Flush(time.Millisecond) {
		t.Fatalf("disabled flush should report success")
	}

	var nilReporter *Reporter
	nilReporter.CaptureException(errors.New("boom"), nil)
}
