// Package metrics defines the custom Prometheus metrics of the booking API.
// It is the single source of truth for metric names, labels, and help strings.
//
// All metrics register with the default registry on package init through
// promauto; /metrics serves them next to the echoprometheus request metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "booking"

// ── Account metrics ───────────────────────────────────────────────────────────

// AccountsRegisteredTotal counts successful registrations.
// Label:
//   - role: "performer" or "organizer"
var AccountsRegisteredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "accounts_registered_total",
		Help:      "Total number of accounts registered, by role.",
	},
	[]string{"role"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Profile metrics ───────────────────────────────────────────────────────────

// ProfileSavesTotal counts profile upserts.
// Label:
//   - outcome: "created" or "updated"
var ProfileSavesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "profile_saves_total",
		Help:      "Total number of profile saves, by outcome.",
	},
	[]string{"outcome"},
)

// ── Show metrics ──────────────────────────────────────────────────────────────

// ShowsPublishedTotal counts newly stored shows.
// Label:
//   - type: the show type (e.g. "variety")
var ShowsPublishedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "shows_published_total",
		Help:      "Total number of shows published, by type.",
	},
	[]string{"type"},
)

// ShowSubmissionsReplayedTotal counts Idempotency-Key replays that returned an
// existing show.
var ShowSubmissionsReplayedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "show_submissions_replayed_total",
		Help:      "Total number of show submissions answered from the idempotency store.",
	},
)

// ── Image metrics ─────────────────────────────────────────────────────────────

// ImagesIngestedTotal counts images stored by the upload pipeline.
// Label:
//   - kind: "avatar" or "photo"
var ImagesIngestedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "images_ingested_total",
		Help:      "Total number of images processed and stored, by kind.",
	},
	[]string{"kind"},
)

// ImageIngestDuration measures one upload request end to end, across all of
// its files.
// Label:
//   - kind: "avatar" or "photo"
var ImageIngestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "image_ingest_duration_seconds",
		Help:      "Duration of image decode, resize, encode and upload per request.",
		Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
	},
	[]string{"kind"},
)
