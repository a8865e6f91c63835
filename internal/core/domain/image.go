package domain

import "strings"

// MaxImageBytes is the largest upload the pipeline accepts.
const MaxImageBytes = 5 << 20

// ImageKind selects the target geometry and key prefix.
type ImageKind string

const (
	ImageAvatar ImageKind = "avatar"
	ImagePhoto  ImageKind = "photo"
)

// ParseImageKind validates a client-supplied kind.
func ParseImageKind(s string) (ImageKind, bool) {
	switch k := ImageKind(strings.ToLower(strings.TrimSpace(s))); k {
	case ImageAvatar, ImagePhoto:
		return k, true
	}
	return "", false
}

// ImageUpload is one file handed to the ingestion pipeline.
type ImageUpload struct {
	Data        []byte
	ContentType string
	Kind        ImageKind
}

// StoredImage describes a written, immutable blob. Profiles keep Path.
type StoredImage struct {
	Key         string `json:"key"`
	Path        string `json:"path"`
	URL         string `json:"url,omitempty"`
	ContentType string `json:"contentType"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Size        int    `json:"size"`
}
