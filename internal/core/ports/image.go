package ports

import (
	"context"

	"github.com/laughline/booking-api/internal/core/domain"
)

// ProcessedImage is the re-encoded output of an ImageProcessor.
type ProcessedImage struct {
	Data        []byte
	ContentType string
	Ext         string
	Width       int
	Height      int
}

// ImageProcessor decodes, resizes and re-encodes an image for a kind.
type ImageProcessor interface {
	Process(data []byte, kind domain.ImageKind) (*ProcessedImage, error)
}

// ObjectStore writes immutable blobs.
type ObjectStore interface {
	Put(ctx context.Context, key string, data []byte, contentType, cacheControl string) error
}

type ImageService interface {
	Ingest(ctx context.Context, upload domain.ImageUpload) (*domain.StoredImage, error)
	IngestAll(ctx context.Context, uploads []domain.ImageUpload) ([]*domain.StoredImage, error)
}
