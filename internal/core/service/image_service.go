package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/laughline/booking-api/internal/core/domain"
	"github.com/laughline/booking-api/internal/core/ports"
)

// Keys are unique per upload, so stored objects never change.
const imageCacheControl = "public, max-age=31536000"

type ImageService struct {
	processor     ports.ImageProcessor
	store         ports.ObjectStore
	publicBaseURL string
	log           zerolog.Logger
	now           func() time.Time
}

func NewImageService(processor ports.ImageProcessor, store ports.ObjectStore, publicBaseURL string, log zerolog.Logger) *ImageService {
	return &ImageService{
		processor:     processor,
		store:         store,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		log:           log,
		now:           time.Now,
	}
}

// Ingest checks, re-encodes and stores one image.
func (s *ImageService) Ingest(ctx context.Context, up domain.ImageUpload) (*domain.StoredImage, error) {
	if len(up.Data) == 0 {
		return nil, domain.Validation("file is required")
	}
	if len(up.Data) > domain.MaxImageBytes {
		return nil, domain.Validation("file exceeds the %d MiB limit", domain.MaxImageBytes>>20)
	}
	if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(up.ContentType)), "image/") {
		return nil, domain.Validation("only image files are accepted")
	}
	kind, ok := domain.ParseImageKind(string(up.Kind))
	if !ok {
		return nil, domain.Validation("type must be avatar or photo")
	}

	start := time.Now()
	out, err := s.processor.Process(up.Data, kind)
	if err != nil {
		if domain.KindOf(err) == domain.KindValidation {
			return nil, err
		}
		return nil, domain.Dependency("process image", err)
	}

	key, err := s.newKey(kind, out.Ext)
	if err != nil {
		return nil, domain.Dependency("generate image key", err)
	}
	if err := s.store.Put(ctx, key, out.Data, out.ContentType, imageCacheControl); err != nil {
		return nil, domain.Dependency("store image", err)
	}

	img := &domain.StoredImage{
		Key:         key,
		Path:        "/" + key,
		ContentType: out.ContentType,
		Width:       out.Width,
		Height:      out.Height,
		Size:        len(out.Data),
	}
	if s.publicBaseURL != "" {
		img.URL = s.publicBaseURL + img.Path
	}

	s.log.Info().
		Str("key", key).
		Str("kind", string(kind)).
		Int("in_bytes", len(up.Data)).
		Int("out_bytes", img.Size).
		Dur("took", time.Since(start)).
		Msg("image stored")
	return img, nil
}

// IngestAll processes uploads in order and stops at the first failure.
// Images stored before the failure are left in place.
func (s *ImageService) IngestAll(ctx context.Context, uploads []domain.ImageUpload) ([]*domain.StoredImage, error) {
	if len(uploads) == 0 {
		return nil, domain.Validation("file is required")
	}
	stored := make([]*domain.StoredImage, 0, len(uploads))
	for _, up := range uploads {
		img, err := s.Ingest(ctx, up)
		if err != nil {
			return nil, err
		}
		stored = append(stored, img)
	}
	return stored, nil
}

func (s *ImageService) newKey(kind domain.ImageKind, ext string) (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	if ext == "" {
		ext = "jpg"
	}
	return fmt.Sprintf("%s/%d-%s.%s", kind, s.now().UnixMilli(), hex.EncodeToString(b), ext), nil
}
