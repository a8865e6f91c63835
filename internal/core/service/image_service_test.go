package service

import (
	"bytes"
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/rs/zerolog"

	"github.com/laughline/booking-api/internal/core/domain"
	"github.com/laughline/booking-api/internal/core/ports"
)

type stubProcessor struct {
	calls int
	err   error
}

func (p *stubProcessor) Process(data []byte, kind domain.ImageKind) (*ports.ProcessedImage, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	size := 1200
	if kind == domain.ImageAvatar {
		size = 300
	}
	return &ports.ProcessedImage{Data: []byte("jpeg"), ContentType: "image/jpeg", Ext: "jpg", Width: size, Height: size}, nil
}

type stubObjectStore struct {
	objects map[string][]byte
	meta    map[string]string
	err     error
}

func newStubObjectStore() *stubObjectStore {
	return &stubObjectStore{objects: make(map[string][]byte), meta: make(map[string]string)}
}

func (s *stubObjectStore) Put(_ context.Context, key string, data []byte, contentType, cacheControl string) error {
	if s.err != nil {
		return s.err
	}
	s.objects[key] = data
	s.meta[key] = contentType + "|" + cacheControl
	return nil
}

var imageKeyPattern = regexp.MustCompile(`^(avatar|photo)/\d+-[0-9a-f]{32}\.jpg$`)

func TestImageService_Ingest_Avatar(t *testing.T) {
	proc := &stubProcessor{}
	store := newStubObjectStore()
	svc := NewImageService(proc, store, "https://cdn.example.com/", zerolog.Nop())

	img, err := svc.Ingest(context.Background(), domain.ImageUpload{
		Data:        []byte("raw"),
		ContentType: "image/png",
		Kind:        domain.ImageAvatar,
	})
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if !imageKeyPattern.MatchString(img.Key) {
		t.Fatalf("unexpected key %q", img.Key)
	}
	if img.Path != "/"+img.Key {
		t.Fatalf("unexpected path %q", img.Path)
	}
	if img.URL != "https://cdn.example.com"+img.Path {
		t.Fatalf("unexpected url %q", img.URL)
	}
	if img.Width != 300 || img.Height != 300 {
		t.Fatalf("unexpected dimensions %dx%d", img.Width, img.Height)
	}
	if _, ok := store.objects[img.Key]; !ok {
		t.Fatalf("object not written")
	}
	if store.meta[img.Key] != "image/jpeg|"+imageCacheControl {
		t.Fatalf("unexpected object metadata %q", store.meta[img.Key])
	}
}

func TestImageService_Ingest_UniqueKeys(t *testing.T) {
	svc := NewImageService(&stubProcessor{}, newStubObjectStore(), "", zerolog.Nop())

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		img, err := svc.Ingest(context.Background(), domain.ImageUpload{Data: []byte("x"), ContentType: "image/jpeg", Kind: domain.ImagePhoto})
		if err != nil {
			t.Fatalf("ingest: %v", err)
		}
		if seen[img.Key] {
			t.Fatalf("duplicate key %s", img.Key)
		}
		seen[img.Key] = true
		if img.URL != "" {
			t.Fatalf("expected no url without public base, got %q", img.URL)
		}
	}
}

func TestImageService_Ingest_RejectsBeforeProcessing(t *testing.T) {
	cases := map[string]domain.ImageUpload{
		"empty":        {ContentType: "image/jpeg", Kind: domain.ImagePhoto},
		"too large":    {Data: bytes.Repeat([]byte{0xff}, 6<<20), ContentType: "image/jpeg", Kind: domain.ImagePhoto},
		"not an image": {Data: []byte("%PDF-1.4"), ContentType: "application/pdf", Kind: domain.ImagePhoto},
		"unknown kind": {Data: []byte("x"), ContentType: "image/jpeg", Kind: "banner"},
	}
	for name, up := range cases {
		t.Run(name, func(t *testing.T) {
			proc := &stubProcessor{}
			store := newStubObjectStore()
			svc := NewImageService(proc, store, "", zerolog.Nop())

			if _, err := svc.Ingest(context.Background(), up); domain.KindOf(err) != domain.KindValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
			if proc.calls != 0 {
				t.Fatalf("processor must not run")
			}
			if len(store.objects) != 0 {
				t.Fatalf("nothing may be stored")
			}
		})
	}
}

func TestImageService_Ingest_ExactLimitAccepted(t *testing.T) {
	svc := NewImageService(&stubProcessor{}, newStubObjectStore(), "", zerolog.Nop())

	up := domain.ImageUpload{Data: make([]byte, domain.MaxImageBytes), ContentType: "image/jpeg", Kind: domain.ImagePhoto}
	if _, err := svc.Ingest(context.Background(), up); err != nil {
		t.Fatalf("expected exactly 5 MiB to be accepted: %v", err)
	}
}

func TestImageService_Ingest_Failures(t *testing.T) {
	up := domain.ImageUpload{Data: []byte("x"), ContentType: "image/jpeg", Kind: domain.ImagePhoto}

	decodeErr := &stubProcessor{err: domain.Validation("file is not a decodable image")}
	svc := NewImageService(decodeErr, newStubObjectStore(), "", zerolog.Nop())
	if _, err := svc.Ingest(context.Background(), up); domain.KindOf(err) != domain.KindValidation {
		t.Fatalf("expected decode failure to stay a validation error, got %v", err)
	}

	store := newStubObjectStore()
	store.err = errors.New("bucket unreachable")
	svc = NewImageService(&stubProcessor{}, store, "", zerolog.Nop())
	if _, err := svc.Ingest(context.Background(), up); domain.KindOf(err) != domain.KindDependency {
		t.Fatalf("expected dependency error on storage failure, got %v", err)
	}
}

func TestImageService_IngestAll_StopsAtFirstFailure(t *testing.T) {
	proc := &stubProcessor{}
	store := newStubObjectStore()
	svc := NewImageService(proc, store, "", zerolog.Nop())

	good := domain.ImageUpload{Data: []byte("x"), ContentType: "image/jpeg", Kind: domain.ImagePhoto}
	bad := domain.ImageUpload{Data: []byte("x"), ContentType: "text/plain", Kind: domain.ImagePhoto}

	if _, err := svc.IngestAll(context.Background(), []domain.ImageUpload{good, bad, good}); domain.KindOf(err) != domain.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if proc.calls != 1 {
		t.Fatalf("expected processing to stop after the bad file, got %d calls", proc.calls)
	}

	imgs, err := svc.IngestAll(context.Background(), []domain.ImageUpload{good, good})
	if err != nil {
		t.Fatalf("ingest all: %v", err)
	}
	if len(imgs) != 2 || imgs[0].Key == imgs[1].Key {
		t.Fatalf("unexpected result: %+v", imgs)
	}

	if _, err := svc.IngestAll(context.Background(), nil); domain.KindOf(err) != domain.KindValidation {
		t.Fatalf("expected validation error for no files, got %v", err)
	}
}
