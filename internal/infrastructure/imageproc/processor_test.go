package imageproc

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"math/rand/v2"
	"testing"

	"github.com/laughline/booking-api/internal/core/domain"
)

func noisyImage(w, h int) *image.RGBA {
	rng := rand.New(rand.NewPCG(1, 2))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{uint8(rng.IntN(256)), uint8(rng.IntN(256)), uint8(rng.IntN(256)), 255})
		}
	}
	return img
}

func encodeJPEG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 95}); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}
	return buf.Bytes()
}

func decodeOutput(t *testing.T, data []byte) image.Config {
	t.Helper()
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output does not decode: %v", err)
	}
	if format != "jpeg" {
		t.Fatalf("expected jpeg output, got %s", format)
	}
	return cfg
}

func TestProcess_AvatarFromLargeUpload(t *testing.T) {
	data := encodeJPEG(t, noisyImage(1600, 900))
	// Pad to ~4 MiB; decoders stop at the end-of-image marker.
	if pad := 4<<20 - len(data); pad > 0 {
		data = append(data, make([]byte, pad)...)
	}
	if len(data) > domain.MaxImageBytes {
		t.Fatalf("fixture exceeds the upload limit: %d", len(data))
	}

	out, err := New().Process(data, domain.ImageAvatar)
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if out.Width != AvatarSize || out.Height != AvatarSize {
		t.Fatalf("expected %dx%d, got %dx%d", AvatarSize, AvatarSize, out.Width, out.Height)
	}
	cfg := decodeOutput(t, out.Data)
	if cfg.Width != AvatarSize || cfg.Height != AvatarSize {
		t.Fatalf("encoded size %dx%d", cfg.Width, cfg.Height)
	}
	if out.ContentType != "image/jpeg" || out.Ext != "jpg" {
		t.Fatalf("unexpected output type %s/%s", out.ContentType, out.Ext)
	}
}

func TestProcess_PhotoFitsBox(t *testing.T) {
	out, err := New().Process(encodeJPEG(t, noisyImage(3000, 1000)), domain.ImagePhoto)
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if out.Width != 1200 || out.Height != 400 {
		t.Fatalf("expected 1200x400, got %dx%d", out.Width, out.Height)
	}

	tall, err := New().Process(encodeJPEG(t, noisyImage(600, 1600)), domain.ImagePhoto)
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if tall.Height != PhotoMaxHeight || tall.Width != 300 {
		t.Fatalf("expected 300x800, got %dx%d", tall.Width, tall.Height)
	}
}

func TestProcess_PhotoNotUpscaled(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, noisyImage(200, 100)); err != nil {
		t.Fatalf("encode png: %v", err)
	}

	out, err := New().Process(buf.Bytes(), domain.ImagePhoto)
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if out.Width != 200 || out.Height != 100 {
		t.Fatalf("small photo should keep its size, got %dx%d", out.Width, out.Height)
	}
	decodeOutput(t, out.Data)
}

func TestProcess_RejectsGarbage(t *testing.T) {
	_, err := New().Process([]byte("definitely not an image"), domain.ImagePhoto)
	if domain.KindOf(err) != domain.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestProcess_RejectsUnknownKind(t *testing.T) {
	_, err := New().Process(encodeJPEG(t, noisyImage(10, 10)), domain.ImageKind("banner"))
	if domain.KindOf(err) != domain.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
