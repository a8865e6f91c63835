// Package imageproc decodes uploaded images and re-encodes them at the sizes
// the marketplace displays.
package imageproc

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"github.com/laughline/booking-api/internal/core/domain"
	"github.com/laughline/booking-api/internal/core/ports"
)

const (
	AvatarSize     = 300
	PhotoMaxWidth  = 1200
	PhotoMaxHeight = 800
	JPEGQuality    = 80

	// maxPixels bounds the decoded size of a 5 MiB upload.
	maxPixels = 50_000_000
)

// Processor implements ports.ImageProcessor with disintegration/imaging.
type Processor struct {
	quality int
}

func New() *Processor {
	return &Processor{quality: JPEGQuality}
}

// Process decodes data (honouring EXIF orientation), resizes it for kind and
// re-encodes it as JPEG.
//
// Avatars are cropped to a centred AvatarSize square. Photos are scaled to fit
// inside PhotoMaxWidth x PhotoMaxHeight and never enlarged.
func (p *Processor) Process(data []byte, kind domain.ImageKind) (*ports.ProcessedImage, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, domain.Validation("file is not a decodable image")
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width*cfg.Height > maxPixels {
		return nil, domain.Validation("image dimensions are not supported")
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, domain.Validation("file is not a decodable image")
	}

	var out image.Image
	switch kind {
	case domain.ImageAvatar:
		out = imaging.Fill(img, AvatarSize, AvatarSize, imaging.Center, imaging.Lanczos)
	case domain.ImagePhoto:
		out = imaging.Fit(img, PhotoMaxWidth, PhotoMaxHeight, imaging.Lanczos)
	default:
		return nil, domain.Validation("type must be avatar or photo")
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, out, imaging.JPEG, imaging.JPEGQuality(p.quality)); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}

	b := out.Bounds()
	return &ports.ProcessedImage{
		Data:        buf.Bytes(),
		ContentType: "image/jpeg",
		Ext:         "jpg",
		Width:       b.Dx(),
		Height:      b.Dy(),
	}, nil
}
