package handler

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/laughline/booking-api/internal/api/metrics"
	"github.com/laughline/booking-api/internal/core/domain"
	"github.com/laughline/booking-api/internal/core/ports"
)

// UploadHandler feeds multipart files into the image pipeline.
type UploadHandler struct {
	images ports.ImageService
}

func NewUploadHandler(images ports.ImageService) *UploadHandler {
	return &UploadHandler{images: images}
}

type uploadResponse struct {
	URL        string   `json:"url"`
	URLs       []string `json:"urls"`
	PublicURL  string   `json:"publicUrl,omitempty"`
	PublicURLs []string `json:"publicUrls,omitempty"`
}

// Upload stores one or more images and returns their storage paths.
//
// @Summary      Upload images
// @Tags         upload
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file    true  "Image file (repeat for several)"
// @Param        type  formData  string  true  "avatar or photo"
// @Success      200   {object}  uploadResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /upload [post]
func (h *UploadHandler) Upload(c echo.Context) error {
	if _, err := ctxSession(c); err != nil {
		return err
	}

	kind, ok := domain.ParseImageKind(c.FormValue("type"))
	if !ok {
		return domain.Validation("type must be avatar or photo")
	}

	form, err := c.MultipartForm()
	if err != nil {
		return domain.Validation("file is required")
	}
	files := form.File["file"]
	if len(files) == 0 {
		return domain.Validation("file is required")
	}

	uploads := make([]domain.ImageUpload, 0, len(files))
	for _, fh := range files {
		up, err := readUpload(fh, kind)
		if err != nil {
			return err
		}
		uploads = append(uploads, up)
	}

	start := time.Now()
	stored, err := h.images.IngestAll(c.Request().Context(), uploads)
	if err != nil {
		return err
	}
	metrics.ImageIngestDuration.WithLabelValues(string(kind)).Observe(time.Since(start).Seconds())
	metrics.ImagesIngestedTotal.WithLabelValues(string(kind)).Add(float64(len(stored)))

	resp := uploadResponse{URLs: make([]string, 0, len(stored))}
	for _, img := range stored {
		resp.URLs = append(resp.URLs, img.Path)
		if img.URL != "" {
			resp.PublicURLs = append(resp.PublicURLs, img.URL)
		}
	}
	resp.URL = resp.URLs[0]
	if len(resp.PublicURLs) > 0 {
		resp.PublicURL = resp.PublicURLs[0]
	}
	return c.JSON(http.StatusOK, resp)
}

// readUpload rejects oversize parts from their header before reading them.
func readUpload(fh *multipart.FileHeader, kind domain.ImageKind) (domain.ImageUpload, error) {
	if fh.Size > domain.MaxImageBytes {
		return domain.ImageUpload{}, domain.Validation("file exceeds the %d MiB limit", domain.MaxImageBytes>>20)
	}

	f, err := fh.Open()
	if err != nil {
		return domain.ImageUpload{}, domain.Validation("file is unreadable")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, domain.MaxImageBytes+1))
	if err != nil {
		return domain.ImageUpload{}, domain.Dependency("read upload", fmt.Errorf("%s: %w", fh.Filename, err))
	}

	return domain.ImageUpload{
		Data:        data,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Kind:        kind,
	}, nil
}
