package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/laughline/booking-api/internal/core/domain"
)

type stubImageService struct {
	received []domain.ImageUpload
	err      error
	baseURL  string
}

func (s *stubImageService) Ingest(ctx context.Context, up domain.ImageUpload) (*domain.StoredImage, error) {
	imgs, err := s.IngestAll(ctx, []domain.ImageUpload{up})
	if err != nil {
		return nil, err
	}
	return imgs[0], nil
}

func (s *stubImageService) IngestAll(_ context.Context, uploads []domain.ImageUpload) ([]*domain.StoredImage, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.received = append(s.received, uploads...)
	out := make([]*domain.StoredImage, 0, len(uploads))
	for i, up := range uploads {
		path := "/" + string(up.Kind) + "/" + string(rune('a'+i)) + ".jpg"
		img := &domain.StoredImage{Key: path[1:], Path: path}
		if s.baseURL != "" {
			img.URL = s.baseURL + path
		}
		out = append(out, img)
	}
	return out, nil
}

type formFile struct {
	contentType string
	data        []byte
}

func multipartRequest(t *testing.T, kind string, files ...formFile) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if kind != "" {
		if err := w.WriteField("type", kind); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	for i, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="file"; filename="img`+string(rune('0'+i))+`"`)
		h.Set("Content-Type", f.contentType)
		part, err := w.CreatePart(h)
		if err != nil {
			t.Fatalf("create part: %v", err)
		}
		if _, err := part.Write(f.data); err != nil {
			t.Fatalf("write part: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req
}

func TestUploadHandler_Upload(t *testing.T) {
	e := newTestEcho()
	svc := &stubImageService{baseURL: "https://cdn.example.com"}
	h := NewUploadHandler(svc)

	rec := httptest.NewRecorder()
	req := multipartRequest(t, "photo",
		formFile{contentType: "image/png", data: []byte("one")},
		formFile{contentType: "image/jpeg", data: []byte("two")},
	)
	c := withSession(e.NewContext(req, rec), performer())

	if err := h.Upload(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(svc.received) != 2 {
		t.Fatalf("expected two uploads, got %d", len(svc.received))
	}
	if svc.received[0].ContentType != "image/png" || string(svc.received[1].Data) != "two" {
		t.Fatalf("unexpected uploads: %+v", svc.received)
	}
	if svc.received[0].Kind != domain.ImagePhoto {
		t.Fatalf("kind not forwarded: %s", svc.received[0].Kind)
	}

	var resp uploadResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.URL != "/photo/a.jpg" || len(resp.URLs) != 2 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.PublicURL != "https://cdn.example.com/photo/a.jpg" {
		t.Fatalf("unexpected public url: %q", resp.PublicURL)
	}
}

func TestUploadHandler_Rejects(t *testing.T) {
	cases := map[string]*http.Request{
		"missing type": multipartRequest(t, "", formFile{contentType: "image/png", data: []byte("x")}),
		"unknown type": multipartRequest(t, "banner", formFile{contentType: "image/png", data: []byte("x")}),
		"no file":      multipartRequest(t, "avatar"),
		"too large":    multipartRequest(t, "avatar", formFile{contentType: "image/png", data: make([]byte, domain.MaxImageBytes+1)}),
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			e := newTestEcho()
			svc := &stubImageService{}
			h := NewUploadHandler(svc)
			c := withSession(e.NewContext(req, httptest.NewRecorder()), performer())

			if err := h.Upload(c); domain.KindOf(err) != domain.KindValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
			if len(svc.received) != 0 {
				t.Fatalf("nothing may reach the pipeline")
			}
		})
	}
}

func TestUploadHandler_RequiresSessionAndPropagatesFailures(t *testing.T) {
	e := newTestEcho()
	svc := &stubImageService{}
	h := NewUploadHandler(svc)

	anon := e.NewContext(multipartRequest(t, "avatar", formFile{contentType: "image/png", data: []byte("x")}), httptest.NewRecorder())
	if err := h.Upload(anon); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	svc.err = domain.Dependency("store image", errors.New("bucket unreachable"))
	c := withSession(e.NewContext(multipartRequest(t, "avatar", formFile{contentType: "image/png", data: []byte("x")}), httptest.NewRecorder()), performer())
	if err := h.Upload(c); domain.KindOf(err) != domain.KindDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}
