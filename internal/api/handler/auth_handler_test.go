package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/laughline/booking-api/internal/api/middleware"
	"github.com/laughline/booking-api/internal/core/domain"
	"github.com/laughline/booking-api/internal/core/ports"
)

type stubAuthService struct {
	registerFn   func(ctx context.Context, in ports.RegisterInput) (*domain.Account, error)
	loginFn      func(ctx context.Context, email, password string) (string, *domain.Session, *domain.Account, error)
	updateRoleFn func(ctx context.Context, sess *domain.Session, role string) (string, *domain.Session, *domain.Account, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.Account, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Authenticate(ctx context.Context, email, password string) (*domain.Account, error) {
	_, _, acc, err := s.loginFn(ctx, email, password)
	return acc, err
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.Session, *domain.Account, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) UpdateRole(ctx context.Context, sess *domain.Session, role string) (string, *domain.Session, *domain.Account, error) {
	return s.updateRoleFn(ctx, sess, role)
}

var testCookie = SessionCookie{Name: "session_token"}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func withSession(c echo.Context, sess *domain.Session) echo.Context {
	c.Set(middleware.SessionKey, sess)
	return c
}

func TestAuthHandler_Register_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*domain.Account, error) {
			if in.Name != "Alice" || in.Email != "alice@example.com" || in.Role != "performer" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.Account{ID: "acc-1", Name: in.Name, Email: in.Email, Role: domain.RolePerformer, PasswordHash: "hash"}, nil
		},
	}
	h := NewAuthHandler(stub, testCookie)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/auth/register",
		`{"name":" Alice ","email":" alice@example.com","password":"secret","role":"performer"}`), rec)

	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	user := resp["user"]
	if user["id"] != "acc-1" || user["role"] != "performer" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	if strings.Contains(rec.Body.String(), "hash") {
		t.Fatalf("password hash leaked: %s", rec.Body.String())
	}
}

func TestAuthHandler_Register_Validation(t *testing.T) {
	bodies := map[string]string{
		"short name":     `{"name":"A","email":"a@example.com","password":"secret","role":"performer"}`,
		"bad email":      `{"name":"Alice","email":"nope","password":"secret","role":"performer"}`,
		"short password": `{"name":"Alice","email":"a@example.com","password":"12345","role":"performer"}`,
		"missing role":   `{"name":"Alice","email":"a@example.com","password":"secret"}`,
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			e := newTestEcho()
			stub := &stubAuthService{
				registerFn: func(ctx context.Context, in ports.RegisterInput) (*domain.Account, error) {
					t.Fatalf("should not be called")
					return nil, nil
				},
			}
			h := NewAuthHandler(stub, testCookie)
			c := e.NewContext(jsonRequest(http.MethodPost, "/auth/register", body), httptest.NewRecorder())

			if err := h.Register(c); domain.KindOf(err) != domain.KindValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	e := newTestEcho()
	h := NewAuthHandler(&stubAuthService{}, testCookie)
	c := e.NewContext(jsonRequest(http.MethodPost, "/auth/register", "not-json"), httptest.NewRecorder())

	err := h.Register(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Register_EmailTaken(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*domain.Account, error) {
			return nil, domain.ErrEmailTaken
		},
	}
	h := NewAuthHandler(stub, testCookie)
	c := e.NewContext(jsonRequest(http.MethodPost, "/auth/register",
		`{"name":"Bob","email":"bob@example.com","password":"secret","role":"organizer"}`), httptest.NewRecorder())

	if err := h.Register(c); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthHandler_Login_SetsCookie(t *testing.T) {
	e := newTestEcho()
	expires := time.Now().Add(time.Hour)
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.Session, *domain.Account, error) {
			if email != "alice@example.com" || password != "secret" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return "token123", &domain.Session{AccountID: "acc-1", ExpiresAt: expires},
				&domain.Account{ID: "acc-1", Name: "Alice", Role: domain.RolePerformer}, nil
		},
	}
	h := NewAuthHandler(stub, testCookie)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/auth/login", `{"email":"alice@example.com","password":"secret"}`), rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token123" {
		t.Fatalf("expected token, got %v", resp["token"])
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}
	ck := cookies[0]
	if ck.Name != "session_token" || ck.Value != "token123" || !ck.HttpOnly || ck.Path != "/" {
		t.Fatalf("unexpected cookie: %+v", ck)
	}
	if ck.MaxAge <= 0 {
		t.Fatalf("expected positive max-age, got %d", ck.MaxAge)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.Session, *domain.Account, error) {
			return "", nil, nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub, testCookie)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/auth/login", `{"email":"alice@example.com","password":"bad"}`), rec)

	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("no cookie may be set on failure")
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	e := newTestEcho()
	h := NewAuthHandler(&stubAuthService{}, testCookie)
	c := e.NewContext(jsonRequest(http.MethodPost, "/auth/login", `{"email":"alice@example.com"}`), httptest.NewRecorder())

	if err := h.Login(c); domain.KindOf(err) != domain.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAuthHandler_Logout_ClearsCookie(t *testing.T) {
	e := newTestEcho()
	h := NewAuthHandler(&stubAuthService{}, testCookie)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/auth/logout", nil), rec)

	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Value != "" || cookies[0].MaxAge >= 0 {
		t.Fatalf("expected an expiring empty cookie, got %+v", cookies)
	}
}

func TestAuthHandler_Session(t *testing.T) {
	e := newTestEcho()
	h := NewAuthHandler(&stubAuthService{}, testCookie)

	rec := httptest.NewRecorder()
	c := withSession(e.NewContext(httptest.NewRequest(http.MethodGet, "/auth/session", nil), rec),
		&domain.Session{AccountID: "acc-1", Role: domain.RoleOrganizer, Name: "Olga"})

	if err := h.Session(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != "acc-1" || resp["role"] != "organizer" {
		t.Fatalf("unexpected session payload: %+v", resp)
	}

	anon := e.NewContext(httptest.NewRequest(http.MethodGet, "/auth/session", nil), httptest.NewRecorder())
	if err := h.Session(anon); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAuthHandler_UpdateRole(t *testing.T) {
	e := newTestEcho()
	expires := time.Now().Add(90 * time.Minute).UTC().Truncate(time.Second)
	stub := &stubAuthService{
		updateRoleFn: func(ctx context.Context, sess *domain.Session, role string) (string, *domain.Session, *domain.Account, error) {
			if sess.AccountID != "acc-1" || role != "organizer" {
				t.Fatalf("unexpected args: %+v %s", sess, role)
			}
			fresh := &domain.Session{AccountID: "acc-1", Role: domain.RoleOrganizer, ExpiresAt: expires}
			return "fresh", fresh, &domain.Account{ID: "acc-1", Role: domain.RoleOrganizer}, nil
		},
	}
	h := NewAuthHandler(stub, testCookie)

	rec := httptest.NewRecorder()
	c := withSession(e.NewContext(jsonRequest(http.MethodPut, "/user/role", `{"role":"organizer"}`), rec),
		&domain.Session{AccountID: "acc-1", Role: domain.RolePerformer})

	if err := h.UpdateRole(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["role"] != "organizer" || resp["token"] != "fresh" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Value != "fresh" {
		t.Fatalf("expected refreshed session cookie, got %+v", cookies)
	}
	if !cookies[0].Expires.Equal(expires) {
		t.Fatalf("cookie expiry %s must match the token expiry %s", cookies[0].Expires, expires)
	}
	if cookies[0].MaxAge < 89*60 || cookies[0].MaxAge > 90*60 {
		t.Fatalf("unexpected max-age %d", cookies[0].MaxAge)
	}
}
