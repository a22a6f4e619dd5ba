package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/accountsys/accounts-api/internal/api/middleware"
	"github.com/accountsys/accounts-api/internal/core/domain"
	"github.com/accountsys/accounts-api/internal/core/ports"
)

type stubAuthService struct {
	signupFn func(ctx context.Context, username, email, password string) (*ports.AuthResult, error)
	loginFn  func(ctx context.Context, email, password string) (*ports.AuthResult, error)
}

func (s *stubAuthService) Signup(ctx context.Context, username, email, password string) (*ports.AuthResult, error) {
	return s.signupFn(ctx, username, email, password)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	return s.loginFn(ctx, email, password)
}

func newAuthContext(t *testing.T, path, body string) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e, e.NewContext(req, rec), rec
}

func TestAuthHandler_Signup_Success(t *testing.T) {
	stub := &stubAuthService{
		signupFn: func(ctx context.Context, username, email, password string) (*ports.AuthResult, error) {
			if username != "alice" || email != "a@x.com" || password != "secret1" {
				t.Fatalf("unexpected args: %s %s %s", username, email, password)
			}
			return &ports.AuthResult{
				User: &domain.User{
					ID:           "user-1",
					Username:     username,
					Email:        email,
					PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
					Role:         domain.RoleUser,
				},
				Token:     "token123",
				ExpiresAt: time.Now().Add(3 * time.Hour),
			}, nil
		},
	}
	handler := NewAuthHandler(stub)

	_, c, rec := newAuthContext(t, "/api/auth/signup", `{"username":"alice","email":"a@x.com","password":"secret1"}`)
	if err := handler.Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token123" {
		t.Fatalf("expected token in response")
	}

	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if user["username"] != "alice" || user["role"] != domain.RoleUser {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	for _, forbidden := range []string{"password", "password_hash", "PasswordHash"} {
		if _, present := user[forbidden]; present {
			t.Fatalf("response must not carry %s", forbidden)
		}
	}
}

func TestAuthHandler_Signup_Conflict(t *testing.T) {
	stub := &stubAuthService{
		signupFn: func(ctx context.Context, username, email, password string) (*ports.AuthResult, error) {
			return nil, domain.ErrUserExists
		},
	}
	handler := NewAuthHandler(stub)

	_, c, rec := newAuthContext(t, "/api/auth/signup", `{"username":"bob","email":"a@x.com","password":"secret1"}`)
	_ = handler.Signup(c)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestAuthHandler_Signup_MissingFields(t *testing.T) {
	stub := &stubAuthService{
		signupFn: func(ctx context.Context, username, email, password string) (*ports.AuthResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub)

	_, c, rec := newAuthContext(t, "/api/auth/signup", `{"username":"bob"}`)
	_ = handler.Signup(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Signup_InvalidPayload(t *testing.T) {
	stub := &stubAuthService{
		signupFn: func(ctx context.Context, username, email, password string) (*ports.AuthResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub)

	_, c, rec := newAuthContext(t, "/api/auth/signup", "not-json")
	_ = handler.Signup(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	expiresAt := time.Now().Add(3 * time.Hour)
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*ports.AuthResult, error) {
			if email != "a@x.com" || password != "secret1" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return &ports.AuthResult{
				User:      &domain.User{ID: "user-1", Username: "alice", Email: email, Role: domain.RoleUser},
				Token:     "token123",
				ExpiresAt: expiresAt,
			}, nil
		},
	}
	handler := NewAuthHandler(stub)

	_, c, rec := newAuthContext(t, "/api/auth/login", `{"email":"a@x.com","password":"secret1"}`)
	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var cookie *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.AuthCookieName {
			cookie = ck
		}
	}
	if cookie == nil {
		t.Fatalf("expected %s cookie to be set", middleware.AuthCookieName)
	}
	if cookie.Value != "token123" {
		t.Fatalf("cookie must carry the token")
	}
	if cookie.Expires.Unix() != expiresAt.Unix() {
		t.Fatalf("cookie expiry %v, want %v", cookie.Expires, expiresAt)
	}
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*ports.AuthResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(stub)

	_, c, rec := newAuthContext(t, "/api/auth/login", `{"email":"a@x.com","password":"wrong"}`)
	_ = handler.Login(c)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_UnknownEmail(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*ports.AuthResult, error) {
			return nil, domain.ErrUserNotFound
		},
	}
	handler := NewAuthHandler(stub)

	_, c, rec := newAuthContext(t, "/api/auth/login", `{"email":"ghost@x.com","password":"secret1"}`)
	_ = handler.Login(c)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAuthHandler_Logout_ClearsCookie(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{})

	_, c, rec := newAuthContext(t, "/api/auth/logout", "")
	if err := handler.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var cookie *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.AuthCookieName {
			cookie = ck
		}
	}
	if cookie == nil {
		t.Fatalf("expected %s cookie in response", middleware.AuthCookieName)
	}
	if cookie.MaxAge >= 0 || cookie.Value != "" {
		t.Fatalf("cookie must be cleared, got %+v", cookie)
	}
}
