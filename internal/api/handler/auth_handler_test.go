package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/ncissues/civic-api/internal/api/metrics"
	"github.com/ncissues/civic-api/internal/api/middleware"
	"github.com/ncissues/civic-api/internal/core/domain"
	"github.com/ncissues/civic-api/internal/core/ports"
)

type stubAuthService struct {
	loginMemberFn    func(ctx context.Context, in ports.MemberLoginInput) (*ports.LoginResult, error)
	loginAdminFn     func(ctx context.Context, username, password string) (*ports.LoginResult, error)
	registerPublicFn func(ctx context.Context, in ports.RegisterPublicInput) (*ports.LoginResult, error)
	currentUserFn    func(ctx context.Context, claims ports.TokenClaims) (*ports.MeResult, error)
}

func (s *stubAuthService) LoginMember(ctx context.Context, in ports.MemberLoginInput) (*ports.LoginResult, error) {
	return s.loginMemberFn(ctx, in)
}

func (s *stubAuthService) LoginAdmin(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	return s.loginAdminFn(ctx, username, password)
}

func (s *stubAuthService) RegisterPublic(ctx context.Context, in ports.RegisterPublicInput) (*ports.LoginResult, error) {
	return s.registerPublicFn(ctx, in)
}

func (s *stubAuthService) CurrentUser(ctx context.Context, claims ports.TokenClaims) (*ports.MeResult, error) {
	return s.currentUserFn(ctx, claims)
}

func newAuthTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func authCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	res := rec.Result()
	for _, cookie := range res.Cookies() {
		if cookie.Name == middleware.AuthCookieName {
			return cookie
		}
	}
	return nil
}

func TestAuthHandler_LoginMember_SetsCookie(t *testing.T) {
	stub := &stubAuthService{
		loginMemberFn: func(_ context.Context, in ports.MemberLoginInput) (*ports.LoginResult, error) {
			if in.Email != "jane@example.com" || in.Password != "secret" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &ports.LoginResult{
				Token:  "signed-token",
				Member: &domain.Member{ID: "m1", Email: in.Email},
			}, nil
		},
	}
	h := NewAuthHandler(stub, false, zerolog.Nop())

	c, rec := newAuthTestContext(t, http.MethodPost, "/api/auth/login",
		`{"email":"jane@example.com","password":"secret"}`)
	if err := h.LoginMember(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	cookie := authCookie(rec)
	if cookie == nil {
		t.Fatal("session cookie not set")
	}
	if cookie.Value != "signed-token" || !cookie.HttpOnly || cookie.Path != "/" {
		t.Fatalf("unexpected cookie: %+v", cookie)
	}
	if cookie.MaxAge != int(memberCookieTTL.Seconds()) {
		t.Fatalf("unexpected cookie lifetime: %d", cookie.MaxAge)
	}

	// The token never appears in the body.
	if strings.Contains(rec.Body.String(), "signed-token") {
		t.Fatal("token leaked into the response body")
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	member, ok := resp["member"].(map[string]any)
	if !ok || member["id"] != "m1" {
		t.Fatalf("member missing from response: %v", resp)
	}
}

func TestAuthHandler_LoginMember_BadCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginMemberFn: func(context.Context, ports.MemberLoginInput) (*ports.LoginResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub, false, zerolog.Nop())

	c, rec := newAuthTestContext(t, http.MethodPost, "/api/auth/login",
		`{"email":"jane@example.com","password":"wrong"}`)
	err := h.LoginMember(c)
	if err == nil {
		t.Fatal("expected an error")
	}
	if cookie := authCookie(rec); cookie != nil {
		t.Fatal("failed login must not set a cookie")
	}
}

func TestAuthHandler_RegisterPublic(t *testing.T) {
	stub := &stubAuthService{
		registerPublicFn: func(_ context.Context, in ports.RegisterPublicInput) (*ports.LoginResult, error) {
			return &ports.LoginResult{
				Token:      "public-token",
				PublicUser: &domain.PublicUser{ID: "p1", FullName: in.FullName},
			}, nil
		},
	}
	h := NewAuthHandler(stub, false, zerolog.Nop())
	logins := testutil.ToFloat64(metrics.LoginsTotal.WithLabelValues("public", "success"))

	c, rec := newAuthTestContext(t, http.MethodPost, "/api/auth/register-public",
		`{"full_name":"Sam Public","phone_number":"+19195550100"}`)
	if err := h.RegisterPublic(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	cookie := authCookie(rec)
	if cookie == nil {
		t.Fatal("session cookie not set")
	}
	// Public sessions are longer-lived than member sessions.
	if cookie.MaxAge != int(publicCookieTTL.Seconds()) {
		t.Fatalf("unexpected cookie lifetime: %d", cookie.MaxAge)
	}

	// Registration signs the user in, so it counts as a public login.
	if got := testutil.ToFloat64(metrics.LoginsTotal.WithLabelValues("public", "success")); got != logins+1 {
		t.Fatalf("expected public login counter to advance, got %v from %v", got, logins)
	}
}

func TestAuthHandler_RegisterPublic_Validation(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, false, zerolog.Nop())

	c, _ := newAuthTestContext(t, http.MethodPost, "/api/auth/register-public",
		`{"full_name":"Sam Public"}`)
	err := h.RegisterPublic(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing phone, got %v", err)
	}
}

func TestAuthHandler_Logout_ClearsCookie(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, false, zerolog.Nop())

	c, rec := newAuthTestContext(t, http.MethodPost, "/api/auth/logout", "")
	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	cookie := authCookie(rec)
	if cookie == nil {
		t.Fatal("logout must rewrite the cookie")
	}
	if cookie.Value != "" || cookie.MaxAge != -1 {
		t.Fatalf("cookie not cleared: %+v", cookie)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	stub := &stubAuthService{
		currentUserFn: func(_ context.Context, claims ports.TokenClaims) (*ports.MeResult, error) {
			return &ports.MeResult{
				Claims: claims,
				Member: &domain.Member{ID: claims.ID, FullName: "Jane Voter"},
			}, nil
		},
	}
	h := NewAuthHandler(stub, false, zerolog.Nop())

	c, rec := newAuthTestContext(t, http.MethodGet, "/api/auth/me", "")
	c.Set("auth_claims", ports.TokenClaims{ID: "m1", Type: domain.UserTypeMember})
	if err := h.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["type"] != domain.UserTypeMember {
		t.Fatalf("unexpected type: %v", resp["type"])
	}

	// Without claims the session is anonymous.
	c, _ = newAuthTestContext(t, http.MethodGet, "/api/auth/me", "")
	if err := h.Me(c); err != domain.ErrUnauthenticated {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}
