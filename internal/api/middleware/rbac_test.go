package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/ncissues/civic-api/internal/core/access"
	"github.com/ncissues/civic-api/internal/core/domain"
	"github.com/ncissues/civic-api/internal/core/ports"
)

func contextWithClaims(claims ports.TokenClaims) echo.Context {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c, _ := newTestContext(req)
	c.Set(claimsContextKey, claims)
	return c
}

func wantHTTPStatus(t *testing.T, err error, code int) {
	t.Helper()
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != code {
		t.Fatalf("expected HTTP %d, got %v", code, err)
	}
}

func TestRequireType(t *testing.T) {
	mw := RequireType(domain.UserTypeMember, domain.UserTypeAdmin)

	if err := mw(okHandler)(contextWithClaims(ports.TokenClaims{ID: "m1", Type: domain.UserTypeMember})); err != nil {
		t.Fatalf("member rejected: %v", err)
	}

	err := mw(okHandler)(contextWithClaims(ports.TokenClaims{ID: "p1", Type: domain.UserTypePublic}))
	wantHTTPStatus(t, err, http.StatusForbidden)

	// No claims at all means Auth never ran or the session is anonymous.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c, _ := newTestContext(req)
	wantHTTPStatus(t, mw(okHandler)(c), http.StatusUnauthorized)
}

func TestRequireAdmin(t *testing.T) {
	mw := RequireAdmin()

	if err := mw(okHandler)(contextWithClaims(ports.TokenClaims{ID: "a1", Type: domain.UserTypeAdmin, Role: domain.RoleAdmin})); err != nil {
		t.Fatalf("admin rejected: %v", err)
	}
	err := mw(okHandler)(contextWithClaims(ports.TokenClaims{ID: "m1", Type: domain.UserTypeMember}))
	wantHTTPStatus(t, err, http.StatusForbidden)

	// Role narrowing.
	super := RequireAdmin(domain.RoleSuperAdmin)
	err = super(okHandler)(contextWithClaims(ports.TokenClaims{ID: "a1", Type: domain.UserTypeAdmin, Role: domain.RoleAdmin}))
	wantHTTPStatus(t, err, http.StatusForbidden)
	if err := super(okHandler)(contextWithClaims(ports.TokenClaims{ID: "a2", Type: domain.UserTypeAdmin, Role: domain.RoleSuperAdmin})); err != nil {
		t.Fatalf("super admin rejected: %v", err)
	}
}

type fixedMemberRepo struct {
	ports.MemberRepository
	members map[string]*domain.Member
}

func (r *fixedMemberRepo) FindByID(_ context.Context, id string) (*domain.Member, error) {
	if m, ok := r.members[id]; ok {
		clone := *m
		return &clone, nil
	}
	return nil, domain.ErrMemberNotFound
}

func TestRequireFeature(t *testing.T) {
	members := &fixedMemberRepo{members: map[string]*domain.Member{
		"paid":   {ID: "paid", Tier: "member", SubscriptionStatus: "active"},
		"lapsed": {ID: "lapsed", Tier: "member", SubscriptionStatus: "canceled"},
		"free":   {ID: "free"},
	}}
	mw := RequireFeature(access.TrackBills, members)

	if err := mw(okHandler)(contextWithClaims(ports.TokenClaims{ID: "paid", Type: domain.UserTypeMember})); err != nil {
		t.Fatalf("active member rejected: %v", err)
	}

	// Admins pass every gate without a member lookup.
	if err := mw(okHandler)(contextWithClaims(ports.TokenClaims{ID: "a1", Type: domain.UserTypeAdmin})); err != nil {
		t.Fatalf("admin rejected: %v", err)
	}

	for _, id := range []string{"lapsed", "free"} {
		err := mw(okHandler)(contextWithClaims(ports.TokenClaims{ID: id, Type: domain.UserTypeMember}))
		if !errors.Is(err, domain.ErrUpgradeRequired) {
			t.Fatalf("member %q should need an upgrade, got %v", id, err)
		}
	}

	// Public identities never reach paid features.
	err := mw(okHandler)(contextWithClaims(ports.TokenClaims{ID: "p1", Type: domain.UserTypePublic}))
	if !errors.Is(err, domain.ErrUpgradeRequired) {
		t.Fatalf("public identity should need an upgrade, got %v", err)
	}

	// A token for a deleted member collapses to 401.
	err = mw(okHandler)(contextWithClaims(ports.TokenClaims{ID: "ghost", Type: domain.UserTypeMember}))
	wantHTTPStatus(t, err, http.StatusUnauthorized)

	// No claims at all.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c, _ := newTestContext(req)
	wantHTTPStatus(t, mw(okHandler)(c), http.StatusUnauthorized)
}
