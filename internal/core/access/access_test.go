package access

import (
	"testing"

	"github.com/ncissues/civic-api/internal/core/domain"
)

func TestHasAccess_Anonymous(t *testing.T) {
	if !HasAccess(nil, BrowseBills) {
		t.Fatalf("anonymous should browse bills")
	}
	if HasAccess(nil, TrackBills) {
		t.Fatalf("anonymous should not track bills")
	}
	if HasAccess(nil, ManageUsers) {
		t.Fatalf("anonymous should not manage users")
	}
}

func TestHasAccess_ActiveMember(t *testing.T) {
	u := &User{Type: domain.UserTypeMember, Tier: "member", SubscriptionStatus: "active"}
	if !HasAccess(u, TrackBills) {
		t.Fatalf("active member should track bills")
	}
	if HasAccess(u, SubmitIssues) {
		t.Fatalf("member should not submit issues")
	}
}

func TestHasAccess_InactiveSubscriptionDemoted(t *testing.T) {
	u := &User{Type: domain.UserTypeMember, Tier: "member", SubscriptionStatus: "cancelled"}
	if got := TierOf(u); got != TierPublic {
		t.Fatalf("expected demotion to public, got %s", got)
	}
	if HasAccess(u, TrackBills) {
		t.Fatalf("inactive subscription should not track bills")
	}
	if !HasAccess(u, BrowseBills) {
		t.Fatalf("demoted member should still browse bills")
	}
}

func TestHasAccess_Contributor(t *testing.T) {
	u := &User{Type: domain.UserTypeMember, Tier: "contributor", SubscriptionStatus: "active"}
	if !HasAccess(u, SubmitIssues) {
		t.Fatalf("contributor should submit issues")
	}
	if HasAccess(u, ManageContent) {
		t.Fatalf("contributor should not manage content")
	}
}

func TestHasAccess_Admin(t *testing.T) {
	u := &User{Type: domain.UserTypeAdmin}
	for _, f := range []Feature{BrowseBills, TrackBills, SubmitIssues, ManageUsers, ViewAnalytics} {
		if !HasAccess(u, f) {
			t.Fatalf("admin should have %s", f)
		}
	}
}

func TestTierOf_PublicUser(t *testing.T) {
	u := &User{Type: domain.UserTypePublic}
	if got := TierOf(u); got != TierPublic {
		t.Fatalf("expected public, got %s", got)
	}
}

func TestTierOf_ContributorFlagWithoutTier(t *testing.T) {
	u := &User{Type: domain.UserTypeMember, IsContributor: true, SubscriptionStatus: "active"}
	if got := TierOf(u); got != TierContributor {
		t.Fatalf("expected contributor, got %s", got)
	}
}

func TestNeedsUpgrade(t *testing.T) {
	check := NeedsUpgrade(nil, TrackBills)
	if !check.NeedsUpgrade {
		t.Fatalf("expected upgrade needed")
	}
	if check.RequiredTier != TierMember {
		t.Fatalf("expected member tier, got %s", check.RequiredTier)
	}
	if check.Message == "" {
		t.Fatalf("expected upgrade message")
	}

	admin := &User{Type: domain.UserTypeAdmin}
	if got := NeedsUpgrade(admin, ManageUsers); got.NeedsUpgrade {
		t.Fatalf("admin should not need upgrade")
	}
}

func TestDisplayName(t *testing.T) {
	cases := map[Tier]string{
		TierPublic:      "Public User",
		TierMember:      "Member",
		TierContributor: "Contributor",
		TierAdmin:       "Administrator",
	}
	for tier, want := range cases {
		if got := DisplayName(tier); got != want {
			t.Fatalf("DisplayName(%s) = %q, want %q", tier, got, want)
		}
	}
}
