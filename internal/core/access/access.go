// Package access implements tier-based feature gating. It is a static lookup
// table, not a policy engine: each gated feature maps to the set of tiers
// allowed to use it, and a user's tier is derived from its identity type and
// subscription status.
package access

import "github.com/ncissues/civic-api/internal/core/domain"

// Tier orders the four access levels from least to most privileged.
type Tier string

const (
	TierPublic      Tier = "public"
	TierMember      Tier = "member"
	TierContributor Tier = "contributor"
	TierAdmin       Tier = "admin"
)

// Feature names every gated capability in the application.
type Feature string

const (
	// Free features, open to all tiers.
	BrowseBills       Feature = "browseBills"
	ViewLegislators   Feature = "viewLegislators"
	SearchLegislation Feature = "searchLegislation"
	ReadIssues        Feature = "readIssues"

	// Member features (paid).
	TrackBills            Feature = "trackBills"
	EmailNotifications    Feature = "emailNotifications"
	CommentOnIssues       Feature = "commentOnIssues"
	PersonalizedDashboard Feature = "personalizedDashboard"

	// Contributor features.
	SubmitIssues   Feature = "submitIssues"
	IssueAnalytics Feature = "issueAnalytics"

	// Admin features.
	ManageUsers   Feature = "manageUsers"
	ManageContent Feature = "manageContent"
	ViewAnalytics Feature = "viewAnalytics"
)

// featureTiers lists, per feature, the tiers permitted to use it. The first
// entry is always the lowest qualifying tier.
var featureTiers = map[Feature][]Tier{
	BrowseBills:       {TierPublic, TierMember, TierContributor, TierAdmin},
	ViewLegislators:   {TierPublic, TierMember, TierContributor, TierAdmin},
	SearchLegislation: {TierPublic, TierMember, TierContributor, TierAdmin},
	ReadIssues:        {TierPublic, TierMember, TierContributor, TierAdmin},

	TrackBills:            {TierMember, TierContributor, TierAdmin},
	EmailNotifications:    {TierMember, TierContributor, TierAdmin},
	CommentOnIssues:       {TierMember, TierContributor, TierAdmin},
	PersonalizedDashboard: {TierMember, TierContributor, TierAdmin},

	SubmitIssues:   {TierContributor, TierAdmin},
	IssueAnalytics: {TierContributor, TierAdmin},

	ManageUsers:   {TierAdmin},
	ManageContent: {TierAdmin},
	ViewAnalytics: {TierAdmin},
}

// User is the minimal identity view the gate needs. It is satisfied by the
// session claims plus whatever profile fields the caller has loaded.
type User struct {
	Type               string // member, admin, or public
	Tier               string // member-declared tier
	SubscriptionStatus string
	IsContributor      bool
}

// subscriptionActive is the only status that keeps a paid tier in force.
const subscriptionActive = "active"

// TierOf derives the effective tier for a user. Paid tiers with an inactive
// subscription are demoted to public.
func TierOf(u *User) Tier {
	if u == nil {
		return TierPublic
	}
	switch u.Type {
	case domain.UserTypePublic:
		return TierPublic
	case domain.UserTypeAdmin:
		return TierAdmin
	}

	declared := Tier(u.Tier)
	if declared == "" && u.IsContributor {
		declared = TierContributor
	}
	if declared == "" || declared == TierPublic {
		return TierPublic
	}
	if u.SubscriptionStatus != subscriptionActive {
		return TierPublic
	}
	return declared
}

// HasAccess reports whether the user (nil means anonymous) may use a feature.
func HasAccess(u *User, f Feature) bool {
	tier := TierOf(u)
	for _, allowed := range featureTiers[f] {
		if allowed == tier {
			return true
		}
	}
	return false
}

// UpgradeCheck is the result of NeedsUpgrade.
type UpgradeCheck struct {
	NeedsUpgrade bool
	RequiredTier Tier
	Message      string
}

var upgradeMessages = map[Tier]string{
	TierMember:      "This feature requires a Member subscription. Upgrade to track bills, get notifications, and engage with the community.",
	TierContributor: "This feature requires a Contributor subscription. Upgrade to submit issues and access advanced features.",
	TierAdmin:       "This feature is only available to administrators.",
}

// NeedsUpgrade reports whether the user lacks access to a feature and, when
// they do, the lowest qualifying tier and a human-readable upgrade message.
func NeedsUpgrade(u *User, f Feature) UpgradeCheck {
	if HasAccess(u, f) {
		return UpgradeCheck{}
	}

	tiers := featureTiers[f]
	required := TierAdmin
	if len(tiers) > 0 {
		required = tiers[0]
	}

	msg, ok := upgradeMessages[required]
	if !ok {
		msg = "This feature requires an upgrade."
	}
	return UpgradeCheck{NeedsUpgrade: true, RequiredTier: required, Message: msg}
}

// DisplayName returns the human-readable tier label.
func DisplayName(t Tier) string {
	switch t {
	case TierMember:
		return "Member"
	case TierContributor:
		return "Contributor"
	case TierAdmin:
		return "Administrator"
	default:
		return "Public User"
	}
}
