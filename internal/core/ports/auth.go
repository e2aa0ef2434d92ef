package ports

import (
	"context"

	"github.com/ncissues/civic-api/internal/core/domain"
)

// TokenClaims is the payload carried in the auth_token session cookie.
// ID and Type must resolve to an existing member, admin, or public user row.
type TokenClaims struct {
	ID          string
	Email       string
	Role        string
	Type        string // member, admin, or public
	FullName    string // public users only
	PhoneNumber string // public users only
}

// LoginResult pairs the signed token with the authenticated identity.
// Exactly one of Member, Admin, PublicUser is non-nil.
type LoginResult struct {
	Token      string
	Member     *domain.Member
	Admin      *domain.AdminUser
	PublicUser *domain.PublicUser
}

// MemberLoginInput identifies a member by email, or by voter registration
// number / NCID for the voter-record login flow.
type MemberLoginInput struct {
	Email       string
	VoterRegNum string
	NCID        string
	Password    string
}

// RegisterPublicInput creates the lightweight public-tier identity.
type RegisterPublicInput struct {
	FullName    string
	PhoneNumber string
	Email       string
}

// MeResult is the merged claims + profile view returned by CurrentUser.
type MeResult struct {
	Claims     TokenClaims
	Member     *domain.Member
	Admin      *domain.AdminUser
	PublicUser *domain.PublicUser
}

// AuthService implements login, public registration, and session resolution.
type AuthService interface {
	LoginMember(ctx context.Context, in MemberLoginInput) (*LoginResult, error)
	LoginAdmin(ctx context.Context, username, password string) (*LoginResult, error)
	RegisterPublic(ctx context.Context, in RegisterPublicInput) (*LoginResult, error)
	// CurrentUser resolves token claims against the identity stores; stale
	// claims (deleted rows) yield domain.ErrUnauthenticated.
	CurrentUser(ctx context.Context, claims TokenClaims) (*MeResult, error)
}
