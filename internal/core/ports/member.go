package ports

import (
	"context"

	"github.com/ncissues/civic-api/internal/core/domain"
)

// MemberRepository defines persistence for citizen member records.
type MemberRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Member, error)
	FindByEmail(ctx context.Context, email string) (*domain.Member, error)
	FindByVoterRegNum(ctx context.Context, voterRegNum string) (*domain.Member, error)
	FindByNCID(ctx context.Context, ncid string) (*domain.Member, error)
	FindByPhone(ctx context.Context, phone string) (*domain.Member, error)
	UpdateLastLogin(ctx context.Context, id string) error
	// UpdateContact applies the non-zero fields of update and stamps
	// account_updated_at. Changing email or phone resets its verified flag.
	UpdateContact(ctx context.Context, id string, update MemberContactUpdate) (*domain.Member, error)
	// List returns a page of members matching filter and the total count.
	List(ctx context.Context, filter ListMembersFilter) ([]*domain.Member, int64, error)
	Stats(ctx context.Context) (*MemberStats, error)
}

// MemberContactUpdate carries the self-service claim fields. Zero values are
// left untouched.
type MemberContactUpdate struct {
	Email        string
	Phone        string
	PasswordHash string
}

// ListMembersFilter carries admin list query parameters.
type ListMembersFilter struct {
	Search   string // substring match on names, email, voter_reg_num
	Party    string
	District string // matches either senate or house district
	Page     int    // 1-based
	Limit    int
}

// MemberStats is the admin dashboard aggregate.
type MemberStats struct {
	TotalMembers        int64
	MembersWithEmail    int64
	MembersWithPassword int64
	PartyBreakdown      map[string]int64
	SenateDistricts     int
	HouseDistricts      int
}

// AdminRepository defines persistence for back-office admin identities.
type AdminRepository interface {
	FindByID(ctx context.Context, id string) (*domain.AdminUser, error)
	// FindActiveByUsername only matches rows with is_active set.
	FindActiveByUsername(ctx context.Context, username string) (*domain.AdminUser, error)
	UpdateLastLogin(ctx context.Context, id string) error
}

// PublicUserRepository defines persistence for the public-tier identity.
// Create relies on a unique phone_number index; a duplicate insert returns
// domain.ErrPhoneExists.
type PublicUserRepository interface {
	Create(ctx context.Context, u *domain.PublicUser) (*domain.PublicUser, error)
	FindByID(ctx context.Context, id string) (*domain.PublicUser, error)
}

// MemberLookup selects exactly one identifier for GET /api/members.
type MemberLookup struct {
	VoterRegNum string
	NCID        string
	Email       string
}

// MemberClaimInput is the self-service account claim payload.
type MemberClaimInput struct {
	VoterRegNum string
	NCID        string
	Email       string
	Phone       string
	Password    string
}

// MemberService covers member lookup, self-service claim, and admin views.
type MemberService interface {
	Lookup(ctx context.Context, in MemberLookup) (*domain.Member, error)
	Claim(ctx context.Context, in MemberClaimInput) (*domain.Member, error)
	ListMembers(ctx context.Context, filter ListMembersFilter) (*ListMembersResult, error)
	Stats(ctx context.Context) (*MemberStats, error)
}

// ListMembersResult is the paginated admin member list.
type ListMembersResult struct {
	Members    []*domain.Member
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}
