package service

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/ncissues/civic-api/internal/core/domain"
	"github.com/ncissues/civic-api/internal/core/ports"
)

const (
	defaultMemberPageLimit = 50
	maxPageLimit           = 100
)

// MemberService covers member lookup, the self-service account claim, and
// the admin list and stats views.
type MemberService struct {
	repo ports.MemberRepository
	log  zerolog.Logger
}

func NewMemberService(repo ports.MemberRepository, log zerolog.Logger) *MemberService {
	return &MemberService{repo: repo, log: log}
}

// Lookup finds a member by exactly one identifier.
func (s *MemberService) Lookup(ctx context.Context, in ports.MemberLookup) (*domain.Member, error) {
	switch {
	case in.VoterRegNum != "":
		return s.repo.FindByVoterRegNum(ctx, in.VoterRegNum)
	case in.NCID != "":
		return s.repo.FindByNCID(ctx, in.NCID)
	case in.Email != "":
		return s.repo.FindByEmail(ctx, in.Email)
	}
	return nil, domain.ErrMemberNotFound
}

// Claim lets a member identified by voter record set email, phone, and
// password. The password is hashed here; the repository never sees plaintext.
func (s *MemberService) Claim(ctx context.Context, in ports.MemberClaimInput) (*domain.Member, error) {
	var (
		member *domain.Member
		err    error
	)
	switch {
	case in.VoterRegNum != "":
		member, err = s.repo.FindByVoterRegNum(ctx, in.VoterRegNum)
	case in.NCID != "":
		member, err = s.repo.FindByNCID(ctx, in.NCID)
	default:
		return nil, domain.ErrMemberNotFound
	}
	if err != nil {
		return nil, err
	}

	update := ports.MemberContactUpdate{Email: in.Email, Phone: in.Phone}
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		update.PasswordHash = string(hash)
	}

	updated, err := s.repo.UpdateContact(ctx, member.ID, update)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("member_id", member.ID).Msg("member account updated")
	return updated, nil
}

// ListMembers returns the paginated admin view.
func (s *MemberService) ListMembers(ctx context.Context, filter ports.ListMembersFilter) (*ports.ListMembersResult, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultMemberPageLimit
	}
	if filter.Limit > maxPageLimit {
		filter.Limit = maxPageLimit
	}

	members, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &ports.ListMembersResult{
		Members:    members,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

// Stats returns the admin dashboard aggregate.
func (s *MemberService) Stats(ctx context.Context) (*ports.MemberStats, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, err
	}
	if stats.PartyBreakdown == nil {
		stats.PartyBreakdown = map[string]int64{}
	}
	return stats, nil
}

// totalPages is ceil(total/limit) without floating point.
func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
