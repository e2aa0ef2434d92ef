package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/ncissues/civic-api/internal/core/domain"
	"github.com/ncissues/civic-api/internal/core/ports"
)

// recordingMemberRepo captures the filter the service hands to List.
type recordingMemberRepo struct {
	*stubMemberRepo
	lastFilter ports.ListMembersFilter
}

func (r *recordingMemberRepo) List(ctx context.Context, filter ports.ListMembersFilter) ([]*domain.Member, int64, error) {
	r.lastFilter = filter
	return r.stubMemberRepo.List(ctx, filter)
}

func TestMemberService_Lookup(t *testing.T) {
	repo := newStubMemberRepo()
	repo.add(&domain.Member{ID: "m1", VoterRegNum: "100200", NCID: "AB1234", Email: "jane@example.com"})
	svc := NewMemberService(repo, zerolog.Nop())

	cases := []struct {
		name string
		in   ports.MemberLookup
	}{
		{"voter_reg_num", ports.MemberLookup{VoterRegNum: "100200"}},
		{"ncid", ports.MemberLookup{NCID: "AB1234"}},
		{"email", ports.MemberLookup{Email: "jane@example.com"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			member, err := svc.Lookup(context.Background(), tc.in)
			if err != nil {
				t.Fatalf("lookup failed: %v", err)
			}
			if member.ID != "m1" {
				t.Errorf("got member %s, want m1", member.ID)
			}
		})
	}

	if _, err := svc.Lookup(context.Background(), ports.MemberLookup{}); !errors.Is(err, domain.ErrMemberNotFound) {
		t.Fatalf("empty lookup should fail with ErrMemberNotFound, got %v", err)
	}
	if _, err := svc.Lookup(context.Background(), ports.MemberLookup{NCID: "nope"}); !errors.Is(err, domain.ErrMemberNotFound) {
		t.Fatalf("unknown ncid should fail with ErrMemberNotFound, got %v", err)
	}
}

func TestMemberService_Claim(t *testing.T) {
	repo := newStubMemberRepo()
	repo.add(&domain.Member{ID: "m1", VoterRegNum: "100200", NCID: "AB1234"})
	svc := NewMemberService(repo, zerolog.Nop())

	member, err := svc.Claim(context.Background(), ports.MemberClaimInput{
		VoterRegNum: "100200",
		Email:       "jane@example.com",
		Phone:       "+19195550100",
		Password:    "correct horse",
	})
	if err != nil {
		t.Fatalf("claim failed: %v", err)
	}
	if member.Email != "jane@example.com" || member.Phone != "+19195550100" {
		t.Fatalf("contact not updated: %+v", member)
	}
	if member.PasswordHash == "" || member.PasswordHash == "correct horse" {
		t.Fatalf("password must be stored hashed, got %q", member.PasswordHash)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte("correct horse")); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}

	// NCID works as the identifier too.
	if _, err := svc.Claim(context.Background(), ports.MemberClaimInput{NCID: "AB1234", Email: "x@example.com"}); err != nil {
		t.Fatalf("claim by ncid failed: %v", err)
	}

	// Without a voter identifier there is nothing to claim.
	if _, err := svc.Claim(context.Background(), ports.MemberClaimInput{Email: "x@example.com"}); !errors.Is(err, domain.ErrMemberNotFound) {
		t.Fatalf("expected ErrMemberNotFound, got %v", err)
	}
}

func TestMemberService_ListMembers_PaginationDefaults(t *testing.T) {
	repo := &recordingMemberRepo{stubMemberRepo: newStubMemberRepo()}
	for i := 0; i < 5; i++ {
		repo.add(&domain.Member{ID: string(rune('a' + i))})
	}
	svc := NewMemberService(repo, zerolog.Nop())

	result, err := svc.ListMembers(context.Background(), ports.ListMembersFilter{Page: 0, Limit: 0})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if repo.lastFilter.Page != 1 || repo.lastFilter.Limit != defaultMemberPageLimit {
		t.Fatalf("defaults not applied: page=%d limit=%d", repo.lastFilter.Page, repo.lastFilter.Limit)
	}
	if result.Page != 1 || result.Limit != defaultMemberPageLimit {
		t.Fatalf("result echoes wrong paging: %+v", result)
	}
	if result.Total != 5 || result.TotalPages != 1 {
		t.Fatalf("got total=%d pages=%d, want 5 and 1", result.Total, result.TotalPages)
	}

	if _, err := svc.ListMembers(context.Background(), ports.ListMembersFilter{Limit: 500}); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if repo.lastFilter.Limit != maxPageLimit {
		t.Fatalf("limit not capped: %d", repo.lastFilter.Limit)
	}
}

func TestMemberService_ListMembers_SecondPage(t *testing.T) {
	repo := newStubMemberRepo()
	for i := 0; i < 45; i++ {
		repo.add(&domain.Member{ID: fmt.Sprintf("m%02d", i)})
	}
	svc := NewMemberService(repo, zerolog.Nop())

	result, err := svc.ListMembers(context.Background(), ports.ListMembersFilter{Page: 2, Limit: 20})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(result.Members) != 20 {
		t.Fatalf("got %d rows on page 2, want 20", len(result.Members))
	}
	if result.Total != 45 || result.TotalPages != 3 {
		t.Fatalf("got total=%d pages=%d, want 45 and 3", result.Total, result.TotalPages)
	}
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total int64
		limit int
		want  int
	}{
		{0, 20, 0},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{45, 20, 3},
		{45, 0, 0},
	}
	for _, tc := range cases {
		if got := totalPages(tc.total, tc.limit); got != tc.want {
			t.Errorf("totalPages(%d, %d) = %d, want %d", tc.total, tc.limit, got, tc.want)
		}
	}
}

func TestMemberService_Stats_NilPartyMap(t *testing.T) {
	repo := newStubMemberRepo()
	repo.add(&domain.Member{ID: "m1"})
	svc := NewMemberService(repo, zerolog.Nop())

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.TotalMembers != 1 {
		t.Errorf("got total %d, want 1", stats.TotalMembers)
	}
	if stats.PartyBreakdown == nil {
		t.Errorf("party breakdown should never be nil")
	}
}
