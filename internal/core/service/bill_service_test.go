package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ncissues/civic-api/internal/core/domain"
	"github.com/ncissues/civic-api/internal/core/ports"
)

type stubBillRepo struct {
	bills   map[string]*domain.Bill
	history map[string][]*domain.BillAction
	votes   map[string][]*domain.BillVote

	lastListFilter  ports.ListBillsFilter
	lastPagedFilter ports.AdminListBillsFilter
}

func newStubBillRepo() *stubBillRepo {
	return &stubBillRepo{
		bills:   make(map[string]*domain.Bill),
		history: make(map[string][]*domain.BillAction),
		votes:   make(map[string][]*domain.BillVote),
	}
}

func (r *stubBillRepo) Create(_ context.Context, b *domain.Bill) (*domain.Bill, error) {
	for _, existing := range r.bills {
		if existing.BillNumber == b.BillNumber {
			return nil, domain.ErrBillExists
		}
	}
	clone := *b
	clone.ID = fmt.Sprintf("bill_%d", len(r.bills)+1)
	r.bills[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubBillRepo) FindByID(_ context.Context, id string) (*domain.Bill, error) {
	if b, ok := r.bills[id]; ok {
		clone := *b
		return &clone, nil
	}
	return nil, domain.ErrBillNotFound
}

func (r *stubBillRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.Bill, error) {
	var out []*domain.Bill
	for _, id := range ids {
		if b, ok := r.bills[id]; ok {
			clone := *b
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubBillRepo) Update(_ context.Context, id string, update ports.BillUpdate) (*domain.Bill, error) {
	b, ok := r.bills[id]
	if !ok {
		return nil, domain.ErrBillNotFound
	}
	if update.Title != nil {
		b.Title = *update.Title
	}
	if update.Status != nil {
		b.Status = *update.Status
	}
	clone := *b
	return &clone, nil
}

func (r *stubBillRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.bills[id]; !ok {
		return domain.ErrBillNotFound
	}
	delete(r.bills, id)
	return nil
}

func (r *stubBillRepo) List(_ context.Context, filter ports.ListBillsFilter) ([]*domain.Bill, error) {
	r.lastListFilter = filter
	var out []*domain.Bill
	for _, b := range r.bills {
		clone := *b
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubBillRepo) ListPaged(_ context.Context, filter ports.AdminListBillsFilter) ([]*domain.Bill, int64, error) {
	r.lastPagedFilter = filter
	return nil, int64(len(r.bills)), nil
}

func (r *stubBillRepo) History(_ context.Context, billID string) ([]*domain.BillAction, error) {
	return r.history[billID], nil
}

func (r *stubBillRepo) Votes(_ context.Context, billID string) ([]*domain.BillVote, error) {
	return r.votes[billID], nil
}

func (r *stubBillRepo) VoteRecords(_ context.Context, voteIDs []string) ([]*domain.BillVoteRecord, error) {
	var out []*domain.BillVoteRecord
	for _, id := range voteIDs {
		out = append(out, &domain.BillVoteRecord{VoteID: id, VoteCast: "aye"})
	}
	return out, nil
}

func (r *stubBillRepo) Versions(_ context.Context, billID string) ([]*domain.BillVersion, error) {
	return nil, nil
}

type stubRecorder struct {
	entries []string
}

func (r *stubRecorder) Record(_, activityType string, _ map[string]any) {
	r.entries = append(r.entries, activityType)
}

func TestBillService_CreateBill_Defaults(t *testing.T) {
	repo := newStubBillRepo()
	svc := NewBillService(repo, &stubRecorder{}, zerolog.Nop())

	bill, err := svc.CreateBill(context.Background(), ports.CreateBillInput{
		BillNumber:     "HB 125",
		Title:          "School Funding Act",
		Chamber:        domain.ChamberHouse,
		IntroducedDate: "2025-02-01",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if bill.Status != "Filed" {
		t.Fatalf("expected default status Filed, got %q", bill.Status)
	}
	if bill.NCLegURL != "https://www.ncleg.gov/BillLookUp/2025/HB 125" {
		t.Fatalf("unexpected ncleg url: %q", bill.NCLegURL)
	}
	if bill.LastActionDate != "2025-02-01" {
		t.Fatalf("expected last action date to fall back to introduced date, got %q", bill.LastActionDate)
	}
}

func TestBillService_CreateBill_DuplicateNumber(t *testing.T) {
	repo := newStubBillRepo()
	rec := &stubRecorder{}
	svc := NewBillService(repo, rec, zerolog.Nop())

	in := ports.CreateBillInput{BillNumber: "SB 47", Title: "First", Chamber: domain.ChamberSenate}
	if _, err := svc.CreateBill(context.Background(), in); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	in.Title = "Second"
	if _, err := svc.CreateBill(context.Background(), in); !errors.Is(err, domain.ErrBillExists) {
		t.Fatalf("expected ErrBillExists, got %v", err)
	}
	if len(rec.entries) != 1 {
		t.Fatalf("expected one recorded activity, got %d", len(rec.entries))
	}
}

func TestBillService_ListBills_LimitDefaults(t *testing.T) {
	repo := newStubBillRepo()
	svc := NewBillService(repo, &stubRecorder{}, zerolog.Nop())

	if _, err := svc.ListBills(context.Background(), ports.ListBillsFilter{}); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if repo.lastListFilter.Limit != defaultBillListLimit {
		t.Fatalf("expected default limit %d, got %d", defaultBillListLimit, repo.lastListFilter.Limit)
	}

	if _, err := svc.ListBills(context.Background(), ports.ListBillsFilter{Limit: 5000, Offset: -3}); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if repo.lastListFilter.Limit != maxPageLimit {
		t.Fatalf("expected limit capped at %d, got %d", maxPageLimit, repo.lastListFilter.Limit)
	}
	if repo.lastListFilter.Offset != 0 {
		t.Fatalf("expected negative offset reset to 0, got %d", repo.lastListFilter.Offset)
	}
}

func TestBillService_ListBillsAdmin_PageDefaults(t *testing.T) {
	repo := newStubBillRepo()
	svc := NewBillService(repo, &stubRecorder{}, zerolog.Nop())

	res, err := svc.ListBillsAdmin(context.Background(), ports.AdminListBillsFilter{})
	if err != nil {
		t.Fatalf("admin list failed: %v", err)
	}
	if res.Page != 1 || res.Limit != defaultAdminBillPage {
		t.Fatalf("expected page 1 limit %d, got page %d limit %d", defaultAdminBillPage, res.Page, res.Limit)
	}
}

func TestBillService_GetBillDetail(t *testing.T) {
	repo := newStubBillRepo()
	svc := NewBillService(repo, &stubRecorder{}, zerolog.Nop())

	created, err := svc.CreateBill(context.Background(), ports.CreateBillInput{
		BillNumber: "HB 7", Title: "T", Chamber: domain.ChamberHouse,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	repo.votes[created.ID] = []*domain.BillVote{{ID: "v1", BillID: created.ID}}

	detail, err := svc.GetBillDetail(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("detail failed: %v", err)
	}
	if detail.Bill.BillNumber != "HB 7" {
		t.Fatalf("unexpected bill: %+v", detail.Bill)
	}
	if len(detail.VoteRecords) != 1 || detail.VoteRecords[0].VoteID != "v1" {
		t.Fatalf("expected vote records resolved from votes, got %+v", detail.VoteRecords)
	}

	if _, err := svc.GetBillDetail(context.Background(), "missing"); !errors.Is(err, domain.ErrBillNotFound) {
		t.Fatalf("expected ErrBillNotFound, got %v", err)
	}
}

func TestBillService_DeleteBill_RecordsActivity(t *testing.T) {
	repo := newStubBillRepo()
	rec := &stubRecorder{}
	svc := NewBillService(repo, rec, zerolog.Nop())

	created, err := svc.CreateBill(context.Background(), ports.CreateBillInput{
		BillNumber: "HB 12", Title: "T", Chamber: domain.ChamberHouse,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.DeleteBill(context.Background(), created.ID, "a1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if len(rec.entries) != 2 || rec.entries[1] != "bill_deleted" {
		t.Fatalf("expected a bill_deleted entry, got %v", rec.entries)
	}

	if err := svc.DeleteBill(context.Background(), created.ID, "a1"); !errors.Is(err, domain.ErrBillNotFound) {
		t.Fatalf("expected ErrBillNotFound, got %v", err)
	}
	if len(rec.entries) != 2 {
		t.Fatalf("failed delete must not record activity, got %v", rec.entries)
	}
}
