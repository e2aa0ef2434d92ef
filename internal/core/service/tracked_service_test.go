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

type stubTrackedRepo struct {
	tracked []*domain.TrackedBill
}

func (r *stubTrackedRepo) Create(_ context.Context, t *domain.TrackedBill) (*domain.TrackedBill, error) {
	for _, existing := range r.tracked {
		if existing.MemberID == t.MemberID && existing.BillID == t.BillID {
			return nil, domain.ErrAlreadyTracked
		}
	}
	clone := *t
	clone.ID = fmt.Sprintf("tracked_%d", len(r.tracked)+1)
	r.tracked = append(r.tracked, &clone)
	out := clone
	return &out, nil
}

func (r *stubTrackedRepo) ListByMember(_ context.Context, memberID string) ([]*domain.TrackedBill, error) {
	var out []*domain.TrackedBill
	for _, t := range r.tracked {
		if t.MemberID == memberID {
			clone := *t
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubTrackedRepo) Find(_ context.Context, memberID, billID string) (*domain.TrackedBill, error) {
	for _, t := range r.tracked {
		if t.MemberID == memberID && t.BillID == billID {
			clone := *t
			return &clone, nil
		}
	}
	return nil, domain.ErrTrackedNotFound
}

func (r *stubTrackedRepo) Delete(_ context.Context, memberID, billID string) error {
	for i, t := range r.tracked {
		if t.MemberID == memberID && t.BillID == billID {
			r.tracked = append(r.tracked[:i], r.tracked[i+1:]...)
			return nil
		}
	}
	return domain.ErrTrackedNotFound
}

func newTrackedFixture(t *testing.T) (*TrackedBillService, *stubBillRepo, *stubRecorder) {
	t.Helper()
	bills := newStubBillRepo()
	rec := &stubRecorder{}
	svc := NewTrackedBillService(&stubTrackedRepo{}, bills, rec, zerolog.Nop())
	return svc, bills, rec
}

func TestTrackedBillService_Track_DuplicateIsRejected(t *testing.T) {
	svc, bills, rec := newTrackedFixture(t)
	bill, _ := bills.Create(context.Background(), &domain.Bill{BillNumber: "HB 1", Title: "T"})

	if _, err := svc.Track(context.Background(), ports.TrackBillInput{MemberID: "m1", BillID: bill.ID}); err != nil {
		t.Fatalf("first track failed: %v", err)
	}
	if _, err := svc.Track(context.Background(), ports.TrackBillInput{MemberID: "m1", BillID: bill.ID}); !errors.Is(err, domain.ErrAlreadyTracked) {
		t.Fatalf("expected ErrAlreadyTracked, got %v", err)
	}
	if len(rec.entries) != 1 {
		t.Fatalf("duplicate track must not record activity, got %d entries", len(rec.entries))
	}
}

func TestTrackedBillService_Track_UnknownBill(t *testing.T) {
	svc, _, _ := newTrackedFixture(t)

	if _, err := svc.Track(context.Background(), ports.TrackBillInput{MemberID: "m1", BillID: "missing"}); !errors.Is(err, domain.ErrBillNotFound) {
		t.Fatalf("expected ErrBillNotFound, got %v", err)
	}
}

func TestTrackedBillService_ListTracked_EmbedsBills(t *testing.T) {
	svc, bills, _ := newTrackedFixture(t)
	b1, _ := bills.Create(context.Background(), &domain.Bill{BillNumber: "HB 1", Title: "One"})
	b2, _ := bills.Create(context.Background(), &domain.Bill{BillNumber: "SB 2", Title: "Two"})

	for _, id := range []string{b1.ID, b2.ID} {
		if _, err := svc.Track(context.Background(), ports.TrackBillInput{MemberID: "m1", BillID: id}); err != nil {
			t.Fatalf("track failed: %v", err)
		}
	}

	entries, err := svc.ListTracked(context.Background(), "m1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	for _, e := range entries {
		if e.Bill == nil || e.Bill.ID != e.Tracked.BillID {
			t.Fatalf("entry missing its bill: %+v", e)
		}
	}

	empty, err := svc.ListTracked(context.Background(), "m2")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected empty list for other member, got %d", len(empty))
	}
}

func TestTrackedBillService_IsTracked(t *testing.T) {
	svc, bills, _ := newTrackedFixture(t)
	bill, _ := bills.Create(context.Background(), &domain.Bill{BillNumber: "HB 3", Title: "T"})

	ok, err := svc.IsTracked(context.Background(), "m1", bill.ID)
	if err != nil {
		t.Fatalf("is tracked failed: %v", err)
	}
	if ok {
		t.Fatal("bill should not be tracked yet")
	}

	if _, err := svc.Track(context.Background(), ports.TrackBillInput{MemberID: "m1", BillID: bill.ID}); err != nil {
		t.Fatalf("track failed: %v", err)
	}

	ok, err = svc.IsTracked(context.Background(), "m1", bill.ID)
	if err != nil {
		t.Fatalf("is tracked failed: %v", err)
	}
	if !ok {
		t.Fatal("bill should be tracked")
	}

	ok, err = svc.IsTracked(context.Background(), "m2", bill.ID)
	if err != nil {
		t.Fatalf("is tracked failed: %v", err)
	}
	if ok {
		t.Fatal("other member must not see the bill as tracked")
	}
}

func TestTrackedBillService_Untrack(t *testing.T) {
	svc, bills, _ := newTrackedFixture(t)
	bill, _ := bills.Create(context.Background(), &domain.Bill{BillNumber: "HB 9", Title: "T"})

	if _, err := svc.Track(context.Background(), ports.TrackBillInput{MemberID: "m1", BillID: bill.ID}); err != nil {
		t.Fatalf("track failed: %v", err)
	}
	if err := svc.Untrack(context.Background(), "m1", bill.ID); err != nil {
		t.Fatalf("untrack failed: %v", err)
	}
	if err := svc.Untrack(context.Background(), "m1", bill.ID); !errors.Is(err, domain.ErrTrackedNotFound) {
		t.Fatalf("expected ErrTrackedNotFound, got %v", err)
	}
}
