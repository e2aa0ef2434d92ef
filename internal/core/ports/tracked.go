package ports

import (
	"context"

	"github.com/ncissues/civic-api/internal/core/domain"
)

// TrackedBillRepository persists member bill subscriptions. Create relies on
// a unique (member_id, bill_id) index; a duplicate insert returns
// domain.ErrAlreadyTracked.
type TrackedBillRepository interface {
	Create(ctx context.Context, t *domain.TrackedBill) (*domain.TrackedBill, error)
	ListByMember(ctx context.Context, memberID string) ([]*domain.TrackedBill, error)
	// Find returns domain.ErrTrackedNotFound when the pair does not exist.
	Find(ctx context.Context, memberID, billID string) (*domain.TrackedBill, error)
	Delete(ctx context.Context, memberID, billID string) error
}

// TrackedBillEntry pairs a tracking record with its bill for the list view.
type TrackedBillEntry struct {
	Tracked *domain.TrackedBill
	Bill    *domain.Bill
}

// TrackBillInput carries a new tracking request.
type TrackBillInput struct {
	MemberID string
	BillID   string
	Notes    string
}

// TrackedBillService implements the member bill-tracking use cases.
type TrackedBillService interface {
	ListTracked(ctx context.Context, memberID string) ([]TrackedBillEntry, error)
	Track(ctx context.Context, in TrackBillInput) (*domain.TrackedBill, error)
	Untrack(ctx context.Context, memberID, billID string) error
	// IsTracked reports whether the member already tracks the bill.
	IsTracked(ctx context.Context, memberID, billID string) (bool, error)
}
