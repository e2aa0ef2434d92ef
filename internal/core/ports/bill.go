package ports

import (
	"context"

	"github.com/ncissues/civic-api/internal/core/domain"
)

// ListBillsFilter carries all query parameters for the public bill list.
type ListBillsFilter struct {
	Chamber string // optional equality filter
	Topic   string
	Status  string
	Search  string // optional substring match on title or bill_number
	Offset  int
	Limit   int // defaults to 20, capped by the service
}

// AdminListBillsFilter is the admin list with page-based pagination.
type AdminListBillsFilter struct {
	Page  int // 1-based
	Limit int
}

// BillUpdate holds partial-update fields for PUT /api/admin/bills. Nil
// pointers are left untouched.
type BillUpdate struct {
	Title          *string
	Chamber        *string
	Status         *string
	Topic          *string
	Summary        *string
	FullText       *string
	IntroducedDate *string
	PrimarySponsor *string
	Cosponsors     []string
	NCLegURL       *string
	LastAction     *string
	LastActionDate *string
	Keywords       []string
}

// BillRepository defines persistence for bills and their related records.
// Create relies on a unique bill_number index; a duplicate insert returns
// domain.ErrBillExists.
type BillRepository interface {
	Create(ctx context.Context, b *domain.Bill) (*domain.Bill, error)
	FindByID(ctx context.Context, id string) (*domain.Bill, error)
	FindByIDs(ctx context.Context, ids []string) ([]*domain.Bill, error)
	Update(ctx context.Context, id string, update BillUpdate) (*domain.Bill, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListBillsFilter) ([]*domain.Bill, error)
	// ListPaged returns a page ordered by last_action_date desc plus the
	// total count, for the admin view.
	ListPaged(ctx context.Context, filter AdminListBillsFilter) ([]*domain.Bill, int64, error)

	History(ctx context.Context, billID string) ([]*domain.BillAction, error)
	Votes(ctx context.Context, billID string) ([]*domain.BillVote, error)
	VoteRecords(ctx context.Context, voteIDs []string) ([]*domain.BillVoteRecord, error)
	Versions(ctx context.Context, billID string) ([]*domain.BillVersion, error)
}

// BillDetail aggregates everything the bill page shows.
type BillDetail struct {
	Bill        *domain.Bill
	History     []*domain.BillAction
	Votes       []*domain.BillVote
	VoteRecords []*domain.BillVoteRecord
	Versions    []*domain.BillVersion
}

// CreateBillInput carries the admin bill-creation payload.
type CreateBillInput struct {
	BillNumber     string
	Title          string
	Chamber        string
	Status         string
	Topic          string
	Summary        string
	FullText       string
	IntroducedDate string
	PrimarySponsor string
	Cosponsors     []string
	NCLegURL       string
	LastAction     string
	LastActionDate string
	Keywords       []string
	AdminID        string
}

// AdminListBillsResult is the paginated admin bill list.
type AdminListBillsResult struct {
	Bills []*domain.Bill
	Total int64
	Page  int
	Limit int
}

// BillService defines bill use cases for both public and admin surfaces.
type BillService interface {
	ListBills(ctx context.Context, filter ListBillsFilter) ([]*domain.Bill, error)
	GetBillDetail(ctx context.Context, id string) (*BillDetail, error)
	ListBillsAdmin(ctx context.Context, filter AdminListBillsFilter) (*AdminListBillsResult, error)
	CreateBill(ctx context.Context, in CreateBillInput) (*domain.Bill, error)
	UpdateBill(ctx context.Context, id string, update BillUpdate, adminID string) (*domain.Bill, error)
	DeleteBill(ctx context.Context, id, adminID string) error
}
