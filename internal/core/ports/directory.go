package ports

import (
	"context"

	"github.com/ncissues/civic-api/internal/core/domain"
)

// ListCommitteesFilter carries the committee directory query.
type ListCommitteesFilter struct {
	Chamber string
	Type    string
	Search  string // substring match on name or description
}

// ListOfficialsFilter carries the elected-official directory query.
type ListOfficialsFilter struct {
	OfficeType string
	County     string
	District   string
	Search     string // substring match on full_name or office_title
}

// ListLegislatorsFilter carries the legislator directory query.
type ListLegislatorsFilter struct {
	District string
	Chamber  string
	Search   string // substring match on first, last, or full name
}

// DirectoryRepository serves the read-mostly reference collections.
type DirectoryRepository interface {
	ListCommittees(ctx context.Context, filter ListCommitteesFilter) ([]*domain.Committee, error)
	FindCommittee(ctx context.Context, id string) (*domain.Committee, error)
	ListOfficials(ctx context.Context, filter ListOfficialsFilter) ([]*domain.ElectedOfficial, error)
	ListLegislators(ctx context.Context, filter ListLegislatorsFilter) ([]*domain.Legislator, error)
	FindLegislator(ctx context.Context, id string) (*domain.Legislator, error)
}

// DirectoryService exposes the reference-data lists.
type DirectoryService interface {
	ListCommittees(ctx context.Context, filter ListCommitteesFilter) ([]*domain.Committee, error)
	ListOfficials(ctx context.Context, filter ListOfficialsFilter) ([]*domain.ElectedOfficial, error)
	ListLegislators(ctx context.Context, filter ListLegislatorsFilter) ([]*domain.Legislator, error)
}

// ContactRepository persists constituent messages to legislators.
type ContactRepository interface {
	Create(ctx context.Context, m *domain.ContactMessage) (*domain.ContactMessage, error)
}

// ContactInput carries a constituent message.
type ContactInput struct {
	UserID       string
	LegislatorID string
	BillID       string
	Subject      string
	Message      string
	Position     string
}

// ContactService validates and records constituent messages.
type ContactService interface {
	Send(ctx context.Context, in ContactInput) (*domain.ContactMessage, error)
}
