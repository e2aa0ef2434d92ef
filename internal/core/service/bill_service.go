package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ncissues/civic-api/internal/api/metrics"
	"github.com/ncissues/civic-api/internal/core/domain"
	"github.com/ncissues/civic-api/internal/core/ports"
)

const (
	defaultBillListLimit = 20
	defaultAdminBillPage = 50
)

// BillService implements the public bill list/detail and the admin CRUD.
type BillService struct {
	repo     ports.BillRepository
	activity ports.ActivityRecorder
	log      zerolog.Logger
}

func NewBillService(repo ports.BillRepository, activity ports.ActivityRecorder, log zerolog.Logger) *BillService {
	return &BillService{repo: repo, activity: activity, log: log}
}

// ListBills returns bills matching the public filters, newest introduced
// first.
func (s *BillService) ListBills(ctx context.Context, filter ports.ListBillsFilter) ([]*domain.Bill, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultBillListLimit
	}
	if filter.Limit > maxPageLimit {
		filter.Limit = maxPageLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.repo.List(ctx, filter)
}

// GetBillDetail aggregates the bill with its history, votes, vote records,
// and text versions.
func (s *BillService) GetBillDetail(ctx context.Context, id string) (*ports.BillDetail, error) {
	bill, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &ports.BillDetail{Bill: bill}

	// Related records are best-effort: the bill page renders with empty
	// sections rather than failing outright.
	if detail.History, err = s.repo.History(ctx, id); err != nil {
		s.log.Warn().Err(err).Str("bill_id", id).Msg("failed to load bill history")
		detail.History = nil
	}
	if detail.Votes, err = s.repo.Votes(ctx, id); err != nil {
		s.log.Warn().Err(err).Str("bill_id", id).Msg("failed to load bill votes")
		detail.Votes = nil
	}
	if len(detail.Votes) > 0 {
		voteIDs := make([]string, len(detail.Votes))
		for i, v := range detail.Votes {
			voteIDs[i] = v.ID
		}
		if detail.VoteRecords, err = s.repo.VoteRecords(ctx, voteIDs); err != nil {
			s.log.Warn().Err(err).Str("bill_id", id).Msg("failed to load vote records")
			detail.VoteRecords = nil
		}
	}
	if detail.Versions, err = s.repo.Versions(ctx, id); err != nil {
		s.log.Warn().Err(err).Str("bill_id", id).Msg("failed to load bill versions")
		detail.Versions = nil
	}

	return detail, nil
}

// ListBillsAdmin returns the admin page ordered by last action date.
func (s *BillService) ListBillsAdmin(ctx context.Context, filter ports.AdminListBillsFilter) (*ports.AdminListBillsResult, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultAdminBillPage
	}
	if filter.Limit > maxPageLimit {
		filter.Limit = maxPageLimit
	}

	bills, total, err := s.repo.ListPaged(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ports.AdminListBillsResult{
		Bills: bills,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// CreateBill inserts a new bill. Duplicate bill numbers surface as
// domain.ErrBillExists from the unique index, with no pre-read.
func (s *BillService) CreateBill(ctx context.Context, in ports.CreateBillInput) (*domain.Bill, error) {
	status := in.Status
	if status == "" {
		status = "Filed"
	}
	nclegURL := in.NCLegURL
	if nclegURL == "" {
		nclegURL = fmt.Sprintf("https://www.ncleg.gov/BillLookUp/2025/%s", in.BillNumber)
	}
	lastActionDate := in.LastActionDate
	if lastActionDate == "" {
		lastActionDate = in.IntroducedDate
	}

	now := time.Now().UTC()
	bill, err := s.repo.Create(ctx, &domain.Bill{
		BillNumber:     in.BillNumber,
		Title:          in.Title,
		Chamber:        in.Chamber,
		Status:         status,
		Topic:          in.Topic,
		Summary:        in.Summary,
		FullText:       in.FullText,
		IntroducedDate: in.IntroducedDate,
		PrimarySponsor: in.PrimarySponsor,
		Cosponsors:     in.Cosponsors,
		NCLegURL:       nclegURL,
		LastAction:     in.LastAction,
		LastActionDate: lastActionDate,
		Keywords:       in.Keywords,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		return nil, err
	}

	metrics.BillsManagedTotal.WithLabelValues("create").Inc()
	s.activity.Record("", "bill_created", map[string]any{
		"bill_number": bill.BillNumber,
		"admin_id":    in.AdminID,
	})
	s.log.Info().Str("bill_number", bill.BillNumber).Str("admin_id", in.AdminID).Msg("bill created")
	return bill, nil
}

// UpdateBill applies a partial update by id.
func (s *BillService) UpdateBill(ctx context.Context, id string, update ports.BillUpdate, adminID string) (*domain.Bill, error) {
	bill, err := s.repo.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}

	metrics.BillsManagedTotal.WithLabelValues("update").Inc()
	s.activity.Record("", "bill_updated", map[string]any{
		"bill_number": bill.BillNumber,
		"admin_id":    adminID,
	})
	s.log.Info().Str("bill_number", bill.BillNumber).Str("admin_id", adminID).Msg("bill updated")
	return bill, nil
}

// DeleteBill removes a bill permanently.
func (s *BillService) DeleteBill(ctx context.Context, id, adminID string) error {
	bill, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	metrics.BillsManagedTotal.WithLabelValues("delete").Inc()
	s.activity.Record("", "bill_deleted", map[string]any{
		"bill_number": bill.BillNumber,
		"admin_id":    adminID,
	})
	s.log.Info().Str("bill_number", bill.BillNumber).Str("admin_id", adminID).Msg("bill deleted")
	return nil
}
