package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/ncissues/civic-api/internal/api/metrics"
	"github.com/ncissues/civic-api/internal/core/domain"
	"github.com/ncissues/civic-api/internal/core/ports"
)

// TrackedBillService implements member bill tracking. Pair uniqueness is the
// repository's unique index, not a read-then-write check.
type TrackedBillService struct {
	tracked  ports.TrackedBillRepository
	bills    ports.BillRepository
	activity ports.ActivityRecorder
	log      zerolog.Logger
}

func NewTrackedBillService(
	tracked ports.TrackedBillRepository,
	bills ports.BillRepository,
	activity ports.ActivityRecorder,
	log zerolog.Logger,
) *TrackedBillService {
	return &TrackedBillService{tracked: tracked, bills: bills, activity: activity, log: log}
}

// ListTracked returns the member's subscriptions newest-first with their
// bills embedded.
func (s *TrackedBillService) ListTracked(ctx context.Context, memberID string) ([]ports.TrackedBillEntry, error) {
	tracked, err := s.tracked.ListByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if len(tracked) == 0 {
		return []ports.TrackedBillEntry{}, nil
	}

	billIDs := make([]string, len(tracked))
	for i, t := range tracked {
		billIDs[i] = t.BillID
	}
	bills, err := s.bills.FindByIDs(ctx, billIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*domain.Bill, len(bills))
	for _, b := range bills {
		byID[b.ID] = b
	}

	entries := make([]ports.TrackedBillEntry, 0, len(tracked))
	for _, t := range tracked {
		entries = append(entries, ports.TrackedBillEntry{Tracked: t, Bill: byID[t.BillID]})
	}
	return entries, nil
}

// Track subscribes the member to a bill. A duplicate pair surfaces as
// domain.ErrAlreadyTracked from the unique index.
func (s *TrackedBillService) Track(ctx context.Context, in ports.TrackBillInput) (*domain.TrackedBill, error) {
	if _, err := s.bills.FindByID(ctx, in.BillID); err != nil {
		return nil, err
	}

	tracked, err := s.tracked.Create(ctx, &domain.TrackedBill{
		MemberID:  in.MemberID,
		BillID:    in.BillID,
		Notes:     in.Notes,
		TrackedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	metrics.BillsTrackedTotal.Inc()
	s.activity.Record(in.MemberID, "track_bill", map[string]any{"bill_id": in.BillID})
	s.log.Info().Str("member_id", in.MemberID).Str("bill_id", in.BillID).Msg("bill tracked")
	return tracked, nil
}

// IsTracked reports whether the member already tracks the bill.
func (s *TrackedBillService) IsTracked(ctx context.Context, memberID, billID string) (bool, error) {
	if _, err := s.tracked.Find(ctx, memberID, billID); err != nil {
		if errors.Is(err, domain.ErrTrackedNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Untrack removes the member's subscription to a bill.
func (s *TrackedBillService) Untrack(ctx context.Context, memberID, billID string) error {
	if err := s.tracked.Delete(ctx, memberID, billID); err != nil {
		return err
	}
	s.activity.Record(memberID, "untrack_bill", map[string]any{"bill_id": billID})
	return nil
}
