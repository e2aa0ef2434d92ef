package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/ncissues/civic-api/internal/core/domain"
	"github.com/ncissues/civic-api/internal/core/ports"
)

const defaultReminderHours = 24

// CalendarService implements the legislative calendar and member event
// subscriptions.
type CalendarService struct {
	repo      ports.CalendarRepository
	directory ports.DirectoryRepository
	log       zerolog.Logger
}

func NewCalendarService(repo ports.CalendarRepository, directory ports.DirectoryRepository, log zerolog.Logger) *CalendarService {
	return &CalendarService{repo: repo, directory: directory, log: log}
}

func (s *CalendarService) ListEvents(ctx context.Context, filter ports.ListEventsFilter) ([]*domain.LegislativeEvent, error) {
	return s.repo.ListPublic(ctx, filter)
}

// CreateEvent stores an event, embedding the committee reference when one is
// given.
func (s *CalendarService) CreateEvent(ctx context.Context, in ports.CreateEventInput) (*domain.LegislativeEvent, error) {
	event := &domain.LegislativeEvent{
		Title:       in.Title,
		Description: in.Description,
		EventType:   in.EventType,
		Chamber:     in.Chamber,
		CommitteeID: in.CommitteeID,
		Location:    in.Location,
		EventDate:   in.EventDate,
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
		IsPublic:    in.IsPublic,
		CreatedAt:   time.Now().UTC(),
	}

	if in.CommitteeID != "" {
		committee, err := s.directory.FindCommittee(ctx, in.CommitteeID)
		if err == nil {
			event.Committee = &domain.CommitteeRef{
				ID:      committee.ID,
				Name:    committee.Name,
				Chamber: committee.Chamber,
			}
		} else if !errors.Is(err, domain.ErrCommitteeNotFound) {
			s.log.Warn().Err(err).Str("committee_id", in.CommitteeID).Msg("failed to resolve committee")
		}
	}

	created, err := s.repo.CreateEvent(ctx, event)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("event_id", created.ID).Str("event_type", created.EventType).Msg("calendar event created")
	return created, nil
}

// Subscribe stores a member's calendar notification preferences.
func (s *CalendarService) Subscribe(ctx context.Context, in ports.SubscribeInput) (*domain.EventSubscription, error) {
	hours := in.ReminderHoursBefore
	if hours <= 0 {
		hours = defaultReminderHours
	}

	sub := &domain.EventSubscription{
		MemberID:             in.MemberID,
		SubscribeAllSessions: in.SubscribeAllSessions,
		SubscribeAllMeetings: in.SubscribeAllMeetings,
		SubscribeDeadlines:   in.SubscribeDeadlines,
		Chamber:              in.Chamber,
		CommitteeID:          in.CommitteeID,
		ReminderHoursBefore:  hours,
		CreatedAt:            time.Now().UTC(),
	}

	if in.CommitteeID != "" {
		if committee, err := s.directory.FindCommittee(ctx, in.CommitteeID); err == nil {
			sub.Committee = &domain.CommitteeRef{
				ID:      committee.ID,
				Name:    committee.Name,
				Chamber: committee.Chamber,
			}
		}
	}

	return s.repo.CreateSubscription(ctx, sub)
}

func (s *CalendarService) ListSubscriptions(ctx context.Context, memberID string) ([]*domain.EventSubscription, error) {
	return s.repo.ListSubscriptions(ctx, memberID)
}

// Unsubscribe deletes a subscription owned by the member.
func (s *CalendarService) Unsubscribe(ctx context.Context, id, memberID string) error {
	return s.repo.DeleteSubscription(ctx, id, memberID)
}
