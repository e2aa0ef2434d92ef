package ports

import (
	"context"

	"github.com/ncissues/civic-api/internal/core/domain"
)

// ListEventsFilter carries calendar query parameters. Dates are ISO
// yyyy-mm-dd strings compared lexically, matching the stored format.
type ListEventsFilter struct {
	StartDate   string
	EndDate     string
	EventType   string
	Chamber     string
	CommitteeID string
}

// CalendarRepository persists legislative events and member subscriptions.
type CalendarRepository interface {
	ListPublic(ctx context.Context, filter ListEventsFilter) ([]*domain.LegislativeEvent, error)
	CreateEvent(ctx context.Context, e *domain.LegislativeEvent) (*domain.LegislativeEvent, error)
	CreateSubscription(ctx context.Context, s *domain.EventSubscription) (*domain.EventSubscription, error)
	ListSubscriptions(ctx context.Context, memberID string) ([]*domain.EventSubscription, error)
	// DeleteSubscription is scoped to the owning member.
	DeleteSubscription(ctx context.Context, id, memberID string) error
}

// CreateEventInput is the admin event-creation payload.
type CreateEventInput struct {
	Title       string
	Description string
	EventType   string
	Chamber     string
	CommitteeID string
	Location    string
	EventDate   string
	StartTime   string
	EndTime     string
	IsPublic    bool
}

// SubscribeInput carries a member's calendar subscription preferences.
type SubscribeInput struct {
	MemberID             string
	SubscribeAllSessions bool
	SubscribeAllMeetings bool
	SubscribeDeadlines   bool
	Chamber              string
	CommitteeID          string
	ReminderHoursBefore  int
}

// CalendarService implements the legislative calendar use cases.
type CalendarService interface {
	ListEvents(ctx context.Context, filter ListEventsFilter) ([]*domain.LegislativeEvent, error)
	CreateEvent(ctx context.Context, in CreateEventInput) (*domain.LegislativeEvent, error)
	Subscribe(ctx context.Context, in SubscribeInput) (*domain.EventSubscription, error)
	ListSubscriptions(ctx context.Context, memberID string) ([]*domain.EventSubscription, error)
	Unsubscribe(ctx context.Context, id, memberID string) error
}
