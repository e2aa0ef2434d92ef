package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ncissues/civic-api/internal/core/domain"
	"github.com/ncissues/civic-api/internal/core/ports"
)

type stubCalendarService struct {
	subscribeFn func(ctx context.Context, in ports.SubscribeInput) (*domain.EventSubscription, error)
}

func (s *stubCalendarService) ListEvents(context.Context, ports.ListEventsFilter) ([]*domain.LegislativeEvent, error) {
	return nil, nil
}

func (s *stubCalendarService) CreateEvent(context.Context, ports.CreateEventInput) (*domain.LegislativeEvent, error) {
	return nil, nil
}

func (s *stubCalendarService) Subscribe(ctx context.Context, in ports.SubscribeInput) (*domain.EventSubscription, error) {
	return s.subscribeFn(ctx, in)
}

func (s *stubCalendarService) ListSubscriptions(context.Context, string) ([]*domain.EventSubscription, error) {
	return nil, nil
}

func (s *stubCalendarService) Unsubscribe(context.Context, string, string) error {
	return nil
}

func subscribeContext(t *testing.T, body string) (echo.Context, *stubCalendarService, *CalendarHandler) {
	t.Helper()
	stub := &stubCalendarService{}
	h := NewCalendarHandler(stub, zerolog.Nop())
	c, _ := newAuthTestContext(t, http.MethodPost, "/api/calendar/subscribe", body)
	c.Set("auth_claims", ports.TokenClaims{ID: "m1", Type: domain.UserTypeMember})
	return c, stub, h
}

func TestCalendarHandler_Subscribe_DeadlinesDefaultOn(t *testing.T) {
	c, stub, h := subscribeContext(t, `{"subscribe_all_sessions":true}`)
	stub.subscribeFn = func(_ context.Context, in ports.SubscribeInput) (*domain.EventSubscription, error) {
		if !in.SubscribeDeadlines {
			t.Fatal("omitted subscribe_deadlines must default to true")
		}
		if !in.SubscribeAllSessions {
			t.Fatal("explicit fields must pass through")
		}
		return &domain.EventSubscription{ID: "s1", MemberID: in.MemberID}, nil
	}
	if err := h.Subscribe(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestCalendarHandler_Subscribe_DeadlinesOptOut(t *testing.T) {
	c, stub, h := subscribeContext(t, `{"subscribe_deadlines":false}`)
	stub.subscribeFn = func(_ context.Context, in ports.SubscribeInput) (*domain.EventSubscription, error) {
		if in.SubscribeDeadlines {
			t.Fatal("explicit false must be honored")
		}
		return &domain.EventSubscription{ID: "s1", MemberID: in.MemberID}, nil
	}
	if err := h.Subscribe(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}
