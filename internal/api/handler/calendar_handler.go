package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ncissues/civic-api/internal/api/middleware"
	"github.com/ncissues/civic-api/internal/core/domain"
	"github.com/ncissues/civic-api/internal/core/ports"
)

// CalendarHandler serves the legislative calendar and member subscriptions.
type CalendarHandler struct {
	calendar ports.CalendarService
	log      zerolog.Logger
}

func NewCalendarHandler(calendar ports.CalendarService, log zerolog.Logger) *CalendarHandler {
	return &CalendarHandler{calendar: calendar, log: log}
}

type createEventRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	EventType   string `json:"event_type" validate:"required"`
	Chamber     string `json:"chamber" validate:"omitempty,oneof=house senate"`
	CommitteeID string `json:"committee_id"`
	Location    string `json:"location"`
	EventDate   string `json:"event_date" validate:"required,datetime=2006-01-02"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	IsPublic    *bool  `json:"is_public"`
}

type subscribeRequest struct {
	SubscribeAllSessions bool `json:"subscribe_all_sessions"`
	SubscribeAllMeetings bool `json:"subscribe_all_committee_meetings"`
	// Deadline reminders are on unless the member opts out.
	SubscribeDeadlines  *bool  `json:"subscribe_deadlines"`
	Chamber             string `json:"chamber" validate:"omitempty,oneof=house senate"`
	CommitteeID         string `json:"committee_id"`
	ReminderHoursBefore int    `json:"reminder_hours_before"`
}

// ListEvents godoc
// @Summary      List calendar events
// @Description  Returns public legislative events in chronological order.
// @Tags         calendar
// @Produce      json
// @Param        start_date   query string false "inclusive lower bound, yyyy-mm-dd"
// @Param        end_date     query string false "inclusive upper bound, yyyy-mm-dd"
// @Param        event_type   query string false "session, committee_meeting, or deadline"
// @Param        chamber      query string false "house or senate"
// @Param        committee_id query string false "committee filter"
// @Success      200 {array} domain.LegislativeEvent
// @Router       /api/calendar [get]
func (h *CalendarHandler) ListEvents(c echo.Context) error {
	events, err := h.calendar.ListEvents(c.Request().Context(), ports.ListEventsFilter{
		StartDate:   c.QueryParam("start_date"),
		EndDate:     c.QueryParam("end_date"),
		EventType:   c.QueryParam("event_type"),
		Chamber:     c.QueryParam("chamber"),
		CommitteeID: c.QueryParam("committee_id"),
	})
	if err != nil {
		return err
	}
	if events == nil {
		events = []*domain.LegislativeEvent{}
	}
	return c.JSON(http.StatusOK, events)
}

// CreateEvent godoc
// @Summary      Create a calendar event (admin)
// @Tags         calendar
// @Accept       json
// @Produce      json
// @Param        request body createEventRequest true "event"
// @Success      201 {object} domain.LegislativeEvent
// @Router       /api/calendar [post]
func (h *CalendarHandler) CreateEvent(c echo.Context) error {
	var req createEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	event, err := h.calendar.CreateEvent(c.Request().Context(), ports.CreateEventInput{
		Title:       req.Title,
		Description: req.Description,
		EventType:   req.EventType,
		Chamber:     req.Chamber,
		CommitteeID: req.CommitteeID,
		Location:    req.Location,
		EventDate:   req.EventDate,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		IsPublic:    isPublic,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, event)
}

// Subscribe godoc
// @Summary      Subscribe to calendar notifications
// @Tags         calendar
// @Accept       json
// @Produce      json
// @Param        request body subscribeRequest true "preferences"
// @Success      201 {object} domain.EventSubscription
// @Router       /api/calendar/subscribe [post]
func (h *CalendarHandler) Subscribe(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return domain.ErrUnauthenticated
	}

	var req subscribeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	deadlines := true
	if req.SubscribeDeadlines != nil {
		deadlines = *req.SubscribeDeadlines
	}

	sub, err := h.calendar.Subscribe(c.Request().Context(), ports.SubscribeInput{
		MemberID:             claims.ID,
		SubscribeAllSessions: req.SubscribeAllSessions,
		SubscribeAllMeetings: req.SubscribeAllMeetings,
		SubscribeDeadlines:   deadlines,
		Chamber:              req.Chamber,
		CommitteeID:          req.CommitteeID,
		ReminderHoursBefore:  req.ReminderHoursBefore,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, sub)
}

// ListSubscriptions godoc
// @Summary      List calendar subscriptions
// @Tags         calendar
// @Produce      json
// @Success      200 {array} domain.EventSubscription
// @Router       /api/calendar/subscribe [get]
func (h *CalendarHandler) ListSubscriptions(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return domain.ErrUnauthenticated
	}

	subs, err := h.calendar.ListSubscriptions(c.Request().Context(), claims.ID)
	if err != nil {
		return err
	}
	if subs == nil {
		subs = []*domain.EventSubscription{}
	}
	return c.JSON(http.StatusOK, subs)
}

// Unsubscribe godoc
// @Summary      Delete a calendar subscription
// @Tags         calendar
// @Produce      json
// @Param        id query string true "subscription id"
// @Success      200 {object} messageResponse
// @Failure      404 {object} map[string]string
// @Router       /api/calendar/subscribe [delete]
func (h *CalendarHandler) Unsubscribe(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return domain.ErrUnauthenticated
	}

	id := c.QueryParam("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "id is required")
	}

	if err := h.calendar.Unsubscribe(c.Request().Context(), id, claims.ID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "subscription removed"})
}
