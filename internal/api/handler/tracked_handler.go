package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ncissues/civic-api/internal/api/middleware"
	"github.com/ncissues/civic-api/internal/core/domain"
	"github.com/ncissues/civic-api/internal/core/ports"
)

// TrackedBillHandler serves the member bill-tracking surface.
type TrackedBillHandler struct {
	tracked ports.TrackedBillService
	log     zerolog.Logger
}

func NewTrackedBillHandler(tracked ports.TrackedBillService, log zerolog.Logger) *TrackedBillHandler {
	return &TrackedBillHandler{tracked: tracked, log: log}
}

type trackedBillEntryResponse struct {
	Tracked *domain.TrackedBill `json:"tracked"`
	Bill    *domain.Bill        `json:"bill"`
}

// List godoc
// @Summary      List tracked bills
// @Description  Returns the member's tracked bills with bill details, newest first.
// @Tags         tracked-bills
// @Produce      json
// @Success      200 {array} trackedBillEntryResponse
// @Router       /api/tracked-bills [get]
func (h *TrackedBillHandler) List(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return domain.ErrUnauthenticated
	}

	entries, err := h.tracked.ListTracked(c.Request().Context(), claims.ID)
	if err != nil {
		return err
	}

	res := make([]trackedBillEntryResponse, 0, len(entries))
	for _, e := range entries {
		res = append(res, trackedBillEntryResponse{Tracked: e.Tracked, Bill: e.Bill})
	}
	return c.JSON(http.StatusOK, res)
}

// Track godoc
// @Summary      Track a bill
// @Description  Subscribes the member to a bill. Tracking the same bill twice is a 400.
// @Tags         tracked-bills
// @Accept       json
// @Produce      json
// @Param        request body trackBillRequest true "bill to track"
// @Success      201 {object} domain.TrackedBill
// @Failure      400 {object} map[string]string
// @Router       /api/tracked-bills [post]
func (h *TrackedBillHandler) Track(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return domain.ErrUnauthenticated
	}

	var req trackBillRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tracked, err := h.tracked.Track(c.Request().Context(), ports.TrackBillInput{
		MemberID: claims.ID,
		BillID:   req.BillID,
		Notes:    req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, tracked)
}

// Untrack godoc
// @Summary      Untrack a bill
// @Tags         tracked-bills
// @Produce      json
// @Param        bill_id query string true "bill id"
// @Success      200 {object} messageResponse
// @Failure      404 {object} map[string]string
// @Router       /api/tracked-bills [delete]
func (h *TrackedBillHandler) Untrack(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return domain.ErrUnauthenticated
	}

	billID := c.QueryParam("bill_id")
	if billID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "bill_id is required")
	}

	if err := h.tracked.Untrack(c.Request().Context(), claims.ID, billID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "bill untracked"})
}
