package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ncissues/civic-api/internal/api/middleware"
	"github.com/ncissues/civic-api/internal/core/domain"
	"github.com/ncissues/civic-api/internal/core/ports"
)

// BillHandler serves the public bill surface: browsing, detail, and comments.
type BillHandler struct {
	bills    ports.BillService
	comments ports.CommentService
	tracked  ports.TrackedBillService
	log      zerolog.Logger
}

func NewBillHandler(bills ports.BillService, comments ports.CommentService, tracked ports.TrackedBillService, log zerolog.Logger) *BillHandler {
	return &BillHandler{bills: bills, comments: comments, tracked: tracked, log: log}
}

// List godoc
// @Summary      List bills
// @Description  Returns bills ordered by introduced date, newest first.
// @Tags         bills
// @Produce      json
// @Param        chamber query string false "house or senate"
// @Param        topic   query string false "topic filter"
// @Param        status  query string false "status filter"
// @Param        search  query string false "substring match on title or bill number"
// @Param        offset  query int    false "pagination offset"
// @Param        limit   query int    false "page size, default 20"
// @Success      200 {array} domain.Bill
// @Router       /api/bills [get]
func (h *BillHandler) List(c echo.Context) error {
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	bills, err := h.bills.ListBills(c.Request().Context(), ports.ListBillsFilter{
		Chamber: c.QueryParam("chamber"),
		Topic:   c.QueryParam("topic"),
		Status:  c.QueryParam("status"),
		Search:  c.QueryParam("search"),
		Offset:  offset,
		Limit:   limit,
	})
	if err != nil {
		return err
	}
	if bills == nil {
		bills = []*domain.Bill{}
	}
	return c.JSON(http.StatusOK, bills)
}

// Get godoc
// @Summary      Bill detail
// @Description  Returns a bill with its history, votes, vote records, and versions.
// @Tags         bills
// @Produce      json
// @Param        id path string true "bill id"
// @Success      200 {object} billDetailResponse
// @Failure      404 {object} map[string]string
// @Router       /api/bills/{id} [get]
func (h *BillHandler) Get(c echo.Context) error {
	detail, err := h.bills.GetBillDetail(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	res := newBillDetailResponse(detail)

	// Logged-in members also see whether they already track this bill.
	if claims, ok := middleware.ClaimsFrom(c); ok && claims.Type == domain.UserTypeMember {
		isTracked, err := h.tracked.IsTracked(c.Request().Context(), claims.ID, detail.Bill.ID)
		if err != nil {
			h.log.Warn().Err(err).Str("bill_id", detail.Bill.ID).Msg("failed to resolve tracked status")
		} else {
			res.IsTracked = &isTracked
		}
	}
	return c.JSON(http.StatusOK, res)
}

// ListComments godoc
// @Summary      List bill comments
// @Description  Returns approved top-level comments on a bill, newest first.
// @Tags         bills
// @Produce      json
// @Param        id path string true "bill id"
// @Success      200 {array} domain.Comment
// @Router       /api/bills/{id}/comments [get]
func (h *BillHandler) ListComments(c echo.Context) error {
	comments, err := h.comments.ListBillComments(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	if comments == nil {
		comments = []*domain.Comment{}
	}
	return c.JSON(http.StatusOK, comments)
}

// PostComment godoc
// @Summary      Comment on a bill
// @Tags         bills
// @Accept       json
// @Produce      json
// @Param        id path string true "bill id"
// @Param        request body createCommentRequest true "comment"
// @Success      201 {object} domain.Comment
// @Failure      400 {object} map[string]string
// @Router       /api/bills/{id}/comments [post]
func (h *BillHandler) PostComment(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return domain.ErrUnauthenticated
	}

	var req createCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.comments.PostBillComment(c.Request().Context(), c.Param("id"), ports.CreateCommentInput{
		MemberID:        claims.ID,
		Text:            req.Text,
		ParentCommentID: req.ParentCommentID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, comment)
}
