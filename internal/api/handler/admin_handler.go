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

// AdminHandler serves the back-office surface: bill management, the member
// roster, and dashboard stats.
type AdminHandler struct {
	bills   ports.BillService
	members ports.MemberService
	log     zerolog.Logger
}

func NewAdminHandler(bills ports.BillService, members ports.MemberService, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{bills: bills, members: members, log: log}
}

type memberListResponse struct {
	Members    []*domain.Member `json:"members"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
}

// ListBills godoc
// @Summary      List bills (admin)
// @Tags         admin
// @Produce      json
// @Param        page  query int false "1-based page"
// @Param        limit query int false "page size, default 50"
// @Success      200 {object} adminBillListResponse
// @Router       /api/admin/bills [get]
func (h *AdminHandler) ListBills(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	res, err := h.bills.ListBillsAdmin(c.Request().Context(), ports.AdminListBillsFilter{
		Page:  page,
		Limit: limit,
	})
	if err != nil {
		return err
	}
	bills := res.Bills
	if bills == nil {
		bills = []*domain.Bill{}
	}
	return c.JSON(http.StatusOK, adminBillListResponse{
		Bills: bills,
		Total: res.Total,
		Page:  res.Page,
		Limit: res.Limit,
	})
}

// CreateBill godoc
// @Summary      Create a bill
// @Description  Creates a bill. A duplicate bill number is a 409.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request body createBillRequest true "bill"
// @Success      201 {object} domain.Bill
// @Failure      409 {object} map[string]string
// @Router       /api/admin/bills [post]
func (h *AdminHandler) CreateBill(c echo.Context) error {
	claims, _ := middleware.ClaimsFrom(c)

	var req createBillRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	bill, err := h.bills.CreateBill(c.Request().Context(), ports.CreateBillInput{
		BillNumber:     req.BillNumber,
		Title:          req.Title,
		Chamber:        req.Chamber,
		Status:         req.Status,
		Topic:          req.Topic,
		Summary:        req.Summary,
		FullText:       req.FullText,
		IntroducedDate: req.IntroducedDate,
		PrimarySponsor: req.PrimarySponsor,
		Cosponsors:     req.Cosponsors,
		NCLegURL:       req.NCLegURL,
		LastAction:     req.LastAction,
		LastActionDate: req.LastActionDate,
		Keywords:       req.Keywords,
		AdminID:        claims.ID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, bill)
}

// UpdateBill godoc
// @Summary      Update a bill
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id path string true "bill id"
// @Param        request body updateBillRequest true "partial update"
// @Success      200 {object} domain.Bill
// @Failure      404 {object} map[string]string
// @Router       /api/admin/bills/{id} [put]
func (h *AdminHandler) UpdateBill(c echo.Context) error {
	claims, _ := middleware.ClaimsFrom(c)

	var req updateBillRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	bill, err := h.bills.UpdateBill(c.Request().Context(), c.Param("id"), ports.BillUpdate{
		Title:          req.Title,
		Chamber:        req.Chamber,
		Status:         req.Status,
		Topic:          req.Topic,
		Summary:        req.Summary,
		FullText:       req.FullText,
		IntroducedDate: req.IntroducedDate,
		PrimarySponsor: req.PrimarySponsor,
		Cosponsors:     req.Cosponsors,
		NCLegURL:       req.NCLegURL,
		LastAction:     req.LastAction,
		LastActionDate: req.LastActionDate,
		Keywords:       req.Keywords,
	}, claims.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bill)
}

// DeleteBill godoc
// @Summary      Delete a bill
// @Tags         admin
// @Produce      json
// @Param        id query string true "bill id"
// @Success      200 {object} messageResponse
// @Failure      404 {object} map[string]string
// @Router       /api/admin/bills [delete]
func (h *AdminHandler) DeleteBill(c echo.Context) error {
	id := c.QueryParam("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "id is required")
	}

	claims, _ := middleware.ClaimsFrom(c)
	if err := h.bills.DeleteBill(c.Request().Context(), id, claims.ID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "bill deleted"})
}

// ListMembers godoc
// @Summary      List members (admin)
// @Tags         admin
// @Produce      json
// @Param        search   query string false "substring match on names, email, voter reg num"
// @Param        party    query string false "party code"
// @Param        district query string false "senate or house district"
// @Param        page     query int    false "1-based page"
// @Param        limit    query int    false "page size, default 50, max 100"
// @Success      200 {object} memberListResponse
// @Router       /api/admin/members [get]
func (h *AdminHandler) ListMembers(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	res, err := h.members.ListMembers(c.Request().Context(), ports.ListMembersFilter{
		Search:   c.QueryParam("search"),
		Party:    c.QueryParam("party"),
		District: c.QueryParam("district"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return err
	}
	members := res.Members
	if members == nil {
		members = []*domain.Member{}
	}
	return c.JSON(http.StatusOK, memberListResponse{
		Members:    members,
		Total:      res.Total,
		Page:       res.Page,
		Limit:      res.Limit,
		TotalPages: res.TotalPages,
	})
}

// Stats godoc
// @Summary      Member stats (admin)
// @Tags         admin
// @Produce      json
// @Success      200 {object} ports.MemberStats
// @Router       /api/admin/stats [get]
func (h *AdminHandler) Stats(c echo.Context) error {
	stats, err := h.members.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
