package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ncissues/civic-api/internal/api/middleware"
	"github.com/ncissues/civic-api/internal/core/domain"
	"github.com/ncissues/civic-api/internal/core/ports"
)

// DirectoryHandler serves the reference directories and the constituent
// contact flow.
type DirectoryHandler struct {
	directory ports.DirectoryService
	contact   ports.ContactService
	log       zerolog.Logger
}

func NewDirectoryHandler(directory ports.DirectoryService, contact ports.ContactService, log zerolog.Logger) *DirectoryHandler {
	return &DirectoryHandler{directory: directory, contact: contact, log: log}
}

type contactRequest struct {
	LegislatorID string `json:"legislator_id" validate:"required"`
	BillID       string `json:"bill_id"`
	Subject      string `json:"subject" validate:"required"`
	Message      string `json:"message" validate:"required"`
	Position     string `json:"position" validate:"omitempty,oneof=support oppose neutral"`
}

// ListCommittees godoc
// @Summary      List committees
// @Tags         directory
// @Produce      json
// @Param        chamber query string false "house or senate"
// @Param        type    query string false "committee type"
// @Param        search  query string false "substring match on name or description"
// @Success      200 {array} domain.Committee
// @Router       /api/committees [get]
func (h *DirectoryHandler) ListCommittees(c echo.Context) error {
	committees, err := h.directory.ListCommittees(c.Request().Context(), ports.ListCommitteesFilter{
		Chamber: c.QueryParam("chamber"),
		Type:    c.QueryParam("type"),
		Search:  c.QueryParam("search"),
	})
	if err != nil {
		return err
	}
	if committees == nil {
		committees = []*domain.Committee{}
	}
	return c.JSON(http.StatusOK, committees)
}

// ListOfficials godoc
// @Summary      List elected officials
// @Tags         directory
// @Produce      json
// @Param        office_type query string false "office type filter"
// @Param        county      query string false "county filter"
// @Param        district    query string false "district filter"
// @Param        search      query string false "substring match on name or office title"
// @Success      200 {array} domain.ElectedOfficial
// @Router       /api/officials [get]
func (h *DirectoryHandler) ListOfficials(c echo.Context) error {
	officials, err := h.directory.ListOfficials(c.Request().Context(), ports.ListOfficialsFilter{
		OfficeType: c.QueryParam("office_type"),
		County:     c.QueryParam("county"),
		District:   c.QueryParam("district"),
		Search:     c.QueryParam("search"),
	})
	if err != nil {
		return err
	}
	if officials == nil {
		officials = []*domain.ElectedOfficial{}
	}
	return c.JSON(http.StatusOK, officials)
}

// ListLegislators godoc
// @Summary      List legislators
// @Tags         directory
// @Produce      json
// @Param        district query string false "district filter"
// @Param        chamber  query string false "house or senate"
// @Param        search   query string false "substring match on name"
// @Success      200 {array} domain.Legislator
// @Router       /api/legislators [get]
func (h *DirectoryHandler) ListLegislators(c echo.Context) error {
	legislators, err := h.directory.ListLegislators(c.Request().Context(), ports.ListLegislatorsFilter{
		District: c.QueryParam("district"),
		Chamber:  c.QueryParam("chamber"),
		Search:   c.QueryParam("search"),
	})
	if err != nil {
		return err
	}
	if legislators == nil {
		legislators = []*domain.Legislator{}
	}
	return c.JSON(http.StatusOK, legislators)
}

// Contact godoc
// @Summary      Contact a legislator
// @Description  Records a constituent message to a legislator, optionally about a bill.
// @Tags         directory
// @Accept       json
// @Produce      json
// @Param        request body contactRequest true "message"
// @Success      201 {object} domain.ContactMessage
// @Failure      404 {object} map[string]string
// @Router       /api/contact [post]
func (h *DirectoryHandler) Contact(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return domain.ErrUnauthenticated
	}

	var req contactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	msg, err := h.contact.Send(c.Request().Context(), ports.ContactInput{
		UserID:       claims.ID,
		LegislatorID: req.LegislatorID,
		BillID:       req.BillID,
		Subject:      req.Subject,
		Message:      req.Message,
		Position:     req.Position,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, msg)
}
