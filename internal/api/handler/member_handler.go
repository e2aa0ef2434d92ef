package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ncissues/civic-api/internal/core/ports"
)

// MemberHandler serves voter-record lookup and the self-service claim flow.
type MemberHandler struct {
	members ports.MemberService
	log     zerolog.Logger
}

func NewMemberHandler(members ports.MemberService, log zerolog.Logger) *MemberHandler {
	return &MemberHandler{members: members, log: log}
}

type claimMemberRequest struct {
	VoterRegNum string `json:"voter_reg_num"`
	NCID        string `json:"ncid"`
	Email       string `json:"email" validate:"omitempty,email"`
	Phone       string `json:"phone"`
	Password    string `json:"password" validate:"omitempty,min=8"`
}

// Lookup godoc
// @Summary      Look up a voter record
// @Description  Finds a member by voter registration number, NCID, or email.
// @Tags         members
// @Produce      json
// @Param        voter_reg_num query string false "voter registration number"
// @Param        ncid          query string false "NCID"
// @Param        email         query string false "email"
// @Success      200 {object} domain.Member
// @Failure      400 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Router       /api/members [get]
func (h *MemberHandler) Lookup(c echo.Context) error {
	lookup := ports.MemberLookup{
		VoterRegNum: c.QueryParam("voter_reg_num"),
		NCID:        c.QueryParam("ncid"),
		Email:       c.QueryParam("email"),
	}
	if lookup.VoterRegNum == "" && lookup.NCID == "" && lookup.Email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "voter_reg_num, ncid, or email is required")
	}

	member, err := h.members.Lookup(c.Request().Context(), lookup)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, member)
}

// Claim godoc
// @Summary      Claim a voter record
// @Description  Sets email, phone, and password on the member identified by voter record.
// @Tags         members
// @Accept       json
// @Produce      json
// @Param        request body claimMemberRequest true "claim"
// @Success      200 {object} domain.Member
// @Failure      404 {object} map[string]string
// @Router       /api/members [post]
func (h *MemberHandler) Claim(c echo.Context) error {
	var req claimMemberRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.VoterRegNum == "" && req.NCID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "voter_reg_num or ncid is required")
	}

	member, err := h.members.Claim(c.Request().Context(), ports.MemberClaimInput{
		VoterRegNum: req.VoterRegNum,
		NCID:        req.NCID,
		Email:       req.Email,
		Phone:       req.Phone,
		Password:    req.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, member)
}
