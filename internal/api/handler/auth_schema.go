package handler

import (
	"github.com/ncissues/civic-api/internal/core/domain"
	"github.com/ncissues/civic-api/internal/core/ports"
)

// memberLoginRequest accepts email+password or the voter-record pair.
type memberLoginRequest struct {
	Email       string `json:"email" validate:"omitempty,email"`
	VoterRegNum string `json:"voter_reg_num"`
	NCID        string `json:"ncid"`
	Password    string `json:"password" validate:"required"`
}

type adminLoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type registerPublicRequest struct {
	FullName    string `json:"full_name" validate:"required"`
	PhoneNumber string `json:"phone_number" validate:"required"`
	Email       string `json:"email" validate:"omitempty,email"`
}

// loginResponse returns the authenticated identity. The token travels in the
// auth_token cookie, not the body.
type loginResponse struct {
	Member     *domain.Member     `json:"member,omitempty"`
	Admin      *domain.AdminUser  `json:"admin,omitempty"`
	PublicUser *domain.PublicUser `json:"user,omitempty"`
}

type meResponse struct {
	Type       string             `json:"type"`
	Member     *domain.Member     `json:"member,omitempty"`
	Admin      *domain.AdminUser  `json:"admin,omitempty"`
	PublicUser *domain.PublicUser `json:"user,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func newLoginResponse(res *ports.LoginResult) loginResponse {
	return loginResponse{Member: res.Member, Admin: res.Admin, PublicUser: res.PublicUser}
}
