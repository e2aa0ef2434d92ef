package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ncissues/civic-api/internal/api/metrics"
	"github.com/ncissues/civic-api/internal/api/middleware"
	"github.com/ncissues/civic-api/internal/core/domain"
	"github.com/ncissues/civic-api/internal/core/ports"
)

const (
	memberCookieTTL = 7 * 24 * time.Hour
	publicCookieTTL = 30 * 24 * time.Hour
)

// AuthHandler serves login, registration, logout, and session resolution.
type AuthHandler struct {
	auth         ports.AuthService
	cookieSecure bool
	log          zerolog.Logger
}

func NewAuthHandler(auth ports.AuthService, cookieSecure bool, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, cookieSecure: cookieSecure, log: log}
}

// LoginMember godoc
// @Summary      Member login
// @Description  Authenticates a member by email or voter record and sets the session cookie.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body memberLoginRequest true "credentials"
// @Success      200 {object} loginResponse
// @Failure      401 {object} map[string]string
// @Router       /api/auth/login [post]
func (h *AuthHandler) LoginMember(c echo.Context) error {
	var req memberLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res, err := h.auth.LoginMember(c.Request().Context(), ports.MemberLoginInput{
		Email:       req.Email,
		VoterRegNum: req.VoterRegNum,
		NCID:        req.NCID,
		Password:    req.Password,
	})
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("member", "failure").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("member", "success").Inc()
	h.setAuthCookie(c, res.Token, memberCookieTTL)
	return c.JSON(http.StatusOK, newLoginResponse(res))
}

// LoginAdmin godoc
// @Summary      Admin login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body adminLoginRequest true "credentials"
// @Success      200 {object} loginResponse
// @Failure      401 {object} map[string]string
// @Router       /api/auth/admin/login [post]
func (h *AuthHandler) LoginAdmin(c echo.Context) error {
	var req adminLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res, err := h.auth.LoginAdmin(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("admin", "failure").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("admin", "success").Inc()
	h.setAuthCookie(c, res.Token, memberCookieTTL)
	return c.JSON(http.StatusOK, newLoginResponse(res))
}

// RegisterPublic godoc
// @Summary      Public registration
// @Description  Creates the lightweight public-tier identity from a name and phone number.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body registerPublicRequest true "registration"
// @Success      201 {object} loginResponse
// @Failure      409 {object} map[string]string
// @Router       /api/auth/register-public [post]
func (h *AuthHandler) RegisterPublic(c echo.Context) error {
	var req registerPublicRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res, err := h.auth.RegisterPublic(c.Request().Context(), ports.RegisterPublicInput{
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
	})
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("public", "failure").Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("public", "success").Inc()

	h.setAuthCookie(c, res.Token, publicCookieTTL)
	return c.JSON(http.StatusCreated, newLoginResponse(res))
}

// Logout godoc
// @Summary      Logout
// @Description  Clears the session cookie.
// @Tags         auth
// @Produce      json
// @Success      200 {object} messageResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	h.clearAuthCookie(c)
	return c.JSON(http.StatusOK, messageResponse{Message: "logged out"})
}

// Me godoc
// @Summary      Current session
// @Description  Resolves the session cookie to the authenticated identity.
// @Tags         auth
// @Produce      json
// @Success      200 {object} meResponse
// @Failure      401 {object} map[string]string
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return domain.ErrUnauthenticated
	}

	res, err := h.auth.CurrentUser(c.Request().Context(), claims)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, meResponse{
		Type:       res.Claims.Type,
		Member:     res.Member,
		Admin:      res.Admin,
		PublicUser: res.PublicUser,
	})
}

func (h *AuthHandler) setAuthCookie(c echo.Context, token string, ttl time.Duration) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.AuthCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearAuthCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.AuthCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
