package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ncissues/civic-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrPasswordNotSet):
		return http.StatusUnauthorized, "account has not been claimed yet"
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, "authentication required"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrUpgradeRequired):
		return http.StatusForbidden, err.Error()

	case errors.Is(err, domain.ErrMemberNotFound):
		return http.StatusNotFound, "member not found"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, domain.ErrBillNotFound):
		return http.StatusNotFound, "bill not found"
	case errors.Is(err, domain.ErrIssueNotFound):
		return http.StatusNotFound, "issue not found"
	case errors.Is(err, domain.ErrTrackedNotFound):
		return http.StatusNotFound, "tracked bill not found"
	case errors.Is(err, domain.ErrEventNotFound):
		return http.StatusNotFound, "event not found"
	case errors.Is(err, domain.ErrSubscriptionNotFound):
		return http.StatusNotFound, "subscription not found"
	case errors.Is(err, domain.ErrCommitteeNotFound):
		return http.StatusNotFound, "committee not found"
	case errors.Is(err, domain.ErrLegislatorNotFound):
		return http.StatusNotFound, "legislator not found"
	case errors.Is(err, domain.ErrCommentNotFound):
		return http.StatusNotFound, "comment not found"

	case errors.Is(err, domain.ErrBillExists):
		return http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrPhoneExists):
		return http.StatusConflict, err.Error()

	case errors.Is(err, domain.ErrAlreadyTracked),
		errors.Is(err, domain.ErrCommentEmpty),
		errors.Is(err, domain.ErrCommentTooLong),
		errors.Is(err, domain.ErrCommentParentMissing):
		return http.StatusBadRequest, err.Error()
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
