package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ncissues/civic-api/internal/core/access"
	"github.com/ncissues/civic-api/internal/core/domain"
	"github.com/ncissues/civic-api/internal/core/ports"
)

// RequireType restricts a route to the given identity types (member, admin,
// public). Auth must run first.
func RequireType(types ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(types))
	for _, t := range types {
		allowed[t] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			if _, ok := allowed[claims.Type]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "access forbidden")
			}
			return next(c)
		}
	}
}

// RequireAdmin restricts a route to admin identities, optionally narrowed to
// specific admin roles.
func RequireAdmin(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			if claims.Type != domain.UserTypeAdmin {
				return echo.NewHTTPError(http.StatusForbidden, "access forbidden")
			}
			if len(allowed) > 0 {
				if _, ok := allowed[claims.Role]; !ok {
					return echo.NewHTTPError(http.StatusForbidden, "access forbidden")
				}
			}
			return next(c)
		}
	}
}

// RequireFeature gates a route on tier-based feature access. The member
// profile is loaded to resolve the effective tier, since subscription status
// is not carried in the token.
func RequireFeature(feature access.Feature, members ports.MemberRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			user := &access.User{Type: claims.Type}
			if claims.Type == domain.UserTypeMember {
				member, err := members.FindByID(c.Request().Context(), claims.ID)
				if err != nil {
					if errors.Is(err, domain.ErrMemberNotFound) {
						return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
					}
					return err
				}
				user.Tier = member.Tier
				user.SubscriptionStatus = member.SubscriptionStatus
				user.IsContributor = member.IsContributor
			}

			if check := access.NeedsUpgrade(user, feature); check.NeedsUpgrade {
				return fmt.Errorf("%w: %s", domain.ErrUpgradeRequired, check.Message)
			}
			return next(c)
		}
	}
}
