package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/ncissues/civic-api/internal/core/ports"
)

// AuthCookieName is the session cookie set on login and cleared on logout.
const AuthCookieName = "auth_token"

// claimsContextKey is where validated token claims live in the echo context.
const claimsContextKey = "auth_claims"

// Auth validates the session and injects claims into context. The cookie is
// the primary transport; an Authorization bearer header is accepted as a
// fallback for non-browser clients.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			claims, err := parseClaims(token, jwtSecret)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(claimsContextKey, claims)
			return next(c)
		}
	}
}

// OptionalAuth injects claims when a valid session is present and lets the
// request through anonymously otherwise. Used on public routes whose
// response varies by tier.
func OptionalAuth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if token := extractToken(c); token != "" {
				if claims, err := parseClaims(token, jwtSecret); err == nil {
					c.Set(claimsContextKey, claims)
				}
			}
			return next(c)
		}
	}
}

// ClaimsFrom returns the validated claims injected by Auth or OptionalAuth.
func ClaimsFrom(c echo.Context) (ports.TokenClaims, bool) {
	claims, ok := c.Get(claimsContextKey).(ports.TokenClaims)
	return claims, ok
}

func extractToken(c echo.Context) string {
	if cookie, err := c.Cookie(AuthCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := c.Request().Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return ""
}

func parseClaims(token, jwtSecret string) (ports.TokenClaims, error) {
	raw := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, raw, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return ports.TokenClaims{}, jwt.ErrTokenInvalidClaims
	}

	str := func(key string) string {
		s, _ := raw[key].(string)
		return s
	}
	return ports.TokenClaims{
		ID:          str("id"),
		Email:       str("email"),
		Role:        str("role"),
		Type:        str("type"),
		FullName:    str("full_name"),
		PhoneNumber: str("phone_number"),
	}, nil
}
