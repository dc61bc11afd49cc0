package auth

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/nextlevel/storefront/internal/token"
)

const userKey = "user"

// WithUser resolves the Authorization header into an identity. Failures are
// soft: a malformed, expired or forged token leaves the request anonymous
// and the downstream gates decide whether that is acceptable.
func WithUser(tokens *token.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if strings.HasPrefix(header, "Bearer ") {
				raw := strings.TrimPrefix(header, "Bearer ")
				if claims, err := tokens.Verify(raw); err == nil {
					c.Set(userKey, claims)
				}
			}
			return next(c)
		}
	}
}

// UserFrom returns the identity attached by WithUser, or nil for an
// anonymous request.
func UserFrom(c echo.Context) *token.Claims {
	if claims, ok := c.Get(userKey).(*token.Claims); ok {
		return claims
	}
	return nil
}

// SetUser exists for tests that bypass the middleware chain.
func SetUser(c echo.Context, claims *token.Claims) {
	c.Set(userKey, claims)
}
