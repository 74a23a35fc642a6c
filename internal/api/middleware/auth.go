package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/cryptodata/crypto-data-api/internal/core/domain"
	"github.com/cryptodata/crypto-data-api/internal/core/guard"
)

// identityKey is the echo context key under which the resolved identity
// is stored for handlers.
const identityKey = "identity"

// Auth runs the guard chain against the Authorization header and injects
// the resolved identity into the request context. Failures surface as
// domain errors for the central error handler to map.
func Auth(chain *guard.Chain, minimum domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, err := chain.Authenticate(
				c.Request().Context(),
				c.Request().Header.Get(echo.HeaderAuthorization),
				minimum,
			)
			if err != nil {
				return err
			}
			c.Set(identityKey, user)
			return next(c)
		}
	}
}

// Identity returns the authenticated user stored by Auth, or nil when
// the route ran unguarded.
func Identity(c echo.Context) *domain.User {
	user, _ := c.Get(identityKey).(*domain.User)
	return user
}
