package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cryptodata/crypto-data-api/internal/api/middleware"
	"github.com/cryptodata/crypto-data-api/internal/core/domain"
)

// currentUser extracts the identity injected by the Auth middleware and
// fast-fails before any service call when it is absent: a missing
// identity on a guarded route means the middleware was not registered,
// which must never be treated as an anonymous caller.
func currentUser(c echo.Context) (*domain.User, error) {
	user := middleware.Identity(c)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication context")
	}
	return user, nil
}
