package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/cryptodata/crypto-data-api/internal/api/metrics"
	"github.com/cryptodata/crypto-data-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps the domain failure taxonomy to fixed HTTP status codes and
//     fixed, non-leaking messages.
//   - Attaches the WWW-Authenticate challenge on every 401.
//   - Logs unexpected errors internally without leaking details to the
//     client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if code == http.StatusUnauthorized {
			c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
		}
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Guard chain failures. The message for all unauthenticated cases is
	// the same whatever stage rejected the request.
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		metrics.GuardRejectionsTotal.WithLabelValues("unauthenticated").Inc()
		return http.StatusUnauthorized, domain.ErrUnauthenticated.Error()
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, domain.ErrInvalidCredentials.Error()
	case errors.Is(err, domain.ErrAccountInactive):
		metrics.GuardRejectionsTotal.WithLabelValues("inactive").Inc()
		return http.StatusBadRequest, domain.ErrAccountInactive.Error()
	case errors.Is(err, domain.ErrInsufficientRole):
		metrics.GuardRejectionsTotal.WithLabelValues("insufficient_role").Inc()
		return http.StatusForbidden, domain.ErrInsufficientRole.Error()
	}

	// Registration gate and admin operation failures.
	switch {
	case errors.Is(err, domain.ErrRegistrationDisabled):
		return http.StatusForbidden, domain.ErrRegistrationDisabled.Error()
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, domain.ErrForbidden.Error()
	case errors.Is(err, domain.ErrDuplicateUsername):
		return http.StatusBadRequest, domain.ErrDuplicateUsername.Error()
	case errors.Is(err, domain.ErrInvalidRole):
		return http.StatusBadRequest, domain.ErrInvalidRole.Error()
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, domain.ErrUserNotFound.Error()
	case errors.Is(err, domain.ErrNoMarketData):
		return http.StatusNotFound, domain.ErrNoMarketData.Error()
	}

	// Store unreachable: a failure of the whole request, surfaced as 5xx.
	if errors.Is(err, domain.ErrStoreUnavailable) {
		log.Error().Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg("storage unavailable")
		return http.StatusServiceUnavailable, domain.ErrStoreUnavailable.Error()
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
