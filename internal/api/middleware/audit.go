package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/cryptodata/crypto-data-api/internal/api/metrics"
	"github.com/cryptodata/crypto-data-api/internal/core/domain"
	"github.com/cryptodata/crypto-data-api/internal/core/ports"
)

// auditWriteTimeout bounds the audit insert so a slow store cannot hold
// the request goroutine indefinitely.
const auditWriteTimeout = 5 * time.Second

// ActorResolver resolves an optional actor id from a bearer token. It is
// the same token verification + identity lookup the guard chain runs,
// minus the active/role stages: the audit trail records who called, not
// whether they were allowed to.
type ActorResolver struct {
	tokens ports.TokenService
	users  ports.UserRepository
}

func NewActorResolver(tokens ports.TokenService, users ports.UserRepository) *ActorResolver {
	return &ActorResolver{tokens: tokens, users: users}
}

// Resolve returns the actor id for the Authorization header, or nil when
// there is no header, the token is invalid, or the subject is unknown.
func (r *ActorResolver) Resolve(ctx context.Context, authorization string) *string {
	parts := strings.SplitN(authorization, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil
	}
	subject, err := r.tokens.Verify(parts[1])
	if err != nil {
		return nil
	}
	user, err := r.users.FindByUsername(ctx, subject)
	if err != nil {
		return nil
	}
	return &user.ID
}

// Audit wraps the whole request cycle and persists one audit record per
// request after the response has been computed. It must be registered
// before every other middleware so error responses and panics recovered
// further down the chain are still observed.
//
// Audit never alters the outcome: handler errors are materialised
// through the central error handler and then recorded; failures while
// persisting the record are logged and discarded.
func Audit(audits ports.AuditService, actors *ActorResolver, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			if err := next(c); err != nil {
				// Route the error through the central handler so the
				// final status code exists before the record is built.
				c.Error(err)
			}

			// No response was produced at all: nothing to record.
			if !c.Response().Committed {
				return nil
			}

			// The request context may already be cancelled (client gone);
			// actor resolution and the audit write still have to run.
			writeCtx, cancel := context.WithTimeout(context.Background(), auditWriteTimeout)
			defer cancel()

			req := c.Request()
			record := &domain.AuditRecord{
				ActorID:    actors.Resolve(writeCtx, req.Header.Get(echo.HeaderAuthorization)),
				Endpoint:   req.URL.Path,
				Method:     req.Method,
				StatusCode: c.Response().Status,
				ClientHost: c.RealIP(),
				UserAgent:  req.UserAgent(),
				CreatedAt:  time.Now().UTC(),
			}

			if err := audits.Record(writeCtx, record); err != nil {
				metrics.AuditWriteFailuresTotal.Inc()
				log.Error().Err(err).
					Str("method", record.Method).
					Str("endpoint", record.Endpoint).
					Int("status", record.StatusCode).
					Msg("audit record write failed")
			} else {
				metrics.AuditRecordsTotal.Inc()
			}

			log.Debug().
				Str("method", record.Method).
				Str("endpoint", record.Endpoint).
				Int("status", record.StatusCode).
				Dur("elapsed", time.Since(start)).
				Msg("request audited")

			return nil
		}
	}
}
