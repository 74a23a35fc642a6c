// Package guard implements the ordered authentication and authorization
// pipeline run for every protected request:
//
//	bearer header → token signature/expiry → identity lookup →
//	account active → role sufficiency
//
// Each stage is a pure function of the accumulated resolution state and
// short-circuits with a stable error. The first three stages all fail
// with domain.ErrUnauthenticated so a caller cannot tell a malformed
// header from a forged token or an unknown subject.
package guard

import (
	"context"
	"errors"
	"strings"

	"github.com/cryptodata/crypto-data-api/internal/core/domain"
	"github.com/cryptodata/crypto-data-api/internal/core/ports"
)

// state accumulates intermediate results as the stages run.
type state struct {
	header  string
	token   string
	subject string
	user    *domain.User
	minimum domain.Role
}

type stage func(ctx context.Context, st *state) error

// Chain resolves a caller's identity and checks it against a required
// minimum role. It mutates nothing but the per-call state and is safe
// for concurrent use.
type Chain struct {
	tokens ports.TokenService
	users  ports.UserRepository
	stages []stage
}

func NewChain(tokens ports.TokenService, users ports.UserRepository) *Chain {
	c := &Chain{tokens: tokens, users: users}
	c.stages = []stage{
		c.parseHeader,
		c.verifyToken,
		c.resolveIdentity,
		c.requireActive,
		c.requireRole,
	}
	return c
}

// Authenticate runs the full pipeline against a raw Authorization header
// and returns the resolved identity on success. The returned value is a
// copy; handlers cannot mutate the stored record through it.
func (c *Chain) Authenticate(ctx context.Context, authorization string, minimum domain.Role) (*domain.User, error) {
	st := &state{header: authorization, minimum: minimum}
	for _, run := range c.stages {
		if err := run(ctx, st); err != nil {
			return nil, err
		}
	}
	user := *st.user
	return &user, nil
}

// parseHeader requires a well-formed "Bearer <token>" header.
func (c *Chain) parseHeader(_ context.Context, st *state) error {
	if st.header == "" {
		return domain.ErrUnauthenticated
	}
	parts := strings.SplitN(st.header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return domain.ErrUnauthenticated
	}
	st.token = parts[1]
	return nil
}

func (c *Chain) verifyToken(_ context.Context, st *state) error {
	subject, err := c.tokens.Verify(st.token)
	if err != nil {
		return domain.ErrUnauthenticated
	}
	st.subject = subject
	return nil
}

func (c *Chain) resolveIdentity(ctx context.Context, st *state) error {
	user, err := c.users.FindByUsername(ctx, st.subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUnauthenticated
		}
		return err
	}
	st.user = user
	return nil
}

func (c *Chain) requireActive(_ context.Context, st *state) error {
	if !st.user.IsActive {
		return domain.ErrAccountInactive
	}
	return nil
}

func (c *Chain) requireRole(_ context.Context, st *state) error {
	if !st.user.Role.AtLeast(st.minimum) {
		return domain.ErrInsufficientRole
	}
	return nil
}
