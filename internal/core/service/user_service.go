package service

import (
	"context"

	"github.com/cryptodata/crypto-data-api/internal/core/domain"
	"github.com/cryptodata/crypto-data-api/internal/core/ports"
)

const (
	defaultPageSize = 100
	maxPageSize     = 1000
)

// UserService implements the administrative account operations.
type UserService struct {
	users ports.UserRepository
}

func NewUserService(users ports.UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) ListUsers(ctx context.Context, skip, limit int) ([]*domain.User, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return s.users.List(ctx, skip, limit)
}

func (s *UserService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

// UpdateRole changes a user's role. Only values from the closed role
// enumeration are accepted.
func (s *UserService) UpdateRole(ctx context.Context, id string, role domain.Role) (*domain.User, error) {
	if !role.Valid() {
		return nil, domain.ErrInvalidRole
	}
	return s.users.UpdateRole(ctx, id, role)
}

// Deactivate clears is_active. Already-issued tokens for the subject
// stay cryptographically valid until expiry; the guard chain rejects
// them at the account-active stage on the next request.
func (s *UserService) Deactivate(ctx context.Context, id string) (*domain.User, error) {
	return s.users.SetActive(ctx, id, false)
}
