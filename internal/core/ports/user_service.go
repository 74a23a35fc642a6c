package ports

import (
	"context"

	"github.com/cryptodata/crypto-data-api/internal/core/domain"
)

// UserService exposes administrative account operations.
type UserService interface {
	ListUsers(ctx context.Context, skip, limit int) ([]*domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	UpdateRole(ctx context.Context, id string, role domain.Role) (*domain.User, error)
	Deactivate(ctx context.Context, id string) (*domain.User, error)
}
