package ports

import (
	"context"

	"github.com/cryptodata/crypto-data-api/internal/core/domain"
)

// UserRepository defines persistence operations for user identities.
//
// Create must rely on the store's unique index on username as the
// authoritative duplicate guard and translate the store's duplicate-key
// failure into domain.ErrDuplicateUsername; any application-level
// pre-check is only an early exit.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// List returns a page of users ordered by creation time, newest first.
	List(ctx context.Context, skip, limit int) ([]*domain.User, error)
	UpdateRole(ctx context.Context, id string, role domain.Role) (*domain.User, error)
	SetActive(ctx context.Context, id string, active bool) (*domain.User, error)
	Counts(ctx context.Context) (domain.UserCounts, error)
}
