package ports

import (
	"context"

	"github.com/cryptodata/crypto-data-api/internal/core/domain"
)

// RegisterInput carries candidate account fields plus the shared-secret
// headers consumed by the registration gate.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	// RegistrationSecret is the X-Registration-Secret header value.
	RegistrationSecret string
	// AdminSecret is the X-Admin-Secret header value; when it matches
	// the configured elevation secret the account is created as admin.
	AdminSecret string
}

// AuthService implements login and gated registration.
type AuthService interface {
	// Login verifies credentials and returns a signed bearer token.
	// Unknown usernames and wrong passwords produce the same error.
	Login(ctx context.Context, username, password string) (string, error)
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
}
