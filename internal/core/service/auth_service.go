package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"github.com/cryptodata/crypto-data-api/internal/core/domain"
	"github.com/cryptodata/crypto-data-api/internal/core/ports"
	"github.com/cryptodata/crypto-data-api/internal/pkg/password"
)

// RegistrationConfig is the process-wide registration gate policy,
// loaded once at startup and immutable afterwards.
type RegistrationConfig struct {
	Enabled bool
	// Secret gates self-service registration. An empty value means
	// registration is effectively disabled, never "any secret accepted".
	Secret string
	// AdminSecret additionally elevates a new account to admin. An
	// empty value means elevation is never possible.
	AdminSecret string
}

// AuthService implements login and the gated registration flow.
type AuthService struct {
	users        ports.UserRepository
	tokens       ports.TokenService
	registration RegistrationConfig
}

func NewAuthService(users ports.UserRepository, tokens ports.TokenService, registration RegistrationConfig) *AuthService {
	return &AuthService{users: users, tokens: tokens, registration: registration}
}

// Login verifies the credentials and issues a bearer token with the
// default lifetime. Unknown username and wrong password return the same
// error so responses carry no account-existence oracle.
func (s *AuthService) Login(ctx context.Context, username, pass string) (string, error) {
	if username == "" || pass == "" {
		return "", domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if !password.Verify(pass, user.PasswordHash) {
		return "", domain.ErrInvalidCredentials
	}

	return s.tokens.Issue(user.Username)
}

// Register runs the registration gate:
//
//  1. registration must be enabled (and a secret configured),
//  2. the supplied registration secret must match,
//  3. the initial role is admin only when the elevation secret matches
//     a configured one, otherwise user,
//  4. the username must be unique (the store's unique index is the
//     authoritative guard; the lookup here is an early exit),
//  5. the password is hashed and the identity persisted active.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if !s.registration.Enabled || s.registration.Secret == "" {
		return nil, domain.ErrRegistrationDisabled
	}
	if !secretsEqual(in.RegistrationSecret, s.registration.Secret) {
		return nil, domain.ErrForbidden
	}

	role := domain.RoleUser
	if in.AdminSecret != "" && s.registration.AdminSecret != "" &&
		secretsEqual(in.AdminSecret, s.registration.AdminSecret) {
		role = domain.RoleAdmin
	}

	if _, err := s.users.FindByUsername(ctx, in.Username); err == nil {
		return nil, domain.ErrDuplicateUsername
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := password.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		IsActive:     true,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return s.users.Create(ctx, user)
}

// secretsEqual compares shared secrets in constant time.
func secretsEqual(supplied, configured string) bool {
	return subtle.ConstantTimeCompare([]byte(supplied), []byte(configured)) == 1
}
