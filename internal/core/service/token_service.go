package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/cryptodata/crypto-data-api/internal/core/domain"
)

// signingMethods maps the configurable algorithm names to their jwt
// implementations. Only the HMAC family is supported: the signing key is
// a process-wide shared secret, not a key pair.
var signingMethods = map[string]*jwt.SigningMethodHMAC{
	"HS256": jwt.SigningMethodHS256,
	"HS384": jwt.SigningMethodHS384,
	"HS512": jwt.SigningMethodHS512,
}

// TokenService issues and verifies signed bearer tokens carrying a
// subject and an expiry. It holds no per-call state and is safe for
// unrestricted concurrent use.
type TokenService struct {
	secret     []byte
	method     *jwt.SigningMethodHMAC
	defaultTTL time.Duration
	log        zerolog.Logger
}

// NewTokenService builds a TokenService. The secret is required; an
// empty secret or an unknown algorithm is a configuration error the
// caller should treat as fatal.
func NewTokenService(secret, algorithm string, defaultTTL time.Duration, log zerolog.Logger) (*TokenService, error) {
	if secret == "" {
		return nil, fmt.Errorf("token service: signing secret is required")
	}
	method, ok := signingMethods[algorithm]
	if !ok {
		return nil, fmt.Errorf("token service: unsupported signing algorithm %q", algorithm)
	}
	if defaultTTL <= 0 {
		defaultTTL = 30 * time.Minute
	}
	return &TokenService{
		secret:     []byte(secret),
		method:     method,
		defaultTTL: defaultTTL,
		log:        log,
	}, nil
}

// Issue signs a token for subject with the configured default lifetime.
func (s *TokenService) Issue(subject string) (string, error) {
	return s.IssueWithTTL(subject, s.defaultTTL)
}

// IssueWithTTL signs a token expiring exactly ttl from now. A zero or
// negative ttl produces a token that is already expired; Verify will
// reject it.
func (s *TokenService) IssueWithTTL(subject string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	signed, err := jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature integrity, expiry and subject presence. Every
// failure collapses into domain.ErrUnauthenticated so callers cannot
// tell a forged token from an expired one; the underlying reason is only
// logged at debug level.
func (s *TokenService) Verify(token string) (string, error) {
	claims := jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != s.method.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		s.log.Debug().Err(err).Msg("token rejected")
		return "", domain.ErrUnauthenticated
	}
	if claims.Subject == "" {
		s.log.Debug().Msg("token rejected: missing subject claim")
		return "", domain.ErrUnauthenticated
	}
	return claims.Subject, nil
}
