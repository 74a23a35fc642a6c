package ports

import "time"

// TokenService issues and verifies signed bearer tokens. Tokens are
// stateless: once issued they stay valid until expiry and cannot be
// revoked server-side.
type TokenService interface {
	// Issue signs a token for subject with the configured default
	// lifetime.
	Issue(subject string) (string, error)
	// IssueWithTTL signs a token expiring exactly ttl from now. A zero
	// or negative ttl produces a token that is already expired.
	IssueWithTTL(subject string, ttl time.Duration) (string, error)
	// Verify checks signature, expiry and subject presence. Every
	// failure mode yields domain.ErrUnauthenticated; callers cannot
	// distinguish why a token was rejected.
	Verify(token string) (subject string, err error)
}
