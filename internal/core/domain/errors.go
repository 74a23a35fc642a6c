package domain

import "errors"

// Authentication and authorization failures. ErrUnauthenticated is
// deliberately generic: a missing header, a bad signature, an expired
// token and an unknown subject all collapse into it so clients cannot
// probe which stage rejected them.
var (
	ErrUnauthenticated  = errors.New("could not validate credentials")
	ErrAccountInactive  = errors.New("inactive user")
	ErrInsufficientRole = errors.New("insufficient privileges")
)

// Login failures. Unknown username and wrong password share one error to
// avoid an account-existence oracle.
var ErrInvalidCredentials = errors.New("incorrect username or password")

// Registration gate failures.
var (
	ErrRegistrationDisabled = errors.New("registration is disabled")
	ErrForbidden            = errors.New("access forbidden")
	ErrDuplicateUsername    = errors.New("username already registered")
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidRole  = errors.New("invalid role")
	ErrNoMarketData = errors.New("no market data found")
)

// ErrStoreUnavailable wraps persistence-layer connectivity failures so
// the boundary layer can surface them as a 5xx instead of leaking driver
// errors to clients.
var ErrStoreUnavailable = errors.New("storage unavailable")
