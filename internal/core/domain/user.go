package domain

import "time"

// Role is the permission level carried by a user account. Roles form a
// total order: RoleUser < RoleAdmin. A higher role satisfies any
// requirement expressed as a lower one.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// roleRank orders the closed set of roles. Unknown values rank below
// RoleUser so a corrupted record can never satisfy a role requirement.
var roleRank = map[Role]int{
	RoleUser:  1,
	RoleAdmin: 2,
}

// Valid reports whether r is one of the enumerated roles.
func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// AtLeast reports whether r satisfies a requirement of minimum.
func (r Role) AtLeast(minimum Role) bool {
	return roleRank[r] >= roleRank[minimum]
}

// User models an identity in the system. PasswordHash never leaves the
// credential/persistence boundary; the json tag enforces that on every
// response that serialises a User.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserCounts aggregates account totals for the admin stats endpoint.
type UserCounts struct {
	Total  int64 `json:"total"`
	Active int64 `json:"active"`
	Admins int64 `json:"admins"`
}
