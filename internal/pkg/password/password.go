// Package password is the credential store: it hashes and verifies
// passwords with bcrypt and never handles plaintext beyond the call
// boundary. Both functions are stateless and safe for concurrent use.
package password

import "golang.org/x/crypto/bcrypt"

// bcrypt operates on at most 72 bytes; longer inputs are rejected rather
// than silently truncated.
const maxLength = 72

// Hash returns the salted bcrypt hash of plain.
func Hash(plain string) (string, error) {
	if len(plain) > maxLength {
		return "", bcrypt.ErrPasswordTooLong
	}
	h, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Verify reports whether plain matches hash. Malformed hashes yield
// false, never an error or panic.
func Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
