// Package auth provides password hashing and the session-based
// authentication middleware.
package auth

import (
	"regexp"

	"golang.org/x/crypto/bcrypt"
)

// usernameRe restricts usernames to plain ASCII letters and digits.
var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

// ValidUsername reports whether the username contains only ASCII letters
// and digits.
func ValidUsername(username string) bool {
	return usernameRe.MatchString(username)
}

// HashPassword returns the bcrypt hash of a password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether the password matches the stored hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
