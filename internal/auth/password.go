package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes is the longest password bcrypt can hash without truncation.
const MaxPasswordBytes = 72

// dummyHash is compared against when a username does not exist so that
// unknown-user and wrong-password failures cost the same.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("floodfriend-dummy-password"), bcrypt.DefaultCost)

// HashPassword creates a salted bcrypt hash of the password.
func HashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(h), nil
}

// CheckPassword verifies a password against a bcrypt hash.
// An empty hash is checked against a dummy so timing does not reveal it.
func CheckPassword(password, hash string) bool {
	if hash == "" {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
