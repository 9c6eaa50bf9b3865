package security

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltLength      = 32
	hashIterations  = 100000
	derivedKeyBytes = 32
)

// GenerateSalt returns a fresh random salt. A new salt is drawn every time a
// password is set so salts are never reused across accounts or updates.
func GenerateSalt() ([]byte, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	return salt, nil
}

// HashPassword derives a PBKDF2-SHA256 digest of the password under the salt.
func HashPassword(password string, salt []byte) []byte {
	return pbkdf2.Key([]byte(password), salt, hashIterations, derivedKeyBytes, sha256.New)
}

// VerifyPassword reports whether password hashes to digest under salt. Both the
// login and the password-update paths go through here.
func VerifyPassword(password string, salt, digest []byte) bool {
	computed := HashPassword(password, salt)
	return subtle.ConstantTimeCompare(computed, digest) == 1
}
