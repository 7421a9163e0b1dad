package password

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost trades hash speed for brute-force resistance; 12 keeps a
// login under ~250ms on current hardware.
const bcryptCost = 12

// MinLength is the minimum accepted password length
const MinLength = 8

// Hash derives a bcrypt hash from a plaintext password
func Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether plaintext matches a stored bcrypt hash
func Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// HashToken derives the SHA-256 digest used to index refresh tokens.
// Tokens are stored hashed so a leaked table cannot replay sessions.
func HashToken(token string) string {
	digest := sha256.Sum256([]byte(token))
	return hex.EncodeToString(digest[:])
}

// ValidatePassword checks the password against the length policy
func ValidatePassword(plaintext string) bool {
	return len(plaintext) >= MinLength
}
