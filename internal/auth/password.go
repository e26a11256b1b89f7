// Package auth implements the credential store: one-way password hashing
// and verification. Digests are bcrypt (salted, slow) — plaintext is never
// persisted and digests are not reversible.
package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword derives a bcrypt digest from the plaintext password.
func HashPassword(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// CheckPassword reports whether plaintext matches the stored digest.
func CheckPassword(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
