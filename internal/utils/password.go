package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPIN hashes a staff PIN using bcrypt.
func HashPIN(pin string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	return string(hash), err
}

// CheckPINHash compares a plaintext PIN with a bcrypt hash.
func CheckPINHash(pin, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin)) == nil
}
