package util

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

const resetSecretBytes = 32

// NewResetSecret returns a fresh random reset secret as a hex string. The raw
// value goes into the reset URL; callers must persist only its digest.
func NewResetSecret() (string, error) {
	buf := make([]byte, resetSecretBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// HashResetSecret is the one-way function applied to reset secrets before
// storage and again at lookup time.
func HashResetSecret(secret string) []byte {
	sum := sha256.Sum256([]byte(secret))
	return sum[:]
}

func ResetSecretMatches(secret string, storedHash []byte) bool {
	if len(storedHash) == 0 {
		return false
	}
	candidate := HashResetSecret(secret)
	return subtle.ConstantTimeCompare(candidate, storedHash) == 1
}
