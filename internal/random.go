package internal

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// resetTokenBytes is the entropy of a raw reset token. 32 bytes encode to
// 64 hex characters.
const resetTokenBytes = 32

// NewResetToken returns a cryptographically random reset token, hex-encoded
// for out-of-band transport. The raw token is handed to the caller once and
// never persisted; storage only ever sees its hash.
func NewResetToken() (string, error) {
	raw := make([]byte, resetTokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return hex.EncodeToString(raw), nil
}

// HashResetToken returns the hex-encoded SHA-256 of a raw token. The hash is
// deterministic so a presented token can be matched against storage by
// recomputation.
func HashResetToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// TokenHashEqual compares two hex-encoded token hashes in constant time.
func TokenHashEqual(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
