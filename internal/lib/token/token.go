// Package token issues the opaque one-time tokens used for email
// verification and password reset.
package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// Generate returns 32 random bytes rendered as a 64-character hex string.
func Generate() (string, error) {
	const op = "token.Generate"
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return hex.EncodeToString(buf), nil
}

// ExpiryTime returns the moment the given number of hours from now.
func ExpiryTime(hours int) time.Time {
	return time.Now().Add(time.Duration(hours) * time.Hour)
}
