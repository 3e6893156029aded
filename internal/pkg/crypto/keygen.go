// Package crypto provides cryptographic utilities for FleetRent.
package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// TokenKeyBytes is the number of random bytes behind a token key.
// Hex encoding doubles it, yielding 40-character keys.
const TokenKeyBytes = 20

// GenerateTokenKey generates a random bearer-token key.
// Format: 40 lowercase hex characters.
func GenerateTokenKey() (string, error) {
	buf := make([]byte, TokenKeyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate token key: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
