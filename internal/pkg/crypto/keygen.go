// Package crypto provides cryptographic utilities for the catalog server.
package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// TokenBytes is the entropy of a bearer token, in bytes.
// Tokens are hex encoded, so the wire form is twice this length.
const TokenBytes = 32

// GenerateToken generates a random opaque bearer token.
// Returns a 64-character hex string.
func GenerateToken() (string, error) {
	buf := make([]byte, TokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
