// Package gate implements the passphrase gate in front of the content.
//
// The gate is a single client-side digest comparison. It has no rate
// limiting and no lockout, and the target digest ships with the program,
// so it is not an authentication boundary.
package gate

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// Validator compares candidate secrets against a fixed SHA-256 digest
type Validator struct {
	target string
}

// NewValidator creates a validator for a lowercase hex SHA-256 digest
func NewValidator(targetHex string) (*Validator, error) {
	target := strings.ToLower(strings.TrimSpace(targetHex))
	raw, err := hex.DecodeString(target)
	if err != nil {
		return nil, fmt.Errorf("target digest: %w", err)
	}
	if len(raw) != sha256.Size {
		return nil, fmt.Errorf("target digest is %d bytes, want %d", len(raw), sha256.Size)
	}
	return &Validator{target: target}, nil
}

// Digest returns the lowercase hex SHA-256 of s
func Digest(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// Validate reports whether candidate hashes to the target digest
func (v *Validator) Validate(candidate string) bool {
	return Digest(candidate) == v.target
}
