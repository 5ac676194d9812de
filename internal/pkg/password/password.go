// Package password turns plaintext passwords into non-reversible verifiers
// and checks attempts against them. Verifiers are "hex(key).hex(salt)" with a
// fresh 16-byte salt per call; derivation uses scrypt so a brute-force attempt
// pays tens of milliseconds of CPU and memory per guess. The cost parameters
// are constants on purpose.
package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/scrypt"
)

const (
	saltLen = 16
	keyLen  = 32

	scryptN = 32768
	scryptR = 8
	scryptP = 1
)

// Hash derives a verifier for the given plaintext password.
// It fails only if the entropy source or the derivation itself fails.
func Hash(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, keyLen)
	if err != nil {
		return "", fmt.Errorf("failed to derive key: %w", err)
	}

	return hex.EncodeToString(key) + "." + hex.EncodeToString(salt), nil
}

// Verify re-derives the key from the attempt using the verifier's salt and
// compares the two in constant time. A malformed verifier verifies false
// rather than erroring, so storage corruption cannot leak format details
// through error behavior.
func Verify(password, verifier string) bool {
	parts := strings.Split(verifier, ".")
	if len(parts) != 2 {
		return false
	}

	stored, err := hex.DecodeString(parts[0])
	if err != nil || len(stored) != keyLen {
		return false
	}

	salt, err := hex.DecodeString(parts[1])
	if err != nil || len(salt) == 0 {
		return false
	}

	key, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, keyLen)
	if err != nil {
		return false
	}

	return subtle.ConstantTimeCompare(stored, key) == 1
}
