package session

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// idBytes is the entropy of a session id. 16 bytes yields 32 hex
// characters; collision resistance is left to the generator, ids are
// never checked for uniqueness.
const idBytes = 16

// GenerateID returns a cryptographically secure random session id.
func GenerateID() (string, error) {
	b := make([]byte, idBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("session: generate id: %w", err)
	}
	return hex.EncodeToString(b), nil
}
