package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strings"
)

// Signer authenticates session ids placed in cookies so a client cannot
// forge or tamper with them. The cookie value format is "<id>.<signature>"
// with the signature base64url-encoded.
type Signer struct {
	key []byte
}

func NewSigner(secret string) *Signer {
	return &Signer{key: []byte(secret)}
}

// Sign returns the cookie value for the given session id.
func (s *Signer) Sign(id string) string {
	return id + "." + s.signature(id)
}

// Verify checks a cookie value and returns the embedded session id.
// A missing or invalid signature yields ok=false; the caller must treat
// the cookie as absent.
func (s *Signer) Verify(value string) (id string, ok bool) {
	i := strings.LastIndexByte(value, '.')
	if i <= 0 || i == len(value)-1 {
		return "", false
	}
	id, sig := value[:i], value[i+1:]
	if !hmac.Equal([]byte(sig), []byte(s.signature(id))) {
		return "", false
	}
	return id, true
}

func (s *Signer) signature(id string) string {
	mac := hmac.New(sha256.New, s.key)
	mac.Write([]byte(id))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
