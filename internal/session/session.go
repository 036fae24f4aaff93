// Package session implements the dual-namespace cookie session protocol:
// request classification into the user or admin namespace, signed session
// cookies, a sanitizing store wrapper that heals corrupted records, and a
// manager owning the two independent session lifecycles.
package session

import "time"

// Namespace identifies one of the two fully independent session tracks.
type Namespace string

const (
	NamespaceUser  Namespace = "user"
	NamespaceAdmin Namespace = "admin"
)

// Record is the durable server-side session state keyed by session id.
type Record struct {
	ID           string            `json:"id"`
	AuthIdentity string            `json:"auth_identity,omitempty"`
	Values       map[string]string `json:"values,omitempty"`
	ExpiresAt    time.Time         `json:"expires_at"`
	LastAccess   time.Time         `json:"last_access"`
}

// NewRecord creates a fresh anonymous record with a generated id.
func NewRecord(maxAge time.Duration) (*Record, error) {
	id, err := GenerateID()
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &Record{
		ID:         id,
		ExpiresAt:  now.Add(maxAge),
		LastAccess: now,
	}, nil
}

// Authenticated reports whether the record carries an auth identity.
func (r *Record) Authenticated() bool {
	return r.AuthIdentity != ""
}

// Authenticate binds the record to a principal id.
func (r *Record) Authenticate(principalID string) {
	r.AuthIdentity = principalID
}

// ClearIdentity returns the record to the anonymous state in place.
func (r *Record) ClearIdentity() {
	r.AuthIdentity = ""
}

// Touch applies the rolling-expiry contract: last access moves to now and
// the absolute expiry is re-extended from now, not from issuance.
func (r *Record) Touch(maxAge time.Duration) {
	now := time.Now().UTC()
	r.LastAccess = now
	r.ExpiresAt = now.Add(maxAge)
}

// Valid reports whether the record is structurally sound: a well-formed
// expiry that has not yet passed. Records failing this check must never be
// surfaced to application code.
func (r *Record) Valid(now time.Time) bool {
	if r.ID == "" || r.ExpiresAt.IsZero() {
		return false
	}
	return r.ExpiresAt.After(now)
}
