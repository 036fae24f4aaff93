package session

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
)

// Sanitizer wraps a Store and guarantees that no structurally invalid
// record is ever handed to the authentication layer. Shared stores can
// accumulate records written by a prior, incompatible schema version;
// those are deleted on read and reported as not found, costing the
// affected client a re-authentication instead of a crash.
type Sanitizer struct {
	store Store
	log   zerolog.Logger

	// healed is called when a corrupt record is discarded; used to feed
	// metrics without importing them here.
	healed func(ns Namespace)
}

func NewSanitizer(store Store, log zerolog.Logger) *Sanitizer {
	return &Sanitizer{store: store, log: log, healed: func(Namespace) {}}
}

// OnHeal registers a callback invoked each time a corrupt record is
// destroyed.
func (s *Sanitizer) OnHeal(fn func(ns Namespace)) {
	if fn != nil {
		s.healed = fn
	}
}

// Get loads a record, validating its structural integrity. A record with a
// missing or non-temporal expiry, or one already past it, is destroyed
// (best effort) and reported as ErrNotFound. Callers only ever observe
// "found valid" or "not found".
func (s *Sanitizer) Get(ctx context.Context, ns Namespace, id string) (*Record, error) {
	rec, err := s.store.Get(ctx, ns, id)
	if err != nil {
		return nil, err
	}
	if rec.Valid(time.Now().UTC()) {
		return rec, nil
	}

	s.log.Warn().
		Str("namespace", string(ns)).
		Str("session_id", id).
		Time("expires_at", rec.ExpiresAt).
		Msg("discarding structurally invalid session record")
	s.healed(ns)

	if derr := s.store.Destroy(ctx, ns, id); derr != nil && !errors.Is(derr, ErrNotFound) {
		s.log.Error().Err(derr).
			Str("namespace", string(ns)).
			Str("session_id", id).
			Msg("failed to destroy corrupt session record")
	}
	return nil, ErrNotFound
}

// Set passes through to the store. The writer is trusted: every record it
// persists was produced by this same system.
func (s *Sanitizer) Set(ctx context.Context, ns Namespace, rec *Record, ttl time.Duration) error {
	return s.store.Set(ctx, ns, rec, ttl)
}

// Destroy passes through to the store.
func (s *Sanitizer) Destroy(ctx context.Context, ns Namespace, id string) error {
	return s.store.Destroy(ctx, ns, id)
}
