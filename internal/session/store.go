package session

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is the only negative outcome callers above the
	// sanitizer ever observe: the record does not exist (or was corrupt
	// and has been discarded).
	ErrNotFound = errors.New("session: not found")

	// ErrUnavailable tags store I/O failures so callers can fail closed
	// on authenticated routes instead of matching driver error strings.
	ErrUnavailable = errors.New("session: store unavailable")
)

// Store is the durable key-value store holding session records. Each
// namespace maps to its own partition; a record written under one
// namespace is invisible to the other.
type Store interface {
	Get(ctx context.Context, ns Namespace, id string) (*Record, error)
	Set(ctx context.Context, ns Namespace, rec *Record, ttl time.Duration) error
	Destroy(ctx context.Context, ns Namespace, id string) error
}
