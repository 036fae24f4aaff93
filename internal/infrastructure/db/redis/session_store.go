package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/velora/commerce-system/internal/session"
)

// SessionStore persists session records in Redis, one key partition per
// namespace. Records are stored as JSON with a TTL supplied by the caller
// (the manager sets it to twice the sliding window); the record's own
// absolute expiry remains authoritative and is enforced by the sanitizer.
type SessionStore struct {
	client *redis.Client
	prefix string
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client, prefix: "sess"}
}

// key partitions by namespace: sess:user:<id> vs sess:admin:<id>. A record
// written under one namespace can never resolve in the other.
func (s *SessionStore) key(ns session.Namespace, id string) string {
	return fmt.Sprintf("%s:%s:%s", s.prefix, ns, id)
}

func (s *SessionStore) Get(ctx context.Context, ns session.Namespace, id string) (*session.Record, error) {
	val, err := s.client.Get(ctx, s.key(ns, id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, session.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get: %v", session.ErrUnavailable, err)
	}

	var rec session.Record
	if err := json.Unmarshal([]byte(val), &rec); err != nil {
		// Undecodable payloads surface as a corrupt record so the
		// sanitizer path destroys them.
		return &session.Record{ID: id}, nil
	}
	return &rec, nil
}

func (s *SessionStore) Set(ctx context.Context, ns session.Namespace, rec *session.Record, ttl time.Duration) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("session store: marshal: %w", err)
	}
	if err := s.client.Set(ctx, s.key(ns, rec.ID), data, ttl).Err(); err != nil {
		return fmt.Errorf("%w: set: %v", session.ErrUnavailable, err)
	}
	return nil
}

func (s *SessionStore) Destroy(ctx context.Context, ns session.Namespace, id string) error {
	if err := s.client.Del(ctx, s.key(ns, id)).Err(); err != nil {
		return fmt.Errorf("%w: destroy: %v", session.ErrUnavailable, err)
	}
	return nil
}
