package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps sessions in Redis as JSON blobs under a common prefix.
// A TTL bounds how long an abandoned session lingers; it is storage
// hygiene, not an authorization check.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore wraps an existing Redis client.  ttl <= 0 disables
// expiration.
func NewRedisStore(rdb *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	if prefix == "" {
		prefix = "session"
	}
	return &RedisStore{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (s *RedisStore) key(id string) string { return s.prefix + ":" + id }

// Set stores the session, overwriting any previous value under the same id.
func (s *RedisStore) Set(ctx context.Context, sess Session) error {
	blob, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	var ttl time.Duration
	if s.ttl > 0 {
		ttl = s.ttl
	}
	return s.rdb.Set(ctx, s.key(sess.ID), blob, ttl).Err()
}

// Get loads the session for id.  A missing key maps to ErrNoSession.
func (s *RedisStore) Get(ctx context.Context, id string) (Session, error) {
	blob, err := s.rdb.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Session{}, ErrNoSession
		}
		return Session{}, err
	}
	var sess Session
	if err := json.Unmarshal(blob, &sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

// Clear deletes the session.  Deleting a missing key succeeds.
func (s *RedisStore) Clear(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, s.key(id)).Err()
}
