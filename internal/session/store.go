// Package session keeps login sessions in Redis. The cookie only carries an
// opaque token; everything else lives server-side under a TTL.
package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	models "github.com/tripwell/tripwell/internal"
	"github.com/tripwell/tripwell/pkg/config"
)

type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(cfg config.RedisConfig, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		ttl:    ttl,
	}
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Create assigns a fresh token and stores the session under it.
func (s *RedisStore) Create(ctx context.Context, sess *models.Session) error {
	sess.Token = uuid.NewString()
	payload, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKey(sess.Token), payload, s.ttl).Err()
}

// Get resolves a token to its session; an unknown or expired token yields
// (nil, nil), not an error.
func (s *RedisStore) Get(ctx context.Context, token string) (*models.Session, error) {
	data, err := s.client.Get(ctx, sessionKey(token)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var sess models.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, err
	}
	sess.Token = token
	return &sess, nil
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, sessionKey(token)).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func sessionKey(token string) string {
	return "session:" + token
}
