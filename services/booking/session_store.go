package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"servicehub/models"
	"servicehub/utils"

	"github.com/go-redis/redis/v8"
)

// SessionStore persists wizard sessions between requests.
type SessionStore interface {
	Save(ctx context.Context, s *models.BookingSession) error
	Get(ctx context.Context, id string) (*models.BookingSession, error)
	Delete(ctx context.Context, id string) error
}

// RedisSessionStore keeps sessions as JSON under utils.SessionPrefix with a sliding TTL.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl}
}

func (r *RedisSessionStore) Save(ctx context.Context, s *models.BookingSession) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := r.client.Set(ctx, utils.SessionPrefix+s.SessionID, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

func (r *RedisSessionStore) Get(ctx context.Context, id string) (*models.BookingSession, error) {
	data, err := r.client.Get(ctx, utils.SessionPrefix+id).Bytes()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	var s models.BookingSession
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &s, nil
}

func (r *RedisSessionStore) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, utils.SessionPrefix+id).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
