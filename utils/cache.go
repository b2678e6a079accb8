package utils

import (
	"context"
	"fmt"
	"time"

	"servicehub/config"

	"github.com/go-redis/redis/v8"
)

// RedisClients groups the dedicated Redis databases.
type RedisClients struct {
	// Cache holds general cached reads (settings).
	Cache *redis.Client
	// Auth caches verified token hashes.
	Auth *redis.Client
	// Session holds booking wizard sessions.
	Session *redis.Client
}

// NewRedisClient connects to one Redis database and pings it.
func NewRedisClient(db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis db %d: %w", db, err)
	}
	return client, nil
}

// InitRedis opens the cache, auth and session databases.
func InitRedis() (*RedisClients, error) {
	cache, err := NewRedisClient(config.AppConfig.RedisCacheDB)
	if err != nil {
		return nil, err
	}
	auth, err := NewRedisClient(config.AppConfig.RedisAuthDB)
	if err != nil {
		return nil, err
	}
	session, err := NewRedisClient(config.AppConfig.RedisSessionDB)
	if err != nil {
		return nil, err
	}
	return &RedisClients{Cache: cache, Auth: auth, Session: session}, nil
}

// All returns every client, for health checks and shutdown.
func (r *RedisClients) All() []*redis.Client {
	return []*redis.Client{r.Cache, r.Auth, r.Session}
}

func (r *RedisClients) Close() {
	for _, c := range r.All() {
		_ = c.Close()
	}
}
