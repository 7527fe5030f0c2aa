package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"talent-utils/internal/config"
	"talent-utils/internal/logging"
)

// RedisStore stages suggestion payloads in Redis with a TTL. Consume relies
// on GETDEL so concurrent consumers race on a single atomic operation.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	logger logging.Logger
}

// NewRedisStore creates a Redis-backed suggestion store
func NewRedisStore(cfg *config.Config) *RedisStore {
	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		// Fallback to default configuration
		opts = &redis.Options{
			Addr:     "localhost:6379",
			Password: "",
			DB:       0,
		}
	}

	if cfg.Redis.Password != "" {
		opts.Password = cfg.Redis.Password
	}
	opts.DB = cfg.Redis.DB
	opts.DialTimeout = cfg.Redis.Timeout
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	return &RedisStore{
		client: redis.NewClient(opts),
		ttl:    cfg.Suggestions.TTL,
		logger: logging.GetGlobalLogger(),
	}
}

// Put stages a suggestion payload with the configured TTL
func (r *RedisStore) Put(ctx context.Context, key string, staged StagedSuggestions) error {
	data, err := json.Marshal(staged)
	if err != nil {
		return fmt.Errorf("failed to marshal staged suggestions: %w", err)
	}

	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to stage suggestions: %w", err)
	}

	r.logger.Debug("Staged suggestions", map[string]interface{}{
		"key":  key,
		"kind": staged.Kind,
		"size": len(data),
	})

	return nil
}

// Peek returns the staged payload without removing it
func (r *RedisStore) Peek(ctx context.Context, key string) (*StagedSuggestions, error) {
	data, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read staged suggestions: %w", err)
	}
	return decodeStaged([]byte(data))
}

// Consume atomically returns and removes the staged payload via GETDEL
func (r *RedisStore) Consume(ctx context.Context, key string) (*StagedSuggestions, error) {
	data, err := r.client.GetDel(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to consume staged suggestions: %w", err)
	}
	return decodeStaged([]byte(data))
}

// Dismiss discards the staged payload. Absent keys are a no-op.
func (r *RedisStore) Dismiss(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

// IsHealthy checks the Redis connection
func (r *RedisStore) IsHealthy(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (r *RedisStore) Close() error {
	return r.client.Close()
}

func decodeStaged(data []byte) (*StagedSuggestions, error) {
	var staged StagedSuggestions
	if err := json.Unmarshal(data, &staged); err != nil {
		return nil, fmt.Errorf("failed to unmarshal staged suggestions: %w", err)
	}
	return &staged, nil
}
