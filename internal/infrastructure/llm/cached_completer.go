package llm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Sai-Prashanth123/resume-processor/internal/domain/llm"
	"github.com/Sai-Prashanth123/resume-processor/internal/pkg/config"
	"github.com/Sai-Prashanth123/resume-processor/internal/pkg/logger"
)

const cacheKeyPrefix = "resume-processor:completion:"

// errCacheMiss is returned by cache backends for unknown keys
var errCacheMiss = errors.New("cache miss")

// cacheBackend is the subset of Redis the completion cache needs
type cacheBackend interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

type redisBackend struct {
	client *redis.Client
}

// NewRedisClient connects to Redis and checks the connection
func NewRedisClient(settings *config.CacheSettings) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     settings.RedisAddr,
		Password: settings.RedisPassword,
		DB:       settings.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return rdb, nil
}

func (b *redisBackend) Get(ctx context.Context, key string) (string, error) {
	val, err := b.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", errCacheMiss
	}
	return val, err
}

func (b *redisBackend) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return b.client.Set(ctx, key, value, ttl).Err()
}

type cachedCompleter struct {
	next    llm.Completer
	backend cacheBackend
	ttl     time.Duration
	logger  logger.Logger
}

// NewCachedCompleter serves repeated completion requests from Redis. Cache failures are
// logged and fall through to the wrapped completer.
func NewCachedCompleter(next llm.Completer, client *redis.Client, ttl time.Duration, logger logger.Logger) llm.Completer {
	return newCachedCompleter(next, &redisBackend{client: client}, ttl, logger)
}

func newCachedCompleter(next llm.Completer, backend cacheBackend, ttl time.Duration, logger logger.Logger) *cachedCompleter {
	return &cachedCompleter{
		next:    next,
		backend: backend,
		ttl:     ttl,
		logger:  logger,
	}
}

func (c *cachedCompleter) Complete(ctx context.Context, req llm.CompletionRequest) (string, error) {
	key, err := cacheKey(req)
	if err != nil {
		return "", err
	}

	cached, err := c.backend.Get(ctx, key)
	switch {
	case err == nil:
		c.logger.Info("Completion served from cache", "key", key)
		return cached, nil
	case !errors.Is(err, errCacheMiss):
		c.logger.Warn("Completion cache lookup failed", "error", err)
	}

	content, err := c.next.Complete(ctx, req)
	if err != nil {
		return "", err
	}

	if err := c.backend.Set(ctx, key, content, c.ttl); err != nil {
		c.logger.Warn("Completion cache write failed", "error", err)
	}
	return content, nil
}

func cacheKey(req llm.CompletionRequest) (string, error) {
	raw, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to encode completion request: %w", err)
	}
	sum := sha256.Sum256(raw)
	return cacheKeyPrefix + hex.EncodeToString(sum[:]), nil
}
