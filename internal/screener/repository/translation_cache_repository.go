package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang-stock-screener/pkg/common"

	"github.com/redis/go-redis/v9"
)

// TranslationCacheRepository memoises model translations of a query. It is
// a TTL cache, not a query history.
type TranslationCacheRepository interface {
	Get(ctx context.Context, query string) (string, bool, error)
	Set(ctx context.Context, query, translation string) error
}

type redisTranslationCacheRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisTranslationCacheRepository stores translations in redis for ttl.
func NewRedisTranslationCacheRepository(client *redis.Client, ttl time.Duration) TranslationCacheRepository {
	return &redisTranslationCacheRepository{client: client, ttl: ttl}
}

func (r *redisTranslationCacheRepository) Get(ctx context.Context, query string) (string, bool, error) {
	val, err := r.client.Get(ctx, TranslationCacheKey(query)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read translation cache: %w", err)
	}
	return val, true, nil
}

func (r *redisTranslationCacheRepository) Set(ctx context.Context, query, translation string) error {
	if err := r.client.Set(ctx, TranslationCacheKey(query), translation, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write translation cache: %w", err)
	}
	return nil
}

// TranslationCacheKey hashes the normalised query so raw user text never
// becomes part of a key.
func TranslationCacheKey(query string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(query))))
	return common.RedisKeyTranslationPrefix + hex.EncodeToString(sum[:])
}

type noopTranslationCacheRepository struct{}

// NewNoopTranslationCacheRepository is used when redis is not configured.
func NewNoopTranslationCacheRepository() TranslationCacheRepository {
	return noopTranslationCacheRepository{}
}

func (noopTranslationCacheRepository) Get(context.Context, string) (string, bool, error) {
	return "", false, nil
}

func (noopTranslationCacheRepository) Set(context.Context, string, string) error {
	return nil
}
