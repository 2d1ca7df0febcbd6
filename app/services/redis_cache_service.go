package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/address-resolver/app/models"
)

// RedisCacheService caches geocode results in Redis as JSON payloads under a
// common key prefix, shared across resolver instances.
type RedisCacheService struct {
	client *redis.Client
	logger *zap.Logger
	prefix string
	ttl    time.Duration

	hits   atomic.Int64
	misses atomic.Int64
}

// NewRedisCacheService connects to redisURL and verifies the connection.
func NewRedisCacheService(redisURL string, ttl time.Duration, logger *zap.Logger) (*RedisCacheService, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("redis unreachable: %w", err)
	}

	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisCacheService{
		client: client,
		logger: logger,
		prefix: "addr_resolver:",
		ttl:    ttl,
	}, nil
}

func (r *RedisCacheService) Get(ctx context.Context, key models.CacheKey) (*models.GeocodeResult, bool, error) {
	cacheKey := r.prefix + key.String()

	val, err := r.client.Get(ctx, cacheKey).Result()
	if err == redis.Nil {
		r.misses.Add(1)
		return nil, false, nil
	}
	if err != nil {
		r.logger.Error("redis get failed", zap.Error(err), zap.String("key", cacheKey))
		return nil, false, err
	}

	var result models.GeocodeResult
	if err := json.Unmarshal([]byte(val), &result); err != nil {
		r.logger.Error("redis payload unmarshal failed", zap.Error(err))
		return nil, false, err
	}

	r.hits.Add(1)
	return &result, true, nil
}

func (r *RedisCacheService) Set(ctx context.Context, key models.CacheKey, result *models.GeocodeResult) error {
	cacheKey := r.prefix + key.String()

	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal cache payload: %w", err)
	}

	if err := r.client.Set(ctx, cacheKey, data, r.ttl).Err(); err != nil {
		r.logger.Error("redis set failed", zap.Error(err), zap.String("key", cacheKey))
		return err
	}
	return nil
}

func (r *RedisCacheService) Delete(ctx context.Context, key models.CacheKey) error {
	return r.client.Del(ctx, r.prefix+key.String()).Err()
}

// Clear removes every key under the resolver prefix, scanning in batches so
// a large cache does not block Redis.
func (r *RedisCacheService) Clear(ctx context.Context) error {
	iter := r.client.Scan(ctx, 0, r.prefix+"*", 500).Iterator()
	deleted := 0
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("delete key: %w", err)
		}
		deleted++
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan keys: %w", err)
	}
	r.logger.Info("redis cache cleared", zap.Int("keys_deleted", deleted))
	return nil
}

// InvalidateByGazetteerVersion clears the whole prefix: the Redis key carries
// no gazetteer version, so a table swap invalidates everything.
func (r *RedisCacheService) InvalidateByGazetteerVersion(ctx context.Context, version string) error {
	return r.Clear(ctx)
}

func (r *RedisCacheService) GetStats(ctx context.Context) (*CacheStats, error) {
	hits := r.hits.Load()
	misses := r.misses.Load()
	total := hits + misses
	hitRate := 0.0
	if total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	var items int64
	iter := r.client.Scan(ctx, 0, r.prefix+"*", 500).Iterator()
	for iter.Next(ctx) {
		items++
	}

	return &CacheStats{
		HitRate:    hitRate,
		TotalHits:  hits,
		TotalMiss:  misses,
		TotalItems: items,
	}, nil
}

func (r *RedisCacheService) Exists(ctx context.Context, key models.CacheKey) (bool, error) {
	n, err := r.client.Exists(ctx, r.prefix+key.String()).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *RedisCacheService) GetTTL(ctx context.Context, key models.CacheKey) (time.Duration, error) {
	ttl, err := r.client.TTL(ctx, r.prefix+key.String()).Result()
	if err != nil {
		return 0, err
	}
	if ttl < 0 {
		return 0, nil
	}
	return ttl, nil
}

func (r *RedisCacheService) Close() error {
	return r.client.Close()
}
