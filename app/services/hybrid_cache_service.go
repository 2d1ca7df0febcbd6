package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/address-resolver/app/models"
)

// HybridCacheService layers Redis (fast, shared) in front of MongoDB
// (durable). L2 hits are backfilled into Redis asynchronously.
type HybridCacheService struct {
	redis  *RedisCacheService
	mongo  *MongoCacheService
	logger *zap.Logger
}

func NewHybridCacheService(redis *RedisCacheService, mongo *MongoCacheService, logger *zap.Logger) *HybridCacheService {
	return &HybridCacheService{redis: redis, mongo: mongo, logger: logger}
}

func (h *HybridCacheService) Get(ctx context.Context, key models.CacheKey) (*models.GeocodeResult, bool, error) {
	result, found, err := h.redis.Get(ctx, key)
	if err != nil {
		h.logger.Warn("redis get failed, trying mongo", zap.Error(err))
	} else if found {
		return result, true, nil
	}

	result, found, err = h.mongo.Get(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if !found {
		return nil, false, nil
	}

	// Backfill L1 out of band.
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := h.redis.Set(bgCtx, key, result); err != nil {
			h.logger.Warn("mongo to redis backfill failed",
				zap.Error(err),
				zap.String("key", key.String()))
		}
	}()

	return result, true, nil
}

func (h *HybridCacheService) Set(ctx context.Context, key models.CacheKey, result *models.GeocodeResult) error {
	return h.both(func(c ICacheService) error {
		return c.Set(ctx, key, result)
	})
}

func (h *HybridCacheService) Delete(ctx context.Context, key models.CacheKey) error {
	return h.both(func(c ICacheService) error {
		return c.Delete(ctx, key)
	})
}

func (h *HybridCacheService) Clear(ctx context.Context) error {
	return h.both(func(c ICacheService) error {
		return c.Clear(ctx)
	})
}

func (h *HybridCacheService) InvalidateByGazetteerVersion(ctx context.Context, version string) error {
	err := h.both(func(c ICacheService) error {
		return c.InvalidateByGazetteerVersion(ctx, version)
	})
	if err != nil {
		return err
	}
	h.logger.Info("hybrid cache invalidated", zap.String("gazetteer_version", version))
	return nil
}

func (h *HybridCacheService) GetStats(ctx context.Context) (*CacheStats, error) {
	redisStats, redisErr := h.redis.GetStats(ctx)
	mongoStats, mongoErr := h.mongo.GetStats(ctx)

	switch {
	case redisErr != nil && mongoErr != nil:
		return nil, fmt.Errorf("both cache layers failed: %v, %v", redisErr, mongoErr)
	case redisErr != nil:
		return mongoStats, nil
	case mongoErr != nil:
		return redisStats, nil
	}

	hits := redisStats.TotalHits + mongoStats.TotalHits
	misses := redisStats.TotalMiss + mongoStats.TotalMiss
	total := hits + misses
	hitRate := 0.0
	if total > 0 {
		hitRate = float64(hits) / float64(total)
	}
	return &CacheStats{
		HitRate:    hitRate,
		TotalHits:  hits,
		TotalMiss:  misses,
		TotalItems: mongoStats.TotalItems,
	}, nil
}

func (h *HybridCacheService) Exists(ctx context.Context, key models.CacheKey) (bool, error) {
	exists, err := h.redis.Exists(ctx, key)
	if err != nil {
		h.logger.Warn("redis exists failed, trying mongo", zap.Error(err))
	} else if exists {
		return true, nil
	}
	return h.mongo.Exists(ctx, key)
}

func (h *HybridCacheService) GetTTL(ctx context.Context, key models.CacheKey) (time.Duration, error) {
	return h.redis.GetTTL(ctx, key)
}

func (h *HybridCacheService) Close() error {
	return h.both(func(c ICacheService) error {
		return c.Close()
	})
}

// WarmUp preloads the Mongo L1 from its most used documents.
func (h *HybridCacheService) WarmUp(ctx context.Context, limit int) error {
	return h.mongo.WarmUp(ctx, limit)
}

// both runs fn against the two layers in parallel and joins the errors.
func (h *HybridCacheService) both(fn func(ICacheService) error) error {
	errCh := make(chan error, 2)
	go func() { errCh <- fn(h.redis) }()
	go func() { errCh <- fn(h.mongo) }()

	var errs []error
	for i := 0; i < 2; i++ {
		if err := <-errCh; err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("hybrid cache: %v", errs)
	}
	return nil
}
