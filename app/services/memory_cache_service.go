package services

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/address-resolver/app/models"
)

// MemoryCacheService is an in-process result cache over an expiring LRU.
// It is the default for single-node deployments and for tests.
type MemoryCacheService struct {
	lru *expirable.LRU[string, *models.GeocodeResult]
	ttl time.Duration

	hits   atomic.Int64
	misses atomic.Int64
}

// NewMemoryCacheService creates a memory cache holding up to size entries,
// each expiring after ttl.
func NewMemoryCacheService(size int, ttl time.Duration) *MemoryCacheService {
	if size <= 0 {
		size = 10000
	}
	return &MemoryCacheService{
		lru: expirable.NewLRU[string, *models.GeocodeResult](size, nil, ttl),
		ttl: ttl,
	}
}

func (m *MemoryCacheService) Get(ctx context.Context, key models.CacheKey) (*models.GeocodeResult, bool, error) {
	if result, ok := m.lru.Get(key.String()); ok {
		m.hits.Add(1)
		return result, true, nil
	}
	m.misses.Add(1)
	return nil, false, nil
}

func (m *MemoryCacheService) Set(ctx context.Context, key models.CacheKey, result *models.GeocodeResult) error {
	m.lru.Add(key.String(), result)
	return nil
}

func (m *MemoryCacheService) Delete(ctx context.Context, key models.CacheKey) error {
	m.lru.Remove(key.String())
	return nil
}

func (m *MemoryCacheService) Clear(ctx context.Context) error {
	m.lru.Purge()
	return nil
}

// InvalidateByGazetteerVersion purges everything: the memory cache keeps no
// per-entry version metadata, so a table swap clears it wholesale.
func (m *MemoryCacheService) InvalidateByGazetteerVersion(ctx context.Context, version string) error {
	return m.Clear(ctx)
}

func (m *MemoryCacheService) GetStats(ctx context.Context) (*CacheStats, error) {
	hits := m.hits.Load()
	misses := m.misses.Load()
	total := hits + misses
	hitRate := 0.0
	if total > 0 {
		hitRate = float64(hits) / float64(total)
	}
	return &CacheStats{
		HitRate:    hitRate,
		TotalHits:  hits,
		TotalMiss:  misses,
		TotalItems: int64(m.lru.Len()),
	}, nil
}

func (m *MemoryCacheService) Exists(ctx context.Context, key models.CacheKey) (bool, error) {
	return m.lru.Contains(key.String()), nil
}

// GetTTL reports the configured TTL for present keys. The LRU does not
// expose per-entry deadlines.
func (m *MemoryCacheService) GetTTL(ctx context.Context, key models.CacheKey) (time.Duration, error) {
	if m.lru.Contains(key.String()) {
		return m.ttl, nil
	}
	return 0, nil
}

func (m *MemoryCacheService) Close() error {
	return nil
}
