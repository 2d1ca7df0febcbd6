package services

import (
	"context"
	"time"

	"github.com/address-resolver/app/models"
)

// CacheStats reports cache effectiveness counters.
type CacheStats struct {
	HitRate    float64 `json:"hit_rate"`
	TotalHits  int64   `json:"total_hits"`
	TotalMiss  int64   `json:"total_miss"`
	TotalItems int64   `json:"total_items"`
}

// ICacheService is the pluggable result cache. Keys are the explicit
// {normalized address, store code} pair, never raw input text.
type ICacheService interface {
	// Get returns the cached result for key, with a found flag.
	Get(ctx context.Context, key models.CacheKey) (*models.GeocodeResult, bool, error)

	// Set stores a result under key.
	Set(ctx context.Context, key models.CacheKey, result *models.GeocodeResult) error

	// Delete removes one entry.
	Delete(ctx context.Context, key models.CacheKey) error

	// Clear removes every entry.
	Clear(ctx context.Context) error

	// InvalidateByGazetteerVersion drops entries produced with a different
	// gazetteer table, typically after a table reload.
	InvalidateByGazetteerVersion(ctx context.Context, version string) error

	// GetStats returns hit/miss counters.
	GetStats(ctx context.Context) (*CacheStats, error)

	// Exists reports whether key is cached.
	Exists(ctx context.Context, key models.CacheKey) (bool, error)

	// GetTTL returns the remaining lifetime of key, zero when absent.
	GetTTL(ctx context.Context, key models.CacheKey) (time.Duration, error)

	// Close releases underlying connections.
	Close() error
}
