package services

import (
	"context"
	"crypto/sha256"
	"fmt"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/address-resolver/app/models"
)

// MongoCacheService is a persistent result cache: MongoDB as durable storage
// with an in-memory LRU in front of it. Entries carry the gazetteer version
// they were produced with so a table reload can invalidate selectively.
type MongoCacheService struct {
	collection *mongo.Collection
	l1         *lru.Cache[string, *models.GeocodeResult]
	logger     *zap.Logger

	hits   atomic.Int64
	misses atomic.Int64
}

// NewMongoCacheService builds the cache over db's geocode_cache collection
// and ensures its indexes.
func NewMongoCacheService(db *mongo.Database, l1Size int, logger *zap.Logger) (*MongoCacheService, error) {
	l1, err := lru.New[string, *models.GeocodeResult](l1Size)
	if err != nil {
		return nil, fmt.Errorf("create l1 cache: %w", err)
	}

	collection := db.Collection("geocode_cache")
	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{bson.E{Key: "raw_fingerprint", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{bson.E{Key: "gazetteer_version", Value: 1}}},
		{Keys: bson.D{bson.E{Key: "last_accessed", Value: 1}}},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := collection.Indexes().CreateMany(ctx, indexModels); err != nil {
		logger.Warn("geocode_cache index creation failed", zap.Error(err))
	}

	return &MongoCacheService{
		collection: collection,
		l1:         l1,
		logger:     logger,
	}, nil
}

func (m *MongoCacheService) Get(ctx context.Context, key models.CacheKey) (*models.GeocodeResult, bool, error) {
	k := key.String()
	if result, found := m.l1.Get(k); found {
		m.hits.Add(1)
		return result, true, nil
	}

	var entry models.GeocodeCache
	filter := bson.M{"raw_fingerprint": fingerprint(k)}
	err := m.collection.FindOne(ctx, filter).Decode(&entry)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			m.misses.Add(1)
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("mongo cache query: %w", err)
	}

	m.hits.Add(1)
	go m.touch(entry.RawFingerprint)
	m.l1.Add(k, &entry.Result)
	return &entry.Result, true, nil
}

func (m *MongoCacheService) Set(ctx context.Context, key models.CacheKey, result *models.GeocodeResult) error {
	k := key.String()
	m.l1.Add(k, result)

	entry := models.GeocodeCache{
		RawFingerprint:   fingerprint(k),
		Key:              k,
		Result:           *result,
		GazetteerVersion: result.GazetteerVersion,
		CreatedAt:        time.Now(),
		LastAccessed:     time.Now(),
		HitCount:         1,
	}

	opts := options.Replace().SetUpsert(true)
	filter := bson.M{"raw_fingerprint": entry.RawFingerprint}
	if _, err := m.collection.ReplaceOne(ctx, filter, entry, opts); err != nil {
		m.logger.Error("mongo cache write failed",
			zap.Error(err),
			zap.String("key", k))
		return fmt.Errorf("mongo cache write: %w", err)
	}
	return nil
}

func (m *MongoCacheService) Delete(ctx context.Context, key models.CacheKey) error {
	k := key.String()
	m.l1.Remove(k)
	if _, err := m.collection.DeleteOne(ctx, bson.M{"raw_fingerprint": fingerprint(k)}); err != nil {
		return fmt.Errorf("mongo cache delete: %w", err)
	}
	return nil
}

func (m *MongoCacheService) Clear(ctx context.Context) error {
	m.l1.Purge()
	if _, err := m.collection.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("mongo cache clear: %w", err)
	}
	m.hits.Store(0)
	m.misses.Store(0)
	return nil
}

// InvalidateByGazetteerVersion drops every document produced with a different
// gazetteer table. The L1 keeps no version metadata and is purged wholesale.
func (m *MongoCacheService) InvalidateByGazetteerVersion(ctx context.Context, version string) error {
	m.l1.Purge()

	filter := bson.M{"gazetteer_version": bson.M{"$ne": version}}
	result, err := m.collection.DeleteMany(ctx, filter)
	if err != nil {
		return fmt.Errorf("mongo cache invalidate: %w", err)
	}
	m.logger.Info("cache invalidated for gazetteer reload",
		zap.String("gazetteer_version", version),
		zap.Int64("deleted", result.DeletedCount))
	return nil
}

func (m *MongoCacheService) GetStats(ctx context.Context) (*CacheStats, error) {
	count, err := m.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("mongo cache count: %w", err)
	}

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
		TotalItems: count,
	}, nil
}

func (m *MongoCacheService) Exists(ctx context.Context, key models.CacheKey) (bool, error) {
	k := key.String()
	if m.l1.Contains(k) {
		return true, nil
	}
	count, err := m.collection.CountDocuments(ctx, bson.M{"raw_fingerprint": fingerprint(k)})
	if err != nil {
		return false, fmt.Errorf("mongo cache exists: %w", err)
	}
	return count > 0, nil
}

// GetTTL always reports zero: the persistent cache has no expiry, entries
// live until invalidated.
func (m *MongoCacheService) GetTTL(ctx context.Context, key models.CacheKey) (time.Duration, error) {
	return 0, nil
}

// Close is a no-op; the mongo client belongs to the caller.
func (m *MongoCacheService) Close() error {
	return nil
}

// WarmUp preloads the most frequently hit documents into the L1.
func (m *MongoCacheService) WarmUp(ctx context.Context, limit int) error {
	opts := options.Find().
		SetSort(bson.D{bson.E{Key: "hit_count", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := m.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return fmt.Errorf("mongo cache warm up: %w", err)
	}
	defer cursor.Close(ctx)

	count := 0
	for cursor.Next(ctx) {
		var entry models.GeocodeCache
		if err := cursor.Decode(&entry); err != nil {
			m.logger.Warn("warm up decode failed", zap.Error(err))
			continue
		}
		m.l1.Add(entry.Key, &entry.Result)
		count++
	}

	m.logger.Info("cache warm up done",
		zap.Int("loaded", count),
		zap.Int("l1_size", m.l1.Len()))
	return nil
}

// touch bumps access stats out of band, best effort.
func (m *MongoCacheService) touch(fp string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	update := bson.M{
		"$set": bson.M{"last_accessed": time.Now()},
		"$inc": bson.M{"hit_count": 1},
	}
	if _, err := m.collection.UpdateOne(ctx, bson.M{"raw_fingerprint": fp}, update); err != nil {
		m.logger.Warn("access stat update failed", zap.Error(err))
	}
}

func fingerprint(key string) string {
	hash := sha256.Sum256([]byte(key))
	return fmt.Sprintf("sha256:%x", hash)
}
