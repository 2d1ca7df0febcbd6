package geocoder

import (
	"context"
	"fmt"

	"github.com/meilisearch/meilisearch-go"
	"go.uber.org/zap"
)

// LocalBackend searches a Meilisearch-indexed address table instead of
// calling a remote API. Typo tolerance gives it fuzzy lookups for free,
// and it works offline once seeded.
type LocalBackend struct {
	client    meilisearch.ServiceManager
	indexName string
	limit     int64
	logger    *zap.Logger
}

// AddressDocument is one indexed row of the local address table.
type AddressDocument struct {
	ID      string  `json:"id"`
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

// NewLocalBackend connects to Meilisearch and verifies it is reachable.
func NewLocalBackend(host, apiKey, indexName string, limit int64, logger *zap.Logger) (*LocalBackend, error) {
	client := meilisearch.New(host, meilisearch.WithAPIKey(apiKey))
	if _, err := client.Health(); err != nil {
		return nil, fmt.Errorf("meilisearch unreachable: %w", err)
	}
	if limit <= 0 {
		limit = 10
	}
	return &LocalBackend{
		client:    client,
		indexName: indexName,
		limit:     limit,
		logger:    logger,
	}, nil
}

func (l *LocalBackend) Name() string { return "local" }

func (l *LocalBackend) Geocode(ctx context.Context, address string) ([]Candidate, error) {
	if address == "" {
		return nil, nil
	}

	resp, err := l.client.Index(l.indexName).SearchWithContext(ctx, address, &meilisearch.SearchRequest{
		Limit: l.limit,
	})
	if err != nil {
		l.logger.Warn("local geocode failed",
			zap.String("address", address),
			zap.Error(err))
		return nil, err
	}

	candidates := make([]Candidate, 0, len(resp.Hits))
	for _, hit := range resp.Hits {
		doc, ok := hit.(map[string]interface{})
		if !ok {
			continue
		}
		addr, _ := doc["address"].(string)
		lat, _ := doc["lat"].(float64)
		lng, _ := doc["lng"].(float64)
		if addr == "" {
			continue
		}
		candidates = append(candidates, Candidate{Address: addr, Lat: lat, Lng: lng})
	}
	return candidates, nil
}

// Seed indexes address documents and waits for the task to finish.
func (l *LocalBackend) Seed(ctx context.Context, docs []AddressDocument) error {
	idx := l.client.Index(l.indexName)
	task, err := idx.AddDocumentsWithContext(ctx, docs, "id")
	if err != nil {
		return fmt.Errorf("seed index: %w", err)
	}
	if _, err := l.client.WaitForTaskWithContext(ctx, task.TaskUID, 0); err != nil {
		return fmt.Errorf("seed wait: %w", err)
	}
	l.logger.Info("local address index seeded",
		zap.String("index", l.indexName),
		zap.Int("documents", len(docs)))
	return nil
}
