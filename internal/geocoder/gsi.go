package geocoder

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

const gsiDefaultURL = "https://msearch.gsi.go.jp/address-search/AddressSearch"

// GSIBackend queries the Geospatial Information Authority of Japan address
// search API. Free, no API key, Japan only.
type GSIBackend struct {
	baseURL string
	client  *http.Client
	retry   RetryPolicy
	logger  *zap.Logger
}

// gsiFeature mirrors one element of the GeoJSON-style response:
// coordinates are [lng, lat].
type gsiFeature struct {
	Geometry struct {
		Coordinates []float64 `json:"coordinates"`
	} `json:"geometry"`
	Properties struct {
		Title string `json:"title"`
	} `json:"properties"`
}

// NewGSIBackend creates a GSIBackend. baseURL overrides the public endpoint
// when non-empty, which the tests use.
func NewGSIBackend(baseURL string, retry RetryPolicy, logger *zap.Logger) *GSIBackend {
	if baseURL == "" {
		baseURL = gsiDefaultURL
	}
	return &GSIBackend{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		retry:   retry,
		logger:  logger,
	}
}

func (g *GSIBackend) Name() string { return "gsi" }

// Geocode queries the AddressSearch endpoint with bounded retries.
func (g *GSIBackend) Geocode(ctx context.Context, address string) ([]Candidate, error) {
	if address == "" {
		return nil, nil
	}

	var candidates []Candidate
	err := g.retry.Do(ctx, func() error {
		var err error
		candidates, err = g.query(ctx, address)
		return err
	})
	if err != nil {
		g.logger.Warn("gsi geocode failed",
			zap.String("address", address),
			zap.Error(err))
		return nil, err
	}
	return candidates, nil
}

func (g *GSIBackend) query(ctx context.Context, address string) ([]Candidate, error) {
	u := g.baseURL + "?q=" + url.QueryEscape(address)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("gsi status %d", resp.StatusCode)
	}

	var features []gsiFeature
	if err := json.NewDecoder(resp.Body).Decode(&features); err != nil {
		return nil, fmt.Errorf("gsi decode: %w", err)
	}

	candidates := make([]Candidate, 0, len(features))
	for _, f := range features {
		if len(f.Geometry.Coordinates) < 2 || f.Properties.Title == "" {
			continue
		}
		candidates = append(candidates, Candidate{
			Address: f.Properties.Title,
			Lng:     f.Geometry.Coordinates[0],
			Lat:     f.Geometry.Coordinates[1],
		})
	}
	return candidates, nil
}
