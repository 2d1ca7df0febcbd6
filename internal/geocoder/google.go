package geocoder

import (
	"context"

	"go.uber.org/zap"
	"googlemaps.github.io/maps"
)

// GoogleBackend geocodes through the Google Maps Geocoding API, pinned to
// Japanese language and region so candidate strings segment cleanly.
type GoogleBackend struct {
	client *maps.Client
	retry  RetryPolicy
	logger *zap.Logger
}

func NewGoogleBackend(apiKey string, retry RetryPolicy, logger *zap.Logger) (*GoogleBackend, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &GoogleBackend{client: client, retry: retry, logger: logger}, nil
}

func (g *GoogleBackend) Name() string { return "google" }

func (g *GoogleBackend) Geocode(ctx context.Context, address string) ([]Candidate, error) {
	if address == "" {
		return nil, nil
	}

	var results []maps.GeocodingResult
	err := g.retry.Do(ctx, func() error {
		var err error
		results, err = g.client.Geocode(ctx, &maps.GeocodingRequest{
			Address:  address,
			Language: "ja",
			Region:   "jp",
		})
		return err
	})
	if err != nil {
		g.logger.Warn("google geocode failed",
			zap.String("address", address),
			zap.Error(err))
		return nil, err
	}

	candidates := make([]Candidate, 0, len(results))
	for _, r := range results {
		candidates = append(candidates, Candidate{
			Address: r.FormattedAddress,
			Lat:     r.Geometry.Location.Lat,
			Lng:     r.Geometry.Location.Lng,
		})
	}
	return candidates, nil
}
