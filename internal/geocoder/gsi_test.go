package geocoder

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const gsiFixture = `[
  {
    "geometry": {"coordinates": [139.699553, 35.661777]},
    "properties": {"title": "東京都渋谷区神南一丁目"}
  },
  {
    "geometry": {"coordinates": [139.7036, 35.6595]},
    "properties": {"title": "東京都渋谷区宇田川町"}
  },
  {
    "geometry": {"coordinates": []},
    "properties": {"title": "壊れたレコード"}
  }
]`

func fastRetry() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, BaseDelay: time.Millisecond}
}

func TestGSIGeocode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "東京都渋谷区神南1-1-1", r.URL.Query().Get("q"))
		w.Write([]byte(gsiFixture))
	}))
	defer srv.Close()

	g := NewGSIBackend(srv.URL, fastRetry(), zap.NewNop())
	candidates, err := g.Geocode(context.Background(), "東京都渋谷区神南1-1-1")
	require.NoError(t, err)
	require.Len(t, candidates, 2)

	assert.Equal(t, "東京都渋谷区神南一丁目", candidates[0].Address)
	assert.InDelta(t, 35.661777, candidates[0].Lat, 1e-9)
	assert.InDelta(t, 139.699553, candidates[0].Lng, 1e-9)
}

func TestGSIGeocodeEmptyAddress(t *testing.T) {
	g := NewGSIBackend("http://unused.invalid", fastRetry(), zap.NewNop())
	candidates, err := g.Geocode(context.Background(), "")
	assert.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestGSIGeocodeRetriesOnServerError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	g := NewGSIBackend(srv.URL, fastRetry(), zap.NewNop())
	candidates, err := g.Geocode(context.Background(), "東京都")
	require.NoError(t, err)
	assert.Empty(t, candidates)
	assert.Equal(t, int32(3), calls.Load())
}

func TestGSIGeocodeGivesUp(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	g := NewGSIBackend(srv.URL, fastRetry(), zap.NewNop())
	_, err := g.Geocode(context.Background(), "東京都")
	assert.Error(t, err)
}

func TestRetryPolicyContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := RetryPolicy{MaxAttempts: 5, BaseDelay: time.Hour}
	calls := 0
	err := p.Do(ctx, func() error {
		calls++
		return assert.AnError
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}
