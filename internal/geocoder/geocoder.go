// Package geocoder holds the external geocoding backends. All network I/O,
// retries and timeouts of the system live here; the matching core never
// performs I/O.
package geocoder

import (
	"context"
	"time"
)

// Candidate is one geocoding hit: a display address and its coordinate.
type Candidate struct {
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

// Backend issues a geocoding query for a normalized address string. An empty
// candidate slice with a nil error means the backend found nothing.
type Backend interface {
	Name() string
	Geocode(ctx context.Context, address string) ([]Candidate, error)
}

// RetryPolicy bounds retries around a backend call with exponential backoff.
type RetryPolicy struct {
	MaxAttempts int           `mapstructure:"max_attempts" yaml:"max_attempts"`
	BaseDelay   time.Duration `mapstructure:"base_delay" yaml:"base_delay"`
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, BaseDelay: 500 * time.Millisecond}
}

// Do runs fn up to MaxAttempts times, doubling the delay between attempts.
// Context cancellation stops the loop immediately.
func (p RetryPolicy) Do(ctx context.Context, fn func() error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	delay := p.BaseDelay

	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
	return err
}
