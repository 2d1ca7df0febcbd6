package requests

import "time"

// GeocodeRequest resolves a single address.
type GeocodeRequest struct {
	Address string         `json:"address" binding:"required"`
	Options GeocodeOptions `json:"options,omitempty"`
}

// GeocodeOptions tune one resolution.
type GeocodeOptions struct {
	// UseCache consults and fills the result cache.
	UseCache bool `json:"use_cache,omitempty"`
	// StoreCode/StoreName attach the store identity to the result and
	// scope the cache key.
	StoreCode string `json:"store_code,omitempty"`
	StoreName string `json:"store_name,omitempty"`
	// AsOf is the gazetteer reference date; zero means latest.
	AsOf time.Time `json:"as_of,omitempty"`
}

// BatchGeocodeRequest resolves many addresses as a background job.
type BatchGeocodeRequest struct {
	Addresses []string       `json:"addresses" binding:"required,min=1,max=20000"`
	Options   GeocodeOptions `json:"options,omitempty"`
}

// NormalizeRequest runs only the offline normalization pipeline.
type NormalizeRequest struct {
	Address string    `json:"address" binding:"required"`
	AsOf    time.Time `json:"as_of,omitempty"`
}
