package models

import "time"

// Status constants for a geocode result.
const (
	StatusMatched       = "matched"
	StatusLowSimilarity = "low_similarity"
	StatusUnmatched     = "unmatched"
)

// GeocodeResult is the full outcome of resolving one address: normalization,
// historical municipality rewriting, backend lookup and candidate selection.
type GeocodeResult struct {
	Raw               string            `json:"raw"`                // original input
	NormalizedAddress string            `json:"normalized_address"` // after text+numeral+gazetteer normalization
	MatchedAddress    string            `json:"matched_address"`    // candidate picked from the backend, empty when unmatched
	Structured        StructuredAddress `json:"structured"`
	Latitude          float64           `json:"latitude"`
	Longitude         float64           `json:"longitude"`
	Similarity        float64           `json:"similarity"`
	LevelMatches      LevelMatches      `json:"level_matches"`
	Changes           []AppliedChange   `json:"changes,omitempty"` // gazetteer substitutions applied
	Status            string            `json:"status"`
	Backend           string            `json:"backend,omitempty"`           // which geocoder produced the candidates
	GazetteerVersion  string            `json:"gazetteer_version,omitempty"` // table version the resolution used
	StoreCode         string            `json:"store_code,omitempty"`
	StoreName         string            `json:"store_name,omitempty"`
}

// CacheKey identifies a cached geocode result: the normalized address plus an
// optional store identifier, replacing the composite "||" strings of older
// tooling with an explicit type.
type CacheKey struct {
	NormalizedAddress string `json:"normalized_address"`
	StoreCode         string `json:"store_code,omitempty"`
}

// String renders the key in its canonical cache form.
func (k CacheKey) String() string {
	if k.StoreCode == "" {
		return k.NormalizedAddress
	}
	return k.NormalizedAddress + "|" + k.StoreCode
}

// GeocodeCache is the persistent cache document stored in MongoDB.
type GeocodeCache struct {
	RawFingerprint   string        `bson:"raw_fingerprint" json:"raw_fingerprint"`
	Key              string        `bson:"key" json:"key"`
	Result           GeocodeResult `bson:"result" json:"result"`
	GazetteerVersion string        `bson:"gazetteer_version" json:"gazetteer_version"`
	CreatedAt        time.Time     `bson:"created_at" json:"created_at"`
	LastAccessed     time.Time     `bson:"last_accessed" json:"last_accessed"`
	HitCount         int64         `bson:"hit_count" json:"hit_count"`
}
