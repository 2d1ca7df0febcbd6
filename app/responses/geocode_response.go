package responses

import "github.com/address-resolver/app/models"

// GeocodeResponse wraps one resolved address.
type GeocodeResponse struct {
	Result           *models.GeocodeResult `json:"result"`
	GazetteerVersion string                `json:"gazetteer_version"`
	ProcessingTimeMs int64                 `json:"processing_time_ms"`
	CacheHit         bool                  `json:"cache_hit"`
}

// NormalizeResponse wraps the offline normalization of one address.
type NormalizeResponse struct {
	Raw        string                   `json:"raw"`
	Normalized string                   `json:"normalized"`
	Structured models.StructuredAddress `json:"structured"`
	Changes    []models.AppliedChange   `json:"changes,omitempty"`
}

// BatchGeocodeResponse acknowledges a queued batch job.
type BatchGeocodeResponse struct {
	JobID            string `json:"job_id"`
	EstimatedSeconds int    `json:"estimated_seconds"`
	TotalAddresses   int    `json:"total_addresses"`
	Message          string `json:"message"`
}

// JobStatusResponse reports batch job progress.
type JobStatusResponse struct {
	JobID     string  `json:"job_id"`
	Status    string  `json:"status"`
	Progress  float64 `json:"progress"`
	Processed int     `json:"processed"`
	Total     int     `json:"total"`
	Message   string  `json:"message"`
}

// JobResultsResponse carries a finished job's rows.
type JobResultsResponse struct {
	JobID   string                  `json:"job_id"`
	Results []*models.GeocodeResult `json:"results"`
	Total   int                     `json:"total"`
}

// AdminStatsResponse summarizes service health for the admin surface.
type AdminStatsResponse struct {
	CacheHitRate     float64 `json:"cache_hit_rate"`
	TotalCached      int64   `json:"total_cached"`
	GazetteerVersion string  `json:"gazetteer_version"`
	GazetteerChains  int     `json:"gazetteer_chains"`
	UptimeSeconds    int64   `json:"uptime_seconds"`
	LastUpdated      string  `json:"last_updated"`
}

// ErrorResponse is the common error envelope.
type ErrorResponse struct {
	Error     string      `json:"error"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
	Timestamp string      `json:"timestamp"`
}

// SuccessResponse is the common success envelope.
type SuccessResponse struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp string      `json:"timestamp"`
}

// HealthCheckResponse reports liveness.
type HealthCheckResponse struct {
	Status        string `json:"status"`
	Version       string `json:"version"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	Timestamp     string `json:"timestamp"`
}
