package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/address-resolver/app/models"
	"github.com/address-resolver/app/requests"
	"github.com/address-resolver/internal/gazetteer"
	"github.com/address-resolver/internal/geocoder"
	"github.com/address-resolver/internal/matcher"
	"github.com/address-resolver/internal/normalizer"
	"github.com/address-resolver/internal/parser"
)

// GeocodeService runs the full resolution pipeline for one address:
// normalize, rewrite historical municipality names, segment, geocode through
// the configured backend, then pick and score the best candidate. The
// pipeline stages themselves are pure; all I/O goes through the backend and
// the cache.
type GeocodeService struct {
	text      *normalizer.TextNormalizer
	numerals  *normalizer.NumeralNormalizer
	resolver  *gazetteer.Resolver
	segmenter *parser.Segmenter
	selector  *matcher.Selector
	backend   geocoder.Backend
	cache     ICacheService
	logger    *zap.Logger

	reviewThreshold  float64
	gazetteerVersion string
	startTime        time.Time

	mu         sync.RWMutex
	jobs       map[string]*JobStatus
	jobResults map[string][]*models.GeocodeResult
}

// JobStatus tracks one background batch job.
type JobStatus struct {
	JobID     string    `json:"job_id"`
	Status    string    `json:"status"`
	Progress  float64   `json:"progress"`
	Processed int       `json:"processed"`
	Total     int       `json:"total"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GeocodeServiceDeps bundles the pipeline pieces for construction.
type GeocodeServiceDeps struct {
	Resolver        *gazetteer.Resolver
	Backend         geocoder.Backend
	Cache           ICacheService
	Weights         matcher.Weights
	ReviewThreshold float64
	Version         string
}

// NewGeocodeService wires the pipeline.
func NewGeocodeService(deps GeocodeServiceDeps, logger *zap.Logger) *GeocodeService {
	segmenter := parser.NewSegmenter()
	return &GeocodeService{
		text:             normalizer.NewTextNormalizer(),
		numerals:         normalizer.NewNumeralNormalizer(),
		resolver:         deps.Resolver,
		segmenter:        segmenter,
		selector:         matcher.NewSelector(segmenter, matcher.NewScorer(deps.Weights)),
		backend:          deps.Backend,
		cache:            deps.Cache,
		logger:           logger,
		reviewThreshold:  deps.ReviewThreshold,
		gazetteerVersion: deps.Version,
		startTime:        time.Now(),
		jobs:             make(map[string]*JobStatus),
		jobResults:       make(map[string][]*models.GeocodeResult),
	}
}

// Normalize runs only the offline part of the pipeline: text and numeral
// normalization plus gazetteer rewriting. No network, no cache.
func (gs *GeocodeService) Normalize(raw string, asOf time.Time) (string, models.StructuredAddress, []models.AppliedChange) {
	normalized := gs.numerals.Normalize(gs.text.Normalize(raw))

	// The resolver needs the prefecture, so segment once before rewriting
	// and again after: the substitution may move the municipality boundary.
	pre := gs.segmenter.Segment(normalized)
	resolved, changes := gs.resolver.Resolve(pre.Prefecture, normalized, asOf)
	return resolved, gs.segmenter.Segment(resolved), changes
}

// Geocode resolves one raw address. Options control cache usage, the store
// identity attached to the result, and the gazetteer reference date.
func (gs *GeocodeService) Geocode(ctx context.Context, raw string, opts requests.GeocodeOptions) (*models.GeocodeResult, bool, error) {
	if raw == "" {
		return nil, false, errors.New("address must not be empty")
	}

	resolved, structured, changes := gs.Normalize(raw, opts.AsOf)

	key := models.CacheKey{NormalizedAddress: resolved, StoreCode: opts.StoreCode}
	if opts.UseCache && gs.cache != nil {
		if cached, found, err := gs.cache.Get(ctx, key); err != nil {
			gs.logger.Warn("cache lookup failed", zap.Error(err))
		} else if found {
			return cached, true, nil
		}
	}

	result := &models.GeocodeResult{
		Raw:               raw,
		NormalizedAddress: resolved,
		Structured:        structured,
		Changes:           changes,
		Status:            models.StatusUnmatched,
		Backend:           gs.backend.Name(),
		GazetteerVersion:  gs.gazetteerVersion,
		StoreCode:         opts.StoreCode,
		StoreName:         opts.StoreName,
	}

	candidates, err := gs.backend.Geocode(ctx, resolved)
	if err != nil {
		return nil, false, err
	}

	texts := make([]string, len(candidates))
	for i, c := range candidates {
		texts[i] = c.Address
	}

	sel := gs.selector.Select(resolved, texts)
	if sel.Matched {
		result.MatchedAddress = sel.Candidate
		result.Similarity = sel.Score
		result.LevelMatches = sel.LevelMatches
		for _, c := range candidates {
			if c.Address == sel.Candidate {
				result.Latitude = c.Lat
				result.Longitude = c.Lng
				break
			}
		}
		if sel.Score >= gs.reviewThreshold {
			result.Status = models.StatusMatched
		} else {
			result.Status = models.StatusLowSimilarity
		}
	} else {
		result.Similarity = models.UnmatchedScore
	}

	gs.logger.Debug("address resolved",
		zap.String("raw", raw),
		zap.String("normalized", resolved),
		zap.String("status", result.Status),
		zap.Float64("similarity", result.Similarity))

	if opts.UseCache && gs.cache != nil {
		if err := gs.cache.Set(ctx, key, result); err != nil {
			gs.logger.Warn("cache store failed", zap.Error(err))
		}
	}
	return result, false, nil
}

// EstimateBatchSeconds estimates processing time assuming one backend call
// per address.
func (gs *GeocodeService) EstimateBatchSeconds(count int) int {
	return count * 200 / 1000
}

// ProcessBatchJob resolves addresses sequentially in the background, updating
// the job's progress as it goes. Run it in its own goroutine.
func (gs *GeocodeService) ProcessBatchJob(jobID string, addresses []string, opts requests.GeocodeOptions) {
	gs.mu.Lock()
	gs.jobs[jobID] = &JobStatus{
		JobID:     jobID,
		Status:    "running",
		Total:     len(addresses),
		Message:   "processing",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	gs.mu.Unlock()

	ctx := context.Background()
	results := make([]*models.GeocodeResult, len(addresses))
	for i, address := range addresses {
		result, _, err := gs.Geocode(ctx, address, opts)
		if err != nil {
			gs.logger.Warn("batch row failed",
				zap.String("job_id", jobID),
				zap.String("address", address),
				zap.Error(err))
			result = &models.GeocodeResult{
				Raw:        address,
				Status:     models.StatusUnmatched,
				Similarity: models.UnmatchedScore,
			}
		}
		results[i] = result

		gs.mu.Lock()
		if job, exists := gs.jobs[jobID]; exists {
			job.Processed = i + 1
			job.Progress = float64(i+1) / float64(len(addresses))
			job.UpdatedAt = time.Now()
			if i == len(addresses)-1 {
				job.Status = "done"
				job.Message = "completed"
			}
		}
		gs.mu.Unlock()
	}

	gs.mu.Lock()
	gs.jobResults[jobID] = results
	gs.mu.Unlock()

	gs.logger.Info("batch job completed",
		zap.String("job_id", jobID),
		zap.Int("total", len(addresses)))
}

// GetJobStatus returns a snapshot of a batch job's status. The stored struct
// keeps being mutated by ProcessBatchJob, so callers get a copy.
func (gs *GeocodeService) GetJobStatus(jobID string) (*JobStatus, error) {
	gs.mu.RLock()
	defer gs.mu.RUnlock()

	job, exists := gs.jobs[jobID]
	if !exists {
		return nil, errors.New("job not found")
	}
	st := *job
	return &st, nil
}

// GetJobResults returns the results of a finished batch job.
func (gs *GeocodeService) GetJobResults(jobID string) ([]*models.GeocodeResult, error) {
	gs.mu.RLock()
	defer gs.mu.RUnlock()

	results, exists := gs.jobResults[jobID]
	if !exists {
		return nil, errors.New("job results not found")
	}
	return results, nil
}

// GetStartTime reports when the service came up.
func (gs *GeocodeService) GetStartTime() time.Time {
	return gs.startTime
}

// GazetteerVersion reports the loaded table version.
func (gs *GeocodeService) GazetteerVersion() string {
	return gs.gazetteerVersion
}
