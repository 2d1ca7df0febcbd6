package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/address-resolver/app/config"
	"github.com/address-resolver/app/models"
	"github.com/address-resolver/app/requests"
	"github.com/address-resolver/app/services"
	"github.com/address-resolver/internal/gazetteer"
	"github.com/address-resolver/internal/geocoder"
	"github.com/address-resolver/internal/normalizer"
)

// row is one input record: an address with optional store identity.
type row struct {
	index     int
	storeCode string
	storeName string
	address   string
}

type outcome struct {
	index  int
	result *models.GeocodeResult
}

func main() {
	inPath := flag.String("in", "", "input CSV: store_code,store_name,address (header optional)")
	outPath := flag.String("out", "results.csv", "output CSV path")
	workers := flag.Int("workers", 4, "concurrent geocode workers")
	flag.Parse()

	if *inPath == "" {
		log.Fatal("-in is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("cannot load config: ", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("cannot initialize logger: ", err)
	}
	defer logger.Sync()

	events, err := gazetteer.NewLoader().LoadFile(cfg.Gazetteer.CSVPath)
	if err != nil {
		logger.Fatal("cannot load gazetteer", zap.Error(err))
	}
	table := gazetteer.NewTable(events, cfg.Gazetteer.Version)

	backend, err := buildBackend(cfg, logger)
	if err != nil {
		logger.Fatal("cannot build geocoding backend", zap.Error(err))
	}

	geocodeService := services.NewGeocodeService(services.GeocodeServiceDeps{
		Resolver:        gazetteer.NewResolver(table),
		Backend:         backend,
		Cache:           services.NewMemoryCacheService(cfg.Cache.L1Size, cfg.Cache.TTL),
		Weights:         cfg.Scoring.Weights,
		ReviewThreshold: cfg.Scoring.ReviewThreshold,
		Version:         cfg.Gazetteer.Version,
	}, logger)

	asOf, err := cfg.AsOfDate()
	if err != nil {
		logger.Fatal("bad as_of date", zap.Error(err))
	}

	rows, err := readRows(*inPath)
	if err != nil {
		logger.Fatal("cannot read input", zap.Error(err))
	}
	logger.Info("batch started",
		zap.Int("rows", len(rows)),
		zap.Int("workers", *workers),
		zap.String("backend", backend.Name()))

	// Rows are independent; fan out across workers and reassemble by index.
	stores := normalizeStores(rows)
	jobs := make(chan row)
	outcomes := make(chan outcome)

	var wg sync.WaitGroup
	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for r := range jobs {
				opts := requests.GeocodeOptions{
					UseCache:  true,
					StoreCode: r.storeCode,
					StoreName: stores[r.storeName],
					AsOf:      asOf,
				}
				result, _, err := geocodeService.Geocode(context.Background(), r.address, opts)
				if err != nil {
					logger.Warn("row failed",
						zap.Int("index", r.index),
						zap.String("address", r.address),
						zap.Error(err))
					result = &models.GeocodeResult{
						Raw:        r.address,
						Status:     models.StatusUnmatched,
						Similarity: models.UnmatchedScore,
						StoreCode:  r.storeCode,
					}
				}
				outcomes <- outcome{index: r.index, result: result}
			}
		}()
	}
	go func() {
		for _, r := range rows {
			jobs <- r
		}
		close(jobs)
		wg.Wait()
		close(outcomes)
	}()

	results := make([]*models.GeocodeResult, len(rows))
	done := 0
	for o := range outcomes {
		results[o.index] = o.result
		done++
		if done%100 == 0 {
			logger.Info("progress", zap.Int("done", done), zap.Int("total", len(rows)))
		}
	}

	if err := writeResults(*outPath, results); err != nil {
		logger.Fatal("cannot write output", zap.Error(err))
	}

	matched, review, unmatched := tally(results)
	logger.Info("batch finished",
		zap.String("out", *outPath),
		zap.Int("matched", matched),
		zap.Int("low_similarity", review),
		zap.Int("unmatched", unmatched))
}

func buildBackend(cfg *config.Config, logger *zap.Logger) (geocoder.Backend, error) {
	switch cfg.Backend.Kind {
	case "google":
		return geocoder.NewGoogleBackend(cfg.Backend.GoogleAPIKey, cfg.Retry, logger)
	case "local":
		return geocoder.NewLocalBackend(
			cfg.Backend.Meili.Host,
			cfg.Backend.Meili.APIKey,
			cfg.Backend.Meili.Index,
			cfg.Backend.Meili.Limit,
			logger)
	default:
		return geocoder.NewGSIBackend(cfg.Backend.GSIURL, cfg.Retry, logger), nil
	}
}

func readRows(path string) ([]row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1

	var rows []row
	line := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line+1, err)
		}
		line++
		if line == 1 && strings.EqualFold(rec[len(rec)-1], "address") {
			continue
		}
		r := row{index: len(rows)}
		switch len(rec) {
		case 1:
			r.address = rec[0]
		case 2:
			r.storeCode, r.address = rec[0], rec[1]
		default:
			r.storeCode, r.storeName, r.address = rec[0], rec[1], rec[2]
		}
		r.address = strings.TrimSpace(r.address)
		if r.address == "" {
			continue
		}
		rows = append(rows, r)
	}
	return rows, nil
}

// normalizeStores learns store name groups across the whole input so chain
// variants share one canonical name in the output.
func normalizeStores(rows []row) map[string]string {
	sn := normalizer.NewStoreNormalizer(0.8)
	names := make([]string, 0, len(rows))
	for _, r := range rows {
		if r.storeName != "" {
			names = append(names, r.storeName)
		}
	}
	sn.LearnGroups(names)

	out := make(map[string]string, len(names))
	for _, n := range names {
		out[n] = sn.Normalize(n)
	}
	return out
}

func writeResults(path string, results []*models.GeocodeResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	header := []string{
		"store_code", "store_name", "raw", "normalized", "matched", "block",
		"latitude", "longitude", "similarity",
		"chome_match", "banchi_match", "go_match", "status",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range results {
		block := ""
		if r.Structured.HasBlock() {
			block = r.Structured.BlockString()
		}
		rec := []string{
			r.StoreCode,
			r.StoreName,
			r.Raw,
			r.NormalizedAddress,
			r.MatchedAddress,
			block,
			strconv.FormatFloat(r.Latitude, 'f', 6, 64),
			strconv.FormatFloat(r.Longitude, 'f', 6, 64),
			strconv.FormatFloat(r.Similarity, 'f', 4, 64),
			strconv.FormatBool(r.LevelMatches.Chome),
			strconv.FormatBool(r.LevelMatches.Banchi),
			strconv.FormatBool(r.LevelMatches.Go),
			r.Status,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	return cw.Error()
}

func tally(results []*models.GeocodeResult) (matched, review, unmatched int) {
	for _, r := range results {
		switch r.Status {
		case models.StatusMatched:
			matched++
		case models.StatusLowSimilarity:
			review++
		default:
			unmatched++
		}
	}
	return matched, review, unmatched
}
