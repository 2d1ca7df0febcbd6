// Seeds the local Meilisearch address index from a CSV of
// address,latitude,longitude rows, for running the resolver offline.
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

	"go.uber.org/zap"

	"github.com/address-resolver/app/config"
	"github.com/address-resolver/internal/geocoder"
	"github.com/address-resolver/internal/normalizer"
)

func main() {
	inPath := flag.String("in", "data/addresses.csv", "address CSV: address,latitude,longitude")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("cannot load config: ", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("cannot initialize logger: ", err)
	}
	defer logger.Sync()

	backend, err := geocoder.NewLocalBackend(
		cfg.Backend.Meili.Host,
		cfg.Backend.Meili.APIKey,
		cfg.Backend.Meili.Index,
		cfg.Backend.Meili.Limit,
		logger)
	if err != nil {
		logger.Fatal("meilisearch unavailable", zap.Error(err))
	}

	docs, err := readDocuments(*inPath)
	if err != nil {
		logger.Fatal("cannot read address csv", zap.Error(err))
	}

	if err := backend.Seed(context.Background(), docs); err != nil {
		logger.Fatal("seeding failed", zap.Error(err))
	}
	logger.Info("done", zap.Int("documents", len(docs)))
}

func readDocuments(path string) ([]geocoder.AddressDocument, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// Index normalized text so queries and documents agree on width/script.
	text := normalizer.NewTextNormalizer()
	numerals := normalizer.NewNumeralNormalizer()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1

	var docs []geocoder.AddressDocument
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
		if len(rec) < 3 {
			continue
		}
		if line == 1 && strings.EqualFold(rec[0], "address") {
			continue
		}
		lat, errLat := strconv.ParseFloat(rec[1], 64)
		lng, errLng := strconv.ParseFloat(rec[2], 64)
		if errLat != nil || errLng != nil {
			return nil, fmt.Errorf("line %d: bad coordinates", line)
		}
		docs = append(docs, geocoder.AddressDocument{
			ID:      strconv.Itoa(line),
			Address: numerals.Normalize(text.Normalize(rec[0])),
			Lat:     lat,
			Lng:     lng,
		})
	}
	return docs, nil
}
