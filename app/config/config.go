package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/address-resolver/internal/geocoder"
	"github.com/address-resolver/internal/matcher"
)

// Config is the full service configuration, loaded from config/resolver.yaml
// with environment variable overrides.
type Config struct {
	App       AppConfig        `mapstructure:"app"`
	Gazetteer GazetteerConfig  `mapstructure:"gazetteer"`
	Scoring   ScoringConfig    `mapstructure:"scoring"`
	Backend   BackendConfig    `mapstructure:"backend"`
	Cache     CacheConfig      `mapstructure:"cache"`
	Retry     geocoder.RetryPolicy `mapstructure:"retry"`
}

type AppConfig struct {
	Port string `mapstructure:"port"`
	Env  string `mapstructure:"env"`
}

type GazetteerConfig struct {
	CSVPath string `mapstructure:"csv_path"`
	Version string `mapstructure:"version"`
	// AsOf is the default reference date (YYYY-MM-DD); empty means latest.
	AsOf string `mapstructure:"as_of"`
}

type ScoringConfig struct {
	Weights matcher.Weights `mapstructure:"weights"`
	// ReviewThreshold separates matched from low_similarity results.
	ReviewThreshold float64 `mapstructure:"review_threshold"`
}

type BackendConfig struct {
	// Kind selects the geocoding backend: gsi, google or local.
	Kind         string      `mapstructure:"kind"`
	GSIURL       string      `mapstructure:"gsi_url"`
	GoogleAPIKey string      `mapstructure:"google_api_key"`
	Meili        MeiliConfig `mapstructure:"meili"`
}

type MeiliConfig struct {
	Host   string `mapstructure:"host"`
	APIKey string `mapstructure:"api_key"`
	Index  string `mapstructure:"index"`
	Limit  int64  `mapstructure:"limit"`
}

type CacheConfig struct {
	// Kind selects the cache: memory, redis, mongo or hybrid.
	Kind     string        `mapstructure:"kind"`
	TTL      time.Duration `mapstructure:"ttl"`
	L1Size   int           `mapstructure:"l1_size"`
	RedisURL string        `mapstructure:"redis_url"`
	MongoURL string        `mapstructure:"mongo_url"`
	MongoDB  string        `mapstructure:"mongo_db"`
}

// Load reads config/resolver.yaml (or ./resolver.yaml) and applies
// environment overrides. Missing file is not an error; defaults apply.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("resolver")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	v.SetDefault("app.port", "8080")
	v.SetDefault("app.env", "development")
	v.SetDefault("gazetteer.csv_path", "data/gazetteer.csv")
	v.SetDefault("gazetteer.version", "1.0.0")
	v.SetDefault("scoring.weights.prefecture", 1.0)
	v.SetDefault("scoring.weights.municipality", 2.0)
	v.SetDefault("scoring.weights.remainder", 3.0)
	v.SetDefault("scoring.weights.block", 4.0)
	v.SetDefault("scoring.weights.unit", 5.0)
	v.SetDefault("scoring.review_threshold", 0.6)
	v.SetDefault("backend.kind", "gsi")
	v.SetDefault("backend.meili.host", "http://localhost:7700")
	v.SetDefault("backend.meili.index", "addresses")
	v.SetDefault("backend.meili.limit", 10)
	v.SetDefault("cache.kind", "memory")
	v.SetDefault("cache.ttl", "24h")
	v.SetDefault("cache.l1_size", 10000)
	v.SetDefault("cache.redis_url", "redis://localhost:6379")
	v.SetDefault("cache.mongo_url", "mongodb://localhost:27017")
	v.SetDefault("cache.mongo_db", "address_resolver")
	v.SetDefault("retry.max_attempts", 3)
	v.SetDefault("retry.base_delay", "500ms")

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// AsOfDate parses the configured reference date; zero time when unset.
func (c *Config) AsOfDate() (time.Time, error) {
	if c.Gazetteer.AsOf == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", c.Gazetteer.AsOf)
}
