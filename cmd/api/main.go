package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/address-resolver/app/config"
	"github.com/address-resolver/app/controllers"
	"github.com/address-resolver/app/services"
	"github.com/address-resolver/internal/gazetteer"
	"github.com/address-resolver/internal/geocoder"
	"github.com/address-resolver/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("cannot load config: ", err)
	}

	logger := initLogger(cfg.App.Env)
	defer logger.Sync()

	logger.Info("starting address resolver service")

	table, err := loadGazetteer(cfg, logger)
	if err != nil {
		logger.Fatal("cannot load gazetteer", zap.Error(err))
	}

	backend, err := buildBackend(cfg, logger)
	if err != nil {
		logger.Fatal("cannot build geocoding backend", zap.Error(err))
	}

	cache, err := buildCache(cfg, logger)
	if err != nil {
		logger.Fatal("cannot build cache", zap.Error(err))
	}
	defer cache.Close()

	geocodeService := services.NewGeocodeService(services.GeocodeServiceDeps{
		Resolver:        gazetteer.NewResolver(table),
		Backend:         backend,
		Cache:           cache,
		Weights:         cfg.Scoring.Weights,
		ReviewThreshold: cfg.Scoring.ReviewThreshold,
		Version:         cfg.Gazetteer.Version,
	}, logger)

	geocodeController := controllers.NewGeocodeController(geocodeService, logger)
	adminController := controllers.NewAdminController(geocodeService, cache, table, logger)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	routes.SetupAllRoutes(router, geocodeController, adminController)

	logger.Info("http server listening", zap.String("port", cfg.App.Port))
	if err := router.Run(":" + cfg.App.Port); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}

func initLogger(env string) *zap.Logger {
	var logger *zap.Logger
	var err error
	if env == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatal("cannot initialize logger: ", err)
	}
	return logger
}

func loadGazetteer(cfg *config.Config, logger *zap.Logger) (*gazetteer.Table, error) {
	events, err := gazetteer.NewLoader().LoadFile(cfg.Gazetteer.CSVPath)
	if err != nil {
		return nil, err
	}
	table := gazetteer.NewTable(events, cfg.Gazetteer.Version)
	logger.Info("gazetteer loaded",
		zap.String("path", cfg.Gazetteer.CSVPath),
		zap.String("version", table.Version()),
		zap.Int("chains", table.Len()))
	return table, nil
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

func buildCache(cfg *config.Config, logger *zap.Logger) (services.ICacheService, error) {
	switch cfg.Cache.Kind {
	case "redis":
		return services.NewRedisCacheService(cfg.Cache.RedisURL, cfg.Cache.TTL, logger)
	case "mongo":
		db, err := connectMongo(cfg, logger)
		if err != nil {
			return nil, err
		}
		cache, err := services.NewMongoCacheService(db, cfg.Cache.L1Size, logger)
		if err != nil {
			return nil, err
		}
		if err := cache.WarmUp(context.Background(), cfg.Cache.L1Size/2); err != nil {
			logger.Warn("cache warm up failed", zap.Error(err))
		}
		return cache, nil
	case "hybrid":
		redisCache, err := services.NewRedisCacheService(cfg.Cache.RedisURL, cfg.Cache.TTL, logger)
		if err != nil {
			return nil, err
		}
		db, err := connectMongo(cfg, logger)
		if err != nil {
			return nil, err
		}
		mongoCache, err := services.NewMongoCacheService(db, cfg.Cache.L1Size, logger)
		if err != nil {
			return nil, err
		}
		return services.NewHybridCacheService(redisCache, mongoCache, logger), nil
	default:
		return services.NewMemoryCacheService(cfg.Cache.L1Size, cfg.Cache.TTL), nil
	}
}

func connectMongo(cfg *config.Config, logger *zap.Logger) (*mongo.Database, error) {
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(cfg.Cache.MongoURL))
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	logger.Info("connected to mongodb", zap.String("database", cfg.Cache.MongoDB))
	return client.Database(cfg.Cache.MongoDB), nil
}
