package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/address-resolver/app/responses"
	"github.com/address-resolver/app/services"
	"github.com/address-resolver/internal/gazetteer"
)

// AdminController serves cache administration and service statistics.
type AdminController struct {
	geocodeService *services.GeocodeService
	cacheService   services.ICacheService
	table          *gazetteer.Table
	logger         *zap.Logger
}

func NewAdminController(geocodeService *services.GeocodeService, cacheService services.ICacheService, table *gazetteer.Table, logger *zap.Logger) *AdminController {
	return &AdminController{
		geocodeService: geocodeService,
		cacheService:   cacheService,
		table:          table,
		logger:         logger,
	}
}

// InvalidateCache drops entries from an older gazetteer table, or everything
// with ?all=true.
func (ac *AdminController) InvalidateCache(c *gin.Context) {
	ctx := c.Request.Context()

	var err error
	if c.Query("all") == "true" {
		err = ac.cacheService.Clear(ctx)
	} else {
		err = ac.cacheService.InvalidateByGazetteerVersion(ctx, ac.table.Version())
	}
	if err != nil {
		ac.logger.Error("cache invalidation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:     "CACHE_ERROR",
			Message:   err.Error(),
			Timestamp: time.Now().Format(time.RFC3339),
		})
		return
	}

	c.JSON(http.StatusOK, responses.SuccessResponse{
		Success:   true,
		Message:   "cache invalidated",
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// GetStats reports cache and gazetteer metrics.
func (ac *AdminController) GetStats(c *gin.Context) {
	stats, err := ac.cacheService.GetStats(c.Request.Context())
	if err != nil {
		ac.logger.Warn("cache stats unavailable", zap.Error(err))
		stats = &services.CacheStats{}
	}

	c.JSON(http.StatusOK, responses.AdminStatsResponse{
		CacheHitRate:     stats.HitRate,
		TotalCached:      stats.TotalItems,
		GazetteerVersion: ac.table.Version(),
		GazetteerChains:  ac.table.Len(),
		UptimeSeconds:    int64(time.Since(ac.geocodeService.GetStartTime()).Seconds()),
		LastUpdated:      time.Now().Format(time.RFC3339),
	})
}
