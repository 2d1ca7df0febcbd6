package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/address-resolver/app/controllers"
)

// SetupAPIRoutes mounts the versioned API.
func SetupAPIRoutes(router *gin.Engine, geocodeController *controllers.GeocodeController, adminController *controllers.AdminController) {
	v1 := router.Group("/v1")
	{
		addresses := v1.Group("/addresses")
		{
			addresses.POST("/geocode", geocodeController.Geocode)
			addresses.POST("/normalize", geocodeController.Normalize)
			addresses.POST("/jobs", geocodeController.BatchGeocode)
			addresses.GET("/jobs/:jobID/status", geocodeController.GetJobStatus)
			addresses.GET("/jobs/:jobID/results", geocodeController.GetJobResults)
		}

		admin := v1.Group("/admin")
		{
			admin.POST("/cache/invalidate", adminController.InvalidateCache)
			admin.GET("/stats", adminController.GetStats)
		}

		v1.GET("/health", geocodeController.HealthCheck)
	}
}

// SetupHealthRoutes mounts root-level liveness endpoints.
func SetupHealthRoutes(router *gin.Engine, geocodeController *controllers.GeocodeController) {
	router.GET("/health", geocodeController.HealthCheck)
	router.GET("/ready", geocodeController.HealthCheck)
	router.GET("/live", geocodeController.HealthCheck)
}

// SetupAllRoutes wires middleware and every route group.
func SetupAllRoutes(router *gin.Engine, geocodeController *controllers.GeocodeController, adminController *controllers.AdminController) {
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	SetupWebRoutes(router)
	SetupHealthRoutes(router, geocodeController)
	SetupAPIRoutes(router, geocodeController, adminController)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})
}
