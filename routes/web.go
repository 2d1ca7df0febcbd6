package routes

import "github.com/gin-gonic/gin"

// SetupWebRoutes mounts the informational root endpoints.
func SetupWebRoutes(router *gin.Engine) {
	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Address Resolver Service",
			"docs":    "/docs",
		})
	})

	router.GET("/docs", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"api": "Address Resolver API v1",
			"endpoints": map[string]string{
				"geocode":     "POST /v1/addresses/geocode",
				"normalize":   "POST /v1/addresses/normalize",
				"batch":       "POST /v1/addresses/jobs",
				"job_status":  "GET /v1/addresses/jobs/:jobID/status",
				"job_results": "GET /v1/addresses/jobs/:jobID/results",
				"health":      "GET /v1/health",
			},
		})
	})
}
