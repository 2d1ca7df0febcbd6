package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/address-resolver/app/requests"
	"github.com/address-resolver/app/responses"
	"github.com/address-resolver/app/services"
	"github.com/address-resolver/helpers/utils"
)

// GeocodeController serves the address resolution endpoints.
type GeocodeController struct {
	geocodeService *services.GeocodeService
	logger         *zap.Logger
}

func NewGeocodeController(geocodeService *services.GeocodeService, logger *zap.Logger) *GeocodeController {
	return &GeocodeController{
		geocodeService: geocodeService,
		logger:         logger,
	}
}

// Geocode resolves a single address.
func (gc *GeocodeController) Geocode(c *gin.Context) {
	var req requests.GeocodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:     "INVALID_REQUEST",
			Message:   err.Error(),
			Timestamp: time.Now().Format(time.RFC3339),
		})
		return
	}

	start := time.Now()
	result, cacheHit, err := gc.geocodeService.Geocode(c.Request.Context(), req.Address, req.Options)
	if err != nil {
		gc.logger.Error("geocode failed",
			zap.String("address", req.Address),
			zap.Error(err))
		c.JSON(http.StatusBadGateway, responses.ErrorResponse{
			Error:     "GEOCODE_ERROR",
			Message:   err.Error(),
			Timestamp: time.Now().Format(time.RFC3339),
		})
		return
	}

	c.JSON(http.StatusOK, responses.GeocodeResponse{
		Result:           result,
		GazetteerVersion: gc.geocodeService.GazetteerVersion(),
		ProcessingTimeMs: time.Since(start).Milliseconds(),
		CacheHit:         cacheHit,
	})
}

// Normalize runs only the offline normalization pipeline, no backend call.
func (gc *GeocodeController) Normalize(c *gin.Context) {
	var req requests.NormalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:     "INVALID_REQUEST",
			Message:   err.Error(),
			Timestamp: time.Now().Format(time.RFC3339),
		})
		return
	}

	normalized, structured, changes := gc.geocodeService.Normalize(req.Address, req.AsOf)
	c.JSON(http.StatusOK, responses.NormalizeResponse{
		Raw:        req.Address,
		Normalized: normalized,
		Structured: structured,
		Changes:    changes,
	})
}

// BatchGeocode queues a background job for many addresses.
func (gc *GeocodeController) BatchGeocode(c *gin.Context) {
	var req requests.BatchGeocodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:     "INVALID_REQUEST",
			Message:   err.Error(),
			Timestamp: time.Now().Format(time.RFC3339),
		})
		return
	}

	jobID := utils.GenerateUUID()
	go gc.geocodeService.ProcessBatchJob(jobID, req.Addresses, req.Options)

	c.JSON(http.StatusAccepted, responses.BatchGeocodeResponse{
		JobID:            jobID,
		EstimatedSeconds: gc.geocodeService.EstimateBatchSeconds(len(req.Addresses)),
		TotalAddresses:   len(req.Addresses),
		Message:          "job accepted",
	})
}

// GetJobStatus reports batch job progress.
func (gc *GeocodeController) GetJobStatus(c *gin.Context) {
	jobID := c.Param("jobID")

	status, err := gc.geocodeService.GetJobStatus(jobID)
	if err != nil {
		c.JSON(http.StatusNotFound, responses.ErrorResponse{
			Error:     "JOB_NOT_FOUND",
			Message:   err.Error(),
			Timestamp: time.Now().Format(time.RFC3339),
		})
		return
	}

	c.JSON(http.StatusOK, responses.JobStatusResponse{
		JobID:     status.JobID,
		Status:    status.Status,
		Progress:  status.Progress,
		Processed: status.Processed,
		Total:     status.Total,
		Message:   status.Message,
	})
}

// GetJobResults returns a finished job's rows.
func (gc *GeocodeController) GetJobResults(c *gin.Context) {
	jobID := c.Param("jobID")

	results, err := gc.geocodeService.GetJobResults(jobID)
	if err != nil {
		c.JSON(http.StatusNotFound, responses.ErrorResponse{
			Error:     "RESULTS_NOT_FOUND",
			Message:   err.Error(),
			Timestamp: time.Now().Format(time.RFC3339),
		})
		return
	}

	c.JSON(http.StatusOK, responses.JobResultsResponse{
		JobID:   jobID,
		Results: results,
		Total:   len(results),
	})
}

// HealthCheck reports liveness.
func (gc *GeocodeController) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, responses.HealthCheckResponse{
		Status:        "ok",
		Version:       gc.geocodeService.GazetteerVersion(),
		UptimeSeconds: int64(time.Since(gc.geocodeService.GetStartTime()).Seconds()),
		Timestamp:     time.Now().Format(time.RFC3339),
	})
}
