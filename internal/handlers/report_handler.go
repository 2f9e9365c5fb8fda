package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/hotelmaintpro/maintenance-backend/internal/services"
	"github.com/hotelmaintpro/maintenance-backend/internal/store"
)

// ReportHandler handles statistics and export requests
type ReportHandler struct {
	store  *store.Store
	export *services.ExportService
	logger *logrus.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(st *store.Store, export *services.ExportService, logger *logrus.Logger) *ReportHandler {
	return &ReportHandler{store: st, export: export, logger: logger}
}

// Stats handles GET /api/v1/hotels/:id/stats
func (h *ReportHandler) Stats(c *gin.Context) {
	rng, err := dateRangeFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	stats, err := h.store.GetMaintenanceStats(c.Param("id"), rng)
	if err != nil {
		h.logger.WithError(err).Error("Failed to compute stats")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to compute stats",
		})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// CategoryStats handles GET /api/v1/hotels/:id/stats/categories
func (h *ReportHandler) CategoryStats(c *gin.Context) {
	rng, err := dateRangeFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	stats, err := h.store.GetCategoryStats(c.Param("id"), rng)
	if err != nil {
		h.logger.WithError(err).Error("Failed to compute category stats")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to compute category stats",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": stats})
}

// MonthlyStats handles GET /api/v1/hotels/:id/stats/monthly
func (h *ReportHandler) MonthlyStats(c *gin.Context) {
	rng, err := dateRangeFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	stats, err := h.store.GetMonthlyStats(c.Param("id"), rng)
	if err != nil {
		h.logger.WithError(err).Error("Failed to compute monthly stats")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to compute monthly stats",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"monthly": stats})
}

// Export handles GET /api/v1/hotels/:id/export
func (h *ReportHandler) Export(c *gin.Context) {
	bundle, err := h.export.ReportBundle(c.Param("id"))
	if err != nil {
		h.logger.WithError(err).Error("Failed to export data")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to export data",
		})
		return
	}
	c.JSON(http.StatusOK, bundle)
}

// ExportCSV handles GET /api/v1/hotels/:id/export/csv
func (h *ReportHandler) ExportCSV(c *gin.Context) {
	rng, err := dateRangeFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	data, err := h.export.DamagesCSV(c.Param("id"), rng)
	if err != nil {
		h.logger.WithError(err).Error("Failed to export csv")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to export csv",
		})
		return
	}

	filename := fmt.Sprintf("damages-%s.csv", c.Param("id"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
	c.Data(http.StatusOK, "text/csv", data)
}
