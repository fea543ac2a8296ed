package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"stockmanager/models"
	"stockmanager/services/analytics"
)

// threshold reads ?threshold=, falling back to the configured limit.
func (h *Handlers) threshold(c *gin.Context) (int, bool) {
	raw := c.Query("threshold")
	if raw == "" {
		return h.LowStockThreshold, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "threshold must be a non-negative integer"})
		return 0, false
	}
	return n, true
}

// GetTotalValue returns the summed value of all stock.
func (h *Handlers) GetTotalValue(c *gin.Context) {
	total, err := h.Analytics.TotalInventoryValue(c.Request.Context())
	if err != nil {
		h.storageError(c, "failed to compute inventory value", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"total_value": total})
}

// GetLowStockAlerts returns items whose quantity is below the threshold.
func (h *Handlers) GetLowStockAlerts(c *gin.Context) {
	limit, ok := h.threshold(c)
	if !ok {
		return
	}

	items, err := h.Analytics.LowStockItems(c.Request.Context(), limit)
	if err != nil {
		h.storageError(c, "failed to load low stock items", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"threshold": limit,
		"items":     models.Views(items),
	})
}

// GetValueBySupplier returns stock value grouped by supplier name.
func (h *Handlers) GetValueBySupplier(c *gin.Context) {
	values, err := h.Analytics.ValueBySupplier(c.Request.Context())
	if err != nil {
		h.storageError(c, "failed to compute supplier values", err)
		return
	}

	c.JSON(http.StatusOK, values)
}

// GetInventoryLevels returns quantity per item name.
func (h *Handlers) GetInventoryLevels(c *gin.Context) {
	levels, err := h.Analytics.InventoryLevels(c.Request.Context())
	if err != nil {
		h.storageError(c, "failed to compute inventory levels", err)
		return
	}

	c.JSON(http.StatusOK, levels)
}

// GetCategoryBreakdown returns the category value series.
func (h *Handlers) GetCategoryBreakdown(c *gin.Context) {
	c.JSON(http.StatusOK, analytics.InventoryValueByCategory())
}

// GetMonthlySales returns the monthly sales series.
func (h *Handlers) GetMonthlySales(c *gin.Context) {
	c.JSON(http.StatusOK, analytics.MonthlySales())
}

// GetDashboard returns the post-login overview.
func (h *Handlers) GetDashboard(c *gin.Context) {
	limit, ok := h.threshold(c)
	if !ok {
		return
	}

	summary, err := h.Analytics.Dashboard(c.Request.Context(), limit)
	if err != nil {
		h.storageError(c, "failed to build dashboard", err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetChart lays a named series out as pie slices.
func (h *Handlers) GetChart(c *gin.Context) {
	ctx := c.Request.Context()

	var points []models.DataPoint
	switch c.Param("series") {
	case "value-by-supplier":
		values, err := h.Analytics.ValueBySupplier(ctx)
		if err != nil {
			h.storageError(c, "failed to compute supplier values", err)
			return
		}
		points = analytics.SortedPoints(values)
	case "inventory-levels":
		levels, err := h.Analytics.InventoryLevels(ctx)
		if err != nil {
			h.storageError(c, "failed to compute inventory levels", err)
			return
		}
		points = analytics.QuantityPoints(levels)
	case "category-breakdown":
		points = analytics.InventoryValueByCategory()
	case "monthly-sales":
		points = analytics.MonthlySales()
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown chart series"})
		return
	}

	c.JSON(http.StatusOK, analytics.PieSlices(points))
}
