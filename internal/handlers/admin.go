package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"property-storefront/internal/logger"
	"property-storefront/internal/models"
)

// GetStats returns listing and order counts by status
func (h *Handler) GetStats(c *gin.Context) {
	stats := make(map[string]interface{})

	// Property counts by status
	propertyCounts := map[models.PropertyStatus]int{
		models.PropertyStatusAvailable: 0,
		models.PropertyStatusPending:   0,
		models.PropertyStatusSold:      0,
	}
	props := h.catalog.List()
	for _, p := range props {
		propertyCounts[p.Status]++
	}
	stats["properties"] = map[string]interface{}{
		"by_status": propertyCounts,
		"total":     len(props),
	}

	// Order counts by status
	orderCounts := map[models.OrderStatus]int{
		models.OrderStatusPending:   0,
		models.OrderStatusConfirmed: 0,
		models.OrderStatusCancelled: 0,
		models.OrderStatusCompleted: 0,
	}
	all := h.orders.GetAllOrders()
	for _, o := range all {
		orderCounts[o.Status]++
	}
	stats["orders"] = map[string]interface{}{
		"by_status": orderCounts,
		"total":     len(all),
	}

	stats["wishlist"] = map[string]interface{}{
		"total": len(h.wishlist.IDs()),
	}
	stats["search_index"] = h.reindexer != nil

	c.JSON(http.StatusOK, stats)
}

// TriggerReindex pushes the whole catalog into the search index
func (h *Handler) TriggerReindex(c *gin.Context) {
	if h.reindexer == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Search index not configured",
		})
		return
	}

	log := logger.FromContext(c, h.log)
	log.Info("manual reindex requested")

	n, err := h.reindexer.RunNow()
	if err != nil {
		log.Error("manual reindex failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Reindex completed",
		"indexed": n,
	})
}
