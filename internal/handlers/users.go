package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"property-storefront/internal/models"
)

// UserProperties returns the listings a user is selling.
func (h *Handler) UserProperties(c *gin.Context) {
	props := h.catalog.BySeller(c.Param("userId"))
	if props == nil {
		props = []models.Property{}
	}
	c.JSON(http.StatusOK, gin.H{"properties": props, "count": len(props)})
}

// OwnedProperties returns the listings a user bought.
func (h *Handler) OwnedProperties(c *gin.Context) {
	ids := h.orders.OwnedPropertyIDs(c.Param("userId"))
	props := make([]models.Property, 0, len(ids))
	for _, id := range ids {
		if p, ok := h.catalog.Get(id); ok {
			props = append(props, p)
		}
	}
	c.JSON(http.StatusOK, gin.H{"properties": props, "count": len(props)})
}

func (h *Handler) UserOrders(c *gin.Context) {
	list := h.orders.GetUserOrders(c.Param("userId"))
	if list == nil {
		list = []models.Order{}
	}
	c.JSON(http.StatusOK, gin.H{"orders": list, "count": len(list)})
}

func (h *Handler) GetSubscriptions(c *gin.Context) {
	rec, err := h.subscriptions.GetUserSubscriptions(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

type activateRequest struct {
	Type models.SubscriptionKind `json:"type"`
}

func (h *Handler) ActivateSubscription(c *gin.Context) {
	var req activateRequest
	if !bindJSON(c, &req) {
		return
	}
	rec, err := h.subscriptions.ActivateSubscription(c.Request.Context(), c.Param("userId"), req.Type)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}
