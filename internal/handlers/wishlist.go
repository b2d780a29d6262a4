package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetWishlist(c *gin.Context) {
	ids := h.wishlist.IDs()
	c.JSON(http.StatusOK, gin.H{"propertyIds": ids, "count": len(ids)})
}

type wishlistRequest struct {
	PropertyID string `json:"propertyId"`
}

func (h *Handler) AddToWishlist(c *gin.Context) {
	var req wishlistRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.wishlist.Add(c.Request.Context(), req.PropertyID); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"propertyId": req.PropertyID, "inWishlist": true})
}

func (h *Handler) WishlistContains(c *gin.Context) {
	id := c.Param("propertyId")
	c.JSON(http.StatusOK, gin.H{"propertyId": id, "inWishlist": h.wishlist.Contains(id)})
}

func (h *Handler) RemoveFromWishlist(c *gin.Context) {
	id := c.Param("propertyId")
	if err := h.wishlist.Remove(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"propertyId": id, "inWishlist": false})
}

func (h *Handler) ClearWishlist(c *gin.Context) {
	if err := h.wishlist.Clear(c.Request.Context()); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"propertyIds": []string{}, "count": 0})
}
