package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListApartments(c *gin.Context) {
	list := h.apartments.List()
	c.JSON(http.StatusOK, gin.H{"apartments": list, "count": len(list)})
}

func (h *Handler) GetApartment(c *gin.Context) {
	a, ok := h.apartments.Get(c.Param("id"))
	if !ok {
		notFound(c, "apartment")
		return
	}
	c.JSON(http.StatusOK, a)
}
