package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"property-storefront/internal/logger"
	"property-storefront/internal/orders"
)

func (h *Handler) CreateOrder(c *gin.Context) {
	var req orders.CreateRequest
	if !bindJSON(c, &req) {
		return
	}
	id, err := h.orders.CreateOrder(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	order, _ := h.orders.GetOrder(id)
	c.JSON(http.StatusCreated, gin.H{"id": id, "order": order})
}

func (h *Handler) ListOrders(c *gin.Context) {
	all := h.orders.GetAllOrders()
	c.JSON(http.StatusOK, gin.H{"orders": all, "count": len(all)})
}

func (h *Handler) GetOrder(c *gin.Context) {
	o, ok := h.orders.GetOrder(c.Param("id"))
	if !ok {
		notFound(c, "order")
		return
	}
	c.JSON(http.StatusOK, o)
}

type verifyRequest struct {
	GovtID     string `json:"govtId"`
	SignerName string `json:"signerName"`
}

// VerifyIdentity records the buyer's identity check. Blank fields leave the
// order unverified without an error.
func (h *Handler) VerifyIdentity(c *gin.Context) {
	var req verifyRequest
	if !bindJSON(c, &req) {
		return
	}
	o, found, err := h.orders.VerifyIdentity(c.Request.Context(), c.Param("id"), req.GovtID, req.SignerName)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !found {
		notFound(c, "order")
		return
	}
	c.JSON(http.StatusOK, o)
}

type signRequest struct {
	SignerName string `json:"signerName"`
}

// SignContract signs after the configured pacing delay. A client that goes
// away during the delay leaves the order untouched.
func (h *Handler) SignContract(c *gin.Context) {
	var req signRequest
	if !bindJSON(c, &req) {
		return
	}
	ctx := c.Request.Context()
	o, err := h.orders.SignContractAfter(ctx, h.signingDelay, c.Param("id"), req.SignerName)
	if err != nil {
		if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
			logger.FromContext(c, h.log).Info("signing abandoned by client", zap.String("order_id", c.Param("id")))
			c.Status(499)
			return
		}
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h *Handler) CancelOrder(c *gin.Context) {
	o, err := h.orders.CancelOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// GetContract serves the signed agreement as plain text.
func (h *Handler) GetContract(c *gin.Context) {
	contract, err := h.orders.Contract(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="contract-`+contract.OrderID+`.txt"`)
	c.String(http.StatusOK, contract.Text)
}
