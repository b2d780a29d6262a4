// Package handlers exposes the storefront core over HTTP.
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"property-storefront/internal/apartments"
	"property-storefront/internal/catalog"
	"property-storefront/internal/logger"
	"property-storefront/internal/models"
	"property-storefront/internal/orders"
	"property-storefront/internal/subscriptions"
	"property-storefront/internal/wishlist"
)

// TextSearcher answers free-text queries with listing ids.
type TextSearcher interface {
	Search(query string, filters catalog.Filters, limit int64) ([]string, error)
}

// Reindexer pushes the whole catalog into the search index.
type Reindexer interface {
	RunNow() (int, error)
}

// Deps are the components the handlers serve.
type Deps struct {
	Catalog       *catalog.Catalog
	Orders        *orders.Ledger
	Subscriptions *subscriptions.Gate
	Wishlist      *wishlist.Set
	Apartments    *apartments.Directory
	// Searcher and Reindexer are nil when no search index is configured.
	Searcher     TextSearcher
	Reindexer    Reindexer
	SigningDelay time.Duration
	Logger       *zap.Logger
}

// Handler serves the storefront API
type Handler struct {
	catalog       *catalog.Catalog
	orders        *orders.Ledger
	subscriptions *subscriptions.Gate
	wishlist      *wishlist.Set
	apartments    *apartments.Directory
	searcher      TextSearcher
	reindexer     Reindexer
	signingDelay  time.Duration
	log           *zap.Logger
}

// New creates a new handler
func New(d Deps) *Handler {
	log := d.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		catalog:       d.Catalog,
		orders:        d.Orders,
		subscriptions: d.Subscriptions,
		wishlist:      d.Wishlist,
		apartments:    d.Apartments,
		searcher:      d.Searcher,
		reindexer:     d.Reindexer,
		signingDelay:  d.SigningDelay,
		log:           log.Named("http"),
	}
}

// Register mounts every route on r. orderLimit guards order creation; nil
// means unlimited.
func (h *Handler) Register(r gin.IRouter, orderLimit gin.HandlerFunc) {
	r.GET("/health", h.HealthCheck)

	api := r.Group("/api")

	props := api.Group("/properties")
	{
		props.GET("", h.ListProperties)
		props.GET("/recent", h.RecentProperties)
		props.GET("/:id", h.GetProperty)
		props.POST("", h.CreateProperty)
		props.PUT("/:id", h.UpdateProperty)
		props.DELETE("/:id", h.DeleteProperty)
		props.POST("/:id/relist", h.RelistProperty)
	}

	users := api.Group("/users/:userId")
	{
		users.GET("/properties", h.UserProperties)
		users.GET("/owned", h.OwnedProperties)
		users.GET("/orders", h.UserOrders)
		users.GET("/subscriptions", h.GetSubscriptions)
		users.POST("/subscriptions", h.ActivateSubscription)
	}

	ord := api.Group("/orders")
	{
		if orderLimit != nil {
			ord.POST("", orderLimit, h.CreateOrder)
		} else {
			ord.POST("", h.CreateOrder)
		}
		ord.GET("", h.ListOrders)
		ord.GET("/:id", h.GetOrder)
		ord.POST("/:id/verify", h.VerifyIdentity)
		ord.POST("/:id/sign", h.SignContract)
		ord.POST("/:id/cancel", h.CancelOrder)
		ord.GET("/:id/contract", h.GetContract)
	}

	wl := api.Group("/wishlist")
	{
		wl.GET("", h.GetWishlist)
		wl.POST("", h.AddToWishlist)
		wl.DELETE("", h.ClearWishlist)
		wl.GET("/:propertyId", h.WishlistContains)
		wl.DELETE("/:propertyId", h.RemoveFromWishlist)
	}

	api.GET("/apartments", h.ListApartments)
	api.GET("/apartments/:id", h.GetApartment)

	api.GET("/search/text", h.TextSearch)

	admin := api.Group("/admin")
	{
		admin.GET("/stats", h.GetStats)
		admin.POST("/reindex", h.TriggerReindex)
	}
}

// HealthCheck reports liveness.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now(),
	})
}

// respondError maps core errors onto HTTP statuses.
func (h *Handler) respondError(c *gin.Context, err error) {
	var ve *models.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Error(), "field": ve.Field})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrSubscriptionRequired):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		logger.FromContext(c, h.log).Error("request failed", zap.Error(err))
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func notFound(c *gin.Context, what string) {
	c.JSON(http.StatusNotFound, gin.H{"error": what + " not found"})
}

// bindJSON decodes the body into dst, answering 400 on malformed input.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return false
	}
	return true
}
