package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"property-storefront/internal/catalog"
	"property-storefront/internal/logger"
	"property-storefront/internal/models"
)

// parseFilters builds catalog filters from query parameters. Malformed
// values are a ValidationError rather than silently ignored.
func parseFilters(c *gin.Context) (catalog.Filters, error) {
	f := catalog.Filters{
		State: c.Query("state"),
		City:  c.Query("city"),
		Query: c.Query("q"),
		Sort:  catalog.Sort(c.Query("sort")),
	}

	if v := c.Query("type"); v != "" {
		t := models.ListingType(v)
		if !t.Valid() {
			return f, models.NewValidationError("type", "must be buy or rent")
		}
		f.Type = &t
	}
	if v := c.Query("category"); v != "" {
		cat := models.Category(v)
		if !cat.Valid() {
			return f, models.NewValidationError("category", "must be apartment, house, villa or condo")
		}
		f.Category = &cat
	}
	if f.Sort != catalog.SortStore && f.Sort != catalog.SortRecent {
		return f, models.NewValidationError("sort", "must be empty or recent")
	}

	var err error
	if f.MinPrice, err = queryInt64(c, "min_price"); err != nil {
		return f, err
	}
	if f.MaxPrice, err = queryInt64(c, "max_price"); err != nil {
		return f, err
	}
	if f.MinBedrooms, err = queryInt(c, "min_bedrooms"); err != nil {
		return f, err
	}
	if f.MaxBedrooms, err = queryInt(c, "max_bedrooms"); err != nil {
		return f, err
	}
	if f.MinArea, err = queryFloat(c, "min_area"); err != nil {
		return f, err
	}
	if f.MaxArea, err = queryFloat(c, "max_area"); err != nil {
		return f, err
	}
	limit, err := queryInt(c, "limit")
	if err != nil {
		return f, err
	}
	if limit != nil {
		f.Limit = *limit
	}
	return f, nil
}

func queryInt64(c *gin.Context, key string) (*int64, error) {
	s := c.Query(key)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, models.NewValidationError(key, "must be an integer")
	}
	return &v, nil
}

func queryInt(c *gin.Context, key string) (*int, error) {
	s := c.Query(key)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, models.NewValidationError(key, "must be an integer")
	}
	return &v, nil
}

func queryFloat(c *gin.Context, key string) (*float64, error) {
	s := c.Query(key)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, models.NewValidationError(key, "must be a number")
	}
	return &v, nil
}

// ListProperties returns listings matching the query filters.
func (h *Handler) ListProperties(c *gin.Context) {
	filters, err := parseFilters(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	props := h.catalog.Search(filters)
	c.JSON(http.StatusOK, gin.H{
		"properties": props,
		"count":      len(props),
	})
}

// RecentProperties returns listings newest first.
func (h *Handler) RecentProperties(c *gin.Context) {
	limit, err := queryInt(c, "limit")
	if err != nil {
		h.respondError(c, err)
		return
	}
	n := 0
	if limit != nil {
		n = *limit
	}
	props := h.catalog.Recent(n)
	c.JSON(http.StatusOK, gin.H{
		"properties": props,
		"count":      len(props),
	})
}

func (h *Handler) GetProperty(c *gin.Context) {
	p, ok := h.catalog.Get(c.Param("id"))
	if !ok {
		notFound(c, "property")
		return
	}
	c.JSON(http.StatusOK, p)
}

// CreateProperty lists a new property. The seller needs a sell subscription.
func (h *Handler) CreateProperty(c *gin.Context) {
	var p models.Property
	if !bindJSON(c, &p) {
		return
	}
	if strings.TrimSpace(p.SellerID) == "" {
		h.respondError(c, models.NewValidationError("sellerId", "is required"))
		return
	}
	ctx := c.Request.Context()
	if err := h.subscriptions.RequireSell(ctx, p.SellerID); err != nil {
		h.respondError(c, err)
		return
	}

	created, err := h.catalog.Create(ctx, p)
	if err != nil {
		h.respondError(c, err)
		return
	}
	logger.FromContext(c, h.log).Info("property listed",
		zap.String("property_id", created.ID),
		zap.String("seller_id", created.SellerID))
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) UpdateProperty(c *gin.Context) {
	var patch catalog.Patch
	if !bindJSON(c, &patch) {
		return
	}
	updated, found, err := h.catalog.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !found {
		notFound(c, "property")
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) DeleteProperty(c *gin.Context) {
	deleted, err := h.catalog.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !deleted {
		notFound(c, "property")
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true, "id": c.Param("id")})
}

type relistRequest struct {
	SellerID      string         `json:"sellerId"`
	SellerContact models.Contact `json:"sellerContact"`
	Price         int64          `json:"price"`
}

// RelistProperty puts a property the seller bought back on the market.
func (h *Handler) RelistProperty(c *gin.Context) {
	var req relistRequest
	if !bindJSON(c, &req) {
		return
	}
	if strings.TrimSpace(req.SellerID) == "" {
		h.respondError(c, models.NewValidationError("sellerId", "is required"))
		return
	}
	if req.Price <= 0 {
		h.respondError(c, models.NewValidationError("price", "must be positive"))
		return
	}

	id := c.Param("id")
	ctx := c.Request.Context()
	if _, ok := h.catalog.Get(id); !ok {
		notFound(c, "property")
		return
	}
	if err := h.subscriptions.RequireSell(ctx, req.SellerID); err != nil {
		h.respondError(c, err)
		return
	}
	if !h.orders.Owns(req.SellerID, id) {
		c.JSON(http.StatusForbidden, gin.H{"error": "property is not owned by seller"})
		return
	}

	updated, found, err := h.catalog.Relist(ctx, id, catalog.RelistRequest{
		SellerID: req.SellerID,
		Contact:  req.SellerContact,
		Price:    req.Price,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !found {
		notFound(c, "property")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// TextSearch answers free-text queries from the search index when one is
// configured, and from the catalog otherwise or when the index fails.
func (h *Handler) TextSearch(c *gin.Context) {
	filters, err := parseFilters(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if filters.Limit <= 0 {
		filters.Limit = 20
	}

	if h.searcher != nil && strings.TrimSpace(filters.Query) != "" {
		ids, err := h.searcher.Search(filters.Query, filters, int64(filters.Limit))
		if err == nil {
			props := make([]models.Property, 0, len(ids))
			for _, id := range ids {
				// the index may lag the catalog and cannot match state/city substrings
				if p, ok := h.catalog.Get(id); ok && filters.Match(&p) {
					props = append(props, p)
				}
			}
			c.JSON(http.StatusOK, gin.H{"properties": props, "count": len(props), "source": "index"})
			return
		}
		logger.FromContext(c, h.log).Warn("search index query failed, using catalog", zap.Error(err))
	}

	props := h.catalog.Search(filters)
	c.JSON(http.StatusOK, gin.H{"properties": props, "count": len(props), "source": "catalog"})
}
