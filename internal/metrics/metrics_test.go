package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"property-storefront/internal/models"
)

func TestOrderCounters(t *testing.T) {
	m := New(prometheus.NewRegistry(), "storefront")
	m.OrderCreated(models.ListingTypeBuy)
	m.OrderCreated(models.ListingTypeBuy)
	m.OrderTransitioned(models.OrderStatusConfirmed)

	if got := testutil.ToFloat64(m.OrdersCreated.WithLabelValues("buy")); got != 2 {
		t.Fatalf("expected 2 buy orders, got %v", got)
	}
	if got := testutil.ToFloat64(m.OrderTransitions.WithLabelValues("confirmed")); got != 1 {
		t.Fatalf("expected 1 confirmation, got %v", got)
	}
}

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New(prometheus.NewRegistry(), "storefront")

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/api/properties/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/properties/1", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/properties/2", nil))

	if got := testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/api/properties/:id", "200")); got != 2 {
		t.Fatalf("expected 2 requests on the route template, got %v", got)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(w.Body.String(), "storefront_http_requests_total") {
		t.Fatalf("expected exposition to include request counter, got:\n%s", w.Body.String())
	}
}
