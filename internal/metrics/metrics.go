// Package metrics exposes Prometheus counters for HTTP traffic and the order lifecycle.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"property-storefront/internal/models"
)

// Metrics holds every collector registered by the storefront.
type Metrics struct {
	gatherer prometheus.Gatherer

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	OrdersCreated       *prometheus.CounterVec
	OrderTransitions    *prometheus.CounterVec
	RateLimited         *prometheus.CounterVec
}

// New registers the collectors on reg under prefix.
func New(reg *prometheus.Registry, prefix string) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		gatherer: reg,
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		OrdersCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_orders_created_total",
				Help: "Total number of orders placed",
			},
			[]string{"type"},
		),
		OrderTransitions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_order_transitions_total",
				Help: "Total number of order status transitions",
			},
			[]string{"to"},
		),
		RateLimited: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_rate_limited_total",
				Help: "Total number of requests rejected by the rate limiter",
			},
			[]string{"path"},
		),
	}
}

// OrderCreated counts a new order.
func (m *Metrics) OrderCreated(t models.ListingType) {
	m.OrdersCreated.WithLabelValues(string(t)).Inc()
}

// OrderTransitioned counts an order reaching status to.
func (m *Metrics) OrderTransitioned(to models.OrderStatus) {
	m.OrderTransitions.WithLabelValues(string(to)).Inc()
}

// RecordRateLimited counts a rejected request.
func (m *Metrics) RecordRateLimited(path string) {
	m.RateLimited.WithLabelValues(path).Inc()
}

// Middleware records request counts and durations by route template.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		m.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		m.HTTPRequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
