package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"property-storefront/internal/apartments"
	"property-storefront/internal/catalog"
	"property-storefront/internal/config"
	"property-storefront/internal/database"
	"property-storefront/internal/handlers"
	"property-storefront/internal/logger"
	"property-storefront/internal/metrics"
	"property-storefront/internal/orders"
	"property-storefront/internal/ratelimit"
	"property-storefront/internal/scheduler"
	"property-storefront/internal/search"
	"property-storefront/internal/subscriptions"
	"property-storefront/internal/wishlist"
)

func main() {
	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLog, err := logger.New(appConfig.Logging)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zapLog.Sync() //nolint:errcheck

	if appConfig.Timezone != "" {
		if loc, err := time.LoadLocation(appConfig.Timezone); err == nil {
			time.Local = loc
		} else {
			zapLog.Warn("Unknown timezone, keeping system default", zap.String("timezone", appConfig.Timezone))
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize storage based on configuration
	port, closeStorage, err := database.Open(ctx, appConfig.Storage, zapLog)
	if err != nil {
		zapLog.Fatal("Failed to open storage", zap.String("backend", appConfig.Storage.Backend), zap.Error(err))
	}
	defer closeStorage() //nolint:errcheck

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.New(registry, "storefront")

	// Initialize Meilisearch when configured
	var (
		searchIndex  *search.CircuitBreaker
		indexer      catalog.Indexer
		textSearcher handlers.TextSearcher
	)
	if appConfig.Search.Enabled() {
		searchClient := search.NewSearchClient(appConfig.Search.Meilisearch.Host, appConfig.Search.Meilisearch.APIKey)
		if err := searchClient.InitIndex(); err != nil {
			zapLog.Warn("Failed to initialize search index", zap.Error(err))
		}
		searchIndex = search.NewCircuitBreaker(searchClient, 3, 30*time.Second, zapLog)
		indexer, textSearcher = searchIndex, searchIndex
	}

	propertyCatalog, err := catalog.Open(ctx, port, catalog.Options{
		Sizes:   appConfig.Seed.Properties,
		Logger:  zapLog,
		Indexer: indexer,
	})
	if err != nil {
		zapLog.Fatal("Failed to open catalog", zap.Error(err))
	}

	orderOpts := orders.Options{Logger: zapLog, Recorder: appMetrics}
	if format := appConfig.Orders.ContractURLFormat; format != "" {
		orderOpts.ContractURL = func(orderID string) string {
			return fmt.Sprintf(format, orderID)
		}
	}
	ledger, err := orders.Open(ctx, port, propertyCatalog, orderOpts)
	if err != nil {
		zapLog.Fatal("Failed to open orders", zap.Error(err))
	}

	gate, err := subscriptions.Open(ctx, port, zapLog)
	if err != nil {
		zapLog.Fatal("Failed to open subscriptions", zap.Error(err))
	}
	favorites, err := wishlist.Open(ctx, port, zapLog)
	if err != nil {
		zapLog.Fatal("Failed to open wishlist", zap.Error(err))
	}
	stays, err := apartments.Open(ctx, port, appConfig.Seed.Apartments, zapLog)
	if err != nil {
		zapLog.Fatal("Failed to open apartments", zap.Error(err))
	}

	// Initialize and start scheduler (search index only)
	var reindexer handlers.Reindexer
	if searchIndex != nil {
		appScheduler := scheduler.NewScheduler(propertyCatalog, searchIndex,
			appConfig.Search.ReindexTime, appConfig.Search.ReindexEnabled, zapLog)
		if err := appScheduler.Start(); err != nil {
			zapLog.Warn("Failed to start scheduler", zap.Error(err))
		}
		defer appScheduler.Stop()
		reindexer = appScheduler
	}

	// Initialize rate limiter
	rateLimiter := ratelimit.NewRateLimiter(
		appConfig.RateLimit.RequestsPerMinute,
		appConfig.RateLimit.RequestsPerHour,
		appConfig.RateLimit.Enabled,
	)
	zapLog.Info("Rate limiter initialized",
		zap.Int("per_minute", appConfig.RateLimit.RequestsPerMinute),
		zap.Int("per_hour", appConfig.RateLimit.RequestsPerHour),
		zap.Bool("enabled", appConfig.RateLimit.Enabled))

	if appConfig.Logging.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.Middleware(zapLog, appConfig.Logging.LogRequests))
	r.Use(appMetrics.Middleware())

	// CORS configuration
	r.Use(cors.New(cors.Config{
		AllowOrigins:     appConfig.Server.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", logger.RequestIDHeader},
		ExposeHeaders:    []string{logger.RequestIDHeader},
		AllowCredentials: true,
	}))

	h := handlers.New(handlers.Deps{
		Catalog:       propertyCatalog,
		Orders:        ledger,
		Subscriptions: gate,
		Wishlist:      favorites,
		Apartments:    stays,
		Searcher:      textSearcher,
		Reindexer:     reindexer,
		SigningDelay:  appConfig.Orders.SigningDelay(),
		Logger:        zapLog,
	})
	h.Register(r, ratelimit.Middleware(rateLimiter, appMetrics.RecordRateLimited))
	r.GET("/metrics", gin.WrapH(appMetrics.Handler()))
	r.GET("/api/ratelimit/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, rateLimiter.GetStats(c.ClientIP()))
	})

	srv := &http.Server{
		Addr:              ":" + appConfig.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zapLog.Info("Server starting", zap.String("port", appConfig.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zapLog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Server shutdown failed", zap.Error(err))
	}
}
