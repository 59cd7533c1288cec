package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/cloud-wave-best-zizon/stock-service/internal/catalog"
	"github.com/cloud-wave-best-zizon/stock-service/internal/dispatch"
	"github.com/cloud-wave-best-zizon/stock-service/internal/domain"
	"github.com/cloud-wave-best-zizon/stock-service/internal/events"
	"github.com/cloud-wave-best-zizon/stock-service/internal/fulfillment"
	"github.com/cloud-wave-best-zizon/stock-service/internal/server"
	"github.com/cloud-wave-best-zizon/stock-service/internal/session"
	"github.com/cloud-wave-best-zizon/stock-service/pkg/config"
	"github.com/cloud-wave-best-zizon/stock-service/pkg/metrics"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger.Info("Service configuration",
		zap.String("listen_addr", cfg.ListenAddr),
		zap.String("ops_port", cfg.OpsPort),
		zap.String("kafka_brokers", cfg.KafkaBrokers),
		zap.Duration("delivery_base", cfg.DeliveryBase),
		zap.Duration("delivery_jitter", cfg.DeliveryJitter))

	// Initialize components
	m := metrics.NewServerMetrics(prometheus.DefaultRegisterer)

	producer := events.NewProducer(cfg.KafkaBrokers, logger)
	defer producer.Close()
	if !producer.Enabled() {
		logger.Info("Kafka publishing disabled, no brokers configured")
	}

	cat := catalog.New()
	if cfg.SeedCatalog {
		seedCatalog(cat)
		logger.Info("Catalog seeded", zap.Int("products", cat.Len()))
	}

	registry := session.NewRegistry()
	seat := &session.AdminSeat{}
	orderIDs := &domain.OrderSequence{}

	pipeline := fulfillment.New(cfg.DeliveryBase, cfg.DeliveryJitter, producer, m, logger)
	dispatcher := dispatch.New(cat, registry, seat, orderIDs, pipeline, producer, m, logger)

	srv := server.New(cfg.ListenAddr, dispatcher, logger)
	if err := srv.Start(); err != nil {
		logger.Fatal("Failed to start TCP server", zap.Error(err))
	}

	// Ops surface: health + metrics
	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"service":  "stock-service",
			"addr":     srv.Addr(),
			"products": cat.Len(),
			"kafka":    producer.Enabled(),
		})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	opsServer := &http.Server{
		Addr:    ":" + cfg.OpsPort,
		Handler: router,
	}
	go func() {
		logger.Info("Starting ops HTTP server", zap.String("port", cfg.OpsPort))
		if err := opsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Ops server failed", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down servers...")
	if err := srv.Shutdown(); err != nil {
		logger.Error("TCP server shutdown failed", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := opsServer.Shutdown(ctx); err != nil {
		logger.Error("Ops server shutdown failed", zap.Error(err))
	}

	logger.Info("All servers stopped")
}

func seedCatalog(cat *catalog.Catalog) {
	cat.Add("P001", "Laptop", 10, decimal.NewFromFloat(700.0))
	cat.Add("P002", "Mouse", 50, decimal.NewFromFloat(20.0))
	cat.Add("P003", "Keyboard", 30, decimal.NewFromFloat(50.0))
	cat.Add("P004", "Monitor", 20, decimal.NewFromFloat(150.0))
}
