package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"ceylonmart-be/internal/catalog"
	"ceylonmart-be/internal/config"
	"ceylonmart-be/internal/db"
	"ceylonmart-be/internal/logger"
	"ceylonmart-be/internal/middleware"
	"ceylonmart-be/internal/order"
	"ceylonmart-be/internal/payhere"
	"ceylonmart-be/internal/payment"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	orderRepo := order.NewRepository(database)
	paymentRepo := payment.NewRepository(database)
	signer := payhere.NewSigner(cfg.MerchantID, cfg.MerchantSecret)
	paymentSvc := payment.NewService(orderRepo, paymentRepo, signer, cfg)
	paymentHandler := payment.NewHandler(paymentSvc)

	catalogRepo := catalog.NewRepository(database)
	catalogSvc := catalog.NewService(catalogRepo)
	catalogHandler := catalog.NewHandler(catalogSvc)

	router := setupRouter(cfg, paymentHandler, catalogHandler)

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.L().Info("🚀 Server running", zap.String("port", cfg.AppPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()

	logger.L().Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.L().Error("Graceful shutdown failed", zap.Error(err))
	}
}

func setupRouter(cfg *config.Config, paymentHandler *payment.Handler, catalogHandler *catalog.Handler) *gin.Engine {
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.RateLimit())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "https://ceylonmart.lk"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		api.POST("/payments/initiate", paymentHandler.Initiate)
		api.GET("/payments/status", paymentHandler.Status)
		api.POST("/webhooks/payment-gateway", paymentHandler.Webhook)

		api.GET("/brands", catalogHandler.Brands)
		api.GET("/categories", catalogHandler.Categories)
		api.GET("/products/filters-meta", catalogHandler.FiltersMeta)
	}

	return router
}
