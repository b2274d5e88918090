package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang-asset-analytics/internal/api/config"
	delivery "golang-asset-analytics/internal/api/delivery/http"
	"golang-asset-analytics/internal/api/delivery/http/middleware"
	"golang-asset-analytics/internal/api/repository"
	"golang-asset-analytics/internal/api/service"
	"golang-asset-analytics/internal/provider"
	"golang-asset-analytics/internal/quotes"
	"golang-asset-analytics/pkg/logger"
	"golang-asset-analytics/pkg/postgres"
	"golang-asset-analytics/pkg/redis"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the API service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	// Create a context that is canceled on interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting API Service", logger.Field("name", cfg.App.Name))

	// Initialize database
	postgresCfg := postgres.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}
	db, err := postgres.NewDB(postgresCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize database", logger.ErrorField(err))
	}
	if sqlDB, err := db.DB.DB(); err == nil {
		defer sqlDB.Close()
	}

	// Initialize Redis
	redisCfg := redis.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	}
	redisClient, err := redis.NewClient(redisCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize Redis", logger.ErrorField(err))
	}
	defer redisClient.Close()

	// Shared quote cache written by the worker service
	var quoteTTL time.Duration
	if cfg.Quotes.TTL != "" {
		quoteTTL, err = time.ParseDuration(cfg.Quotes.TTL)
		if err != nil {
			appLogger.Fatal("Invalid quote cache TTL", logger.ErrorField(err))
		}
	}
	quoteStore := quotes.NewStore(redisClient.Client, quoteTTL)

	// Sparkline series providers
	finnhubClient := provider.NewFinnhubClient(cfg.Finnhub, appLogger)
	coingeckoClient := provider.NewCoinGeckoClient(cfg.CoinGecko, appLogger)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.DB)
	assetRepo := repository.NewAssetRepository(db.DB)
	predictionRepo := repository.NewPricePredictionRepository(db.DB)
	newsRepo := repository.NewNewsRepository(db.DB)
	contactRepo := repository.NewContactRepository(db.DB)

	// Initialize services
	authSvc := service.NewAuthService(userRepo, cfg, appLogger)
	assetSvc := service.NewAssetService(assetRepo, predictionRepo, newsRepo, quoteStore, finnhubClient, coingeckoClient, appLogger)
	analyticsSvc := service.NewAnalyticsService(newsRepo, appLogger)
	profileSvc := service.NewProfileService(userRepo, assetRepo, predictionRepo, assetSvc, appLogger)
	dashboardSvc := service.NewDashboardService(userRepo, predictionRepo, newsRepo, assetSvc, appLogger)
	contactSvc := service.NewContactService(contactRepo, appLogger)

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())

	// Initialize handlers and routes
	apiV1 := e.Group("/api/v1")

	authHandler := delivery.NewAuthHandler(authSvc, appLogger)
	authHandler.RegisterRoutes(apiV1.Group("/auth"))

	assetHandler := delivery.NewAssetHandler(assetSvc, appLogger)
	assetHandler.RegisterRoutes(apiV1)

	analyticsHandler := delivery.NewAnalyticsHandler(analyticsSvc, appLogger)
	analyticsHandler.RegisterRoutes(apiV1)

	contactHandler := delivery.NewContactHandler(contactSvc, appLogger)
	contactHandler.RegisterRoutes(apiV1)

	authenticated := apiV1.Group("", middleware.JWT(cfg.JWT.Secret))
	profileHandler := delivery.NewProfileHandler(profileSvc, dashboardSvc, appLogger)
	profileHandler.RegisterRoutes(authenticated)

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop() // trigger shutdown
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	// Gracefully shutdown the server
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}

func main() {
	rootCmd := &cobra.Command{Use: "api-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-api.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing api-service CLI: %s\n", err)
		os.Exit(1)
	}
}
