package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"golang-asset-analytics/internal/provider"
	"golang-asset-analytics/internal/quotes"
	"golang-asset-analytics/internal/worker/analysis"
	"golang-asset-analytics/internal/worker/config"
	"golang-asset-analytics/internal/worker/delivery/consumer"
	"golang-asset-analytics/internal/worker/repository"
	"golang-asset-analytics/internal/worker/service"
	"golang-asset-analytics/internal/worker/strategy"
	"golang-asset-analytics/pkg/common"
	"golang-asset-analytics/pkg/logger"
	"golang-asset-analytics/pkg/postgres"
	"golang-asset-analytics/pkg/redis"
	"golang-asset-analytics/pkg/telegram"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the worker service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

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

	appLogger.Info("Starting Worker Service", zap.String("name", cfg.App.Name))

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
		appLogger.Fatal("Failed to initialize database", zap.Error(err))
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
		appLogger.Fatal("Failed to initialize Redis", zap.Error(err))
	}
	defer redisClient.Close()

	// Create the consumer group if it doesn't exist.
	// MKSTREAM creates the stream if it doesn't exist.
	if err := redisClient.Client.XGroupCreateMkStream(context.Background(), common.SchedulerTaskExecutionEventName, common.RedisStreamGroup, "0").Err(); err != nil {
		if err.Error() != "BUSYGROUP Consumer Group name already exists" {
			appLogger.Fatal("Failed to create consumer group", logger.ErrorField(err))
		}
	}

	// Initialize repositories
	jobRepo := repository.NewJobRepository(db.DB)
	historyRepo := repository.NewTaskExecutionHistoryRepository(db.DB)
	assetRepo := repository.NewAssetRepository(db.DB)
	priceRepo := repository.NewHistoricalPriceRepository(db.DB)
	predictionRepo := repository.NewPricePredictionRepository(db.DB)
	newsRepo := repository.NewNewsRepository(db.DB)
	sentimentRepo := repository.NewSentimentRepository(db.DB)
	statsRepo := repository.NewAssetStatsRepository(db.DB)

	// Initialize AI provider. Commentary is skipped when no key is set.
	var aiRepo repository.AIRepository
	if cfg.Gemini.APIKey != "" {
		genAiClient, err := genai.NewClient(context.Background(), &genai.ClientConfig{
			APIKey: cfg.Gemini.APIKey,
		})
		if err != nil {
			appLogger.Fatal("Failed to initialize Gemini AI client", zap.Error(err))
		}
		aiRepo, err = repository.NewGeminiAIRepository(cfg, appLogger, genAiClient)
		if err != nil {
			appLogger.Fatal("Failed to initialize Gemini AI repository", zap.Error(err))
		}
	}

	// Initialize Telegram notifier. Failure alerts are dropped when no bot
	// token is set.
	var notifier telegram.Notifier = telegram.NopNotifier{}
	if cfg.Telegram.BotToken != "" {
		notifier, err = telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			appLogger.Fatal("Failed to initialize Telegram notifier", zap.Error(err))
		}
	}

	// Initialize market-data and news providers
	finnhubClient := provider.NewFinnhubClient(cfg.Finnhub, appLogger)
	cmcClient := provider.NewCoinMarketCapClient(cfg.CoinMarketCap, appLogger)
	newsDataClient := provider.NewNewsDataClient(cfg.NewsData, appLogger)

	// Shared quote cache read by the API service
	quoteStore := quotes.NewStore(redisClient.Client, 0)

	// Initialize strategies
	strategies := []strategy.JobExecutionStrategy{
		strategy.NewPriceIngestionStrategy(
			appLogger,
			assetRepo,
			priceRepo,
			finnhubClient,
			cmcClient,
			quoteStore,
			cfg.Worker.ConvertCurrency,
		),
		strategy.NewNewsIngestionStrategy(
			appLogger,
			newsDataClient,
			newsRepo,
			assetRepo,
			aiRepo,
			cfg.Worker.RSSFeeds,
		),
		strategy.NewPredictionGenerationStrategy(
			appLogger,
			assetRepo,
			priceRepo,
			predictionRepo,
			quoteStore,
			analysis.NewRandomPredictor(),
		),
		strategy.NewSentimentGenerationStrategy(
			appLogger,
			assetRepo,
			sentimentRepo,
		),
		strategy.NewStatsRecomputeStrategy(
			appLogger,
			assetRepo,
			priceRepo,
			statsRepo,
			analysis.NewStatsCalculator(),
		),
	}

	// Initialize executor service
	executorSvc := service.NewExecutorService(redisClient.Client, jobRepo, historyRepo, notifier, appLogger, strategies)

	// Initialize and start the Redis consumer
	redisConsumer := consumer.NewRedisConsumer(cfg, redisClient.Client, executorSvc, appLogger)
	redisConsumer.Start(ctx)

	appLogger.Info("Worker service started. Waiting for tasks...")

	// Wait for interrupt signal to gracefully shut down the service
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down worker service...")
	cancel()
	redisConsumer.Stop()
	appLogger.Info("Worker service stopped.")
}

func main() {
	rootCmd := &cobra.Command{Use: "worker-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-worker.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing worker-service CLI: %s\n", err)
		os.Exit(1)
	}
}
