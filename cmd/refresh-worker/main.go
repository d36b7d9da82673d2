package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"reputation-scryper/internal/collector/bootstrap"
	"reputation-scryper/internal/collector/config"
	"reputation-scryper/internal/collector/delivery/consumer"
	"reputation-scryper/internal/collector/service"
	"reputation-scryper/pkg/common"
	"reputation-scryper/pkg/logger"
	"reputation-scryper/pkg/postgres"
	"reputation-scryper/pkg/redis"
	"reputation-scryper/pkg/telegram"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the refresh worker",
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

	appLogger.Info("Starting Refresh Worker", logger.StringField("name", cfg.App.Name))

	// Initialize database
	db, err := postgres.NewDB(postgres.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		TimeZone:        cfg.Database.TimeZone,
		LogLevel:        cfg.Database.LogLevel,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		appLogger.Fatal("Failed to initialize database", logger.ErrorField(err))
	}
	if sqlDB, err := db.DB.DB(); err == nil {
		defer sqlDB.Close()
	}

	// Initialize Redis
	redisClient, err := redis.NewClient(redis.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	if err != nil {
		appLogger.Fatal("Failed to initialize Redis", logger.ErrorField(err))
	}
	defer redisClient.Close()

	if err := redisClient.EnsureGroup(ctx, common.RedisStreamRefresh, common.RedisStreamGroup); err != nil {
		appLogger.Fatal("Failed to create consumer group", logger.ErrorField(err))
	}

	telegramNotifier, err := telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
	if err != nil {
		appLogger.Fatal("Failed to initialize Telegram notifier", logger.ErrorField(err))
	}

	pipeline, err := bootstrap.NewPipeline(ctx, cfg, db.DB, redisClient.Client, telegramNotifier, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize acquisition pipeline", logger.ErrorField(err))
	}
	defer pipeline.Close()

	// Scheduled refreshes are published to the same stream this worker consumes.
	scheduler := service.NewRefreshScheduler(
		cfg.Collector.Schedule,
		pipeline.CompanyRepo,
		service.NewStreamPublisher(redisClient.Client, common.RedisStreamRefresh, cfg.Redis.StreamMaxLen),
		appLogger,
	)
	if err := scheduler.Start(ctx); err != nil {
		appLogger.Fatal("Failed to start refresh scheduler", logger.ErrorField(err))
	}

	redisConsumer := consumer.NewRedisConsumer(cfg, pipeline.RefreshTasks, appLogger)
	redisConsumer.Start(ctx)

	appLogger.Info("Refresh worker started. Waiting for tasks...")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down refresh worker...")
	cancel()
	scheduler.Stop()
	redisConsumer.Stop()
	appLogger.Info("Refresh worker stopped.")
}

func main() {
	rootCmd := &cobra.Command{Use: "refresh-worker"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-worker.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing refresh-worker CLI: %s\n", err)
		os.Exit(1)
	}
}
