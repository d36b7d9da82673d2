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

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	swagger "github.com/swaggo/echo-swagger"

	"reputation-scryper/internal/collector/bootstrap"
	"reputation-scryper/internal/dashboard/config"
	delivery "reputation-scryper/internal/dashboard/delivery/http"
	_ "reputation-scryper/internal/dashboard/docs"
	"reputation-scryper/internal/dashboard/repository"
	"reputation-scryper/internal/dashboard/service"
	"reputation-scryper/pkg/logger"
	"reputation-scryper/pkg/postgres"
	"reputation-scryper/pkg/redis"
	"reputation-scryper/pkg/telegram"
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

	appLogger.Info("Starting API Service", logger.StringField("name", cfg.App.Name))
	if cfg.Auth.JWTSecret == "" {
		appLogger.Warn("auth.jwt_secret is empty, every authenticated route will answer 401")
	}

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

	telegramNotifier, err := telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
	if err != nil {
		appLogger.Fatal("Failed to initialize Telegram notifier", logger.ErrorField(err))
	}

	pipeline, err := bootstrap.NewPipeline(ctx, &cfg.Config, db.DB, redisClient.Client, telegramNotifier, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize acquisition pipeline", logger.ErrorField(err))
	}
	defer pipeline.Close()

	// Initialize repositories
	companyRepo := repository.NewCompanyRepository(db.DB)
	analyticsRepo := repository.NewAnalyticsRepository(db.DB)

	// Initialize services
	dashboardSvc := service.NewDashboardService(cfg, companyRepo, analyticsRepo, appLogger)
	sampleSvc := service.NewSampleService(pipeline.Acquisition, pipeline.Normalizer, cfg.Dashboard.SampleSize, appLogger)
	refreshTrigger := service.NewRefreshTrigger(companyRepo, pipeline.RefreshTasks)

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true
	e.Validator = delivery.NewRequestValidator()
	e.Use(middleware.Recover())

	apiV1 := e.Group("/api/v1")
	auth := delivery.JWTAuth(cfg.Auth.JWTSecret)

	dashboardHandler := delivery.NewDashboardHandler(dashboardSvc, appLogger)
	dashboardHandler.RegisterRoutes(apiV1.Group("/dashboard", auth))

	refreshHandler := delivery.NewRefreshHandler(refreshTrigger, appLogger)
	refreshHandler.RegisterRoutes(apiV1.Group("/data", auth))

	sampleHandler := delivery.NewSampleHandler(sampleSvc, appLogger)
	sampleHandler.RegisterRoutes(apiV1)

	e.GET("/swagger/*", swagger.WrapHandler)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.StringField("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop() // trigger shutdown
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}

// @title Reputation Scryper API
// @version 1.0
// @description Company reputation refresh and dashboard analytics.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	rootCmd := &cobra.Command{Use: "api-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-api.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing api-service CLI: %s\n", err)
		os.Exit(1)
	}
}
