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

	"golang-stock-screener/internal/screener/config"
	delivery "golang-stock-screener/internal/screener/delivery/http"
	_ "golang-stock-screener/internal/screener/docs"
	"golang-stock-screener/internal/screener/repository"
	"golang-stock-screener/internal/screener/service"
	"golang-stock-screener/pkg/logger"
	"golang-stock-screener/pkg/postgres"
	"golang-stock-screener/pkg/redis"
	"golang-stock-screener/pkg/utils"

	"github.com/spf13/cobra"
	"google.golang.org/genai"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the screener service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting Screener Service",
		logger.Field("name", cfg.App.Name),
		logger.StringField("storage", cfg.Screener.Storage))

	// Database is required for postgres storage. Otherwise it only backs
	// user accounts, which are disabled when it is unreachable.
	var db *postgres.DB
	if cfg.Database.Host != "" {
		conn, err := postgres.NewDB(postgres.FromConfig(cfg.Database))
		switch {
		case err == nil:
			db = conn
			if sqlDB, err := db.DB.DB(); err == nil {
				defer sqlDB.Close()
			}
		case cfg.RequiresDatabase():
			appLogger.Fatal("Failed to initialize database", logger.ErrorField(err))
		default:
			appLogger.Warn("Database unavailable, user accounts disabled", logger.ErrorField(err))
		}
	} else if cfg.RequiresDatabase() {
		appLogger.Fatal("Postgres storage selected but no database configured")
	}

	translationCache := repository.NewNoopTranslationCacheRepository()
	if cfg.Redis.Enabled() {
		redisClient, err := redis.NewClient(redis.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err != nil {
			appLogger.Warn("Redis unavailable, translation cache disabled", logger.ErrorField(err))
		} else {
			defer redisClient.Close()
			translationCache = repository.NewRedisTranslationCacheRepository(redisClient.Client, cfg.Cache.TranslationTTL)
		}
	}

	var aiRepo repository.AIRepository
	genAiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.Gemini.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		appLogger.Warn("Gemini client unavailable, only rule-matched queries will be answered", logger.ErrorField(err))
		aiRepo = repository.NewUnavailableAIRepository(err)
	} else {
		aiRepo = repository.NewGeminiAIRepository(cfg.Gemini, appLogger, genAiClient)
	}

	// Initialize repositories
	var store repository.SeriesRepository
	switch cfg.Screener.Storage {
	case config.StoragePostgres:
		store = repository.NewPostgresSeriesRepository(db.DB)
	default:
		store = repository.NewCSVSeriesRepository(cfg.Screener.DataDir, cfg.Screener.FilePrefix, cfg.Screener.FileSuffix, appLogger)
	}
	seriesRepo := repository.NewCachedSeriesRepository(store, cfg.Cache.SeriesTTL, appLogger)

	// Initialize services
	chatSvc := service.NewChatService(service.ChatDependencies{
		SmallTalk:  service.NewSmallTalkService(),
		Extractor:  service.NewQueryExtractor(),
		Translator: service.NewQueryTranslator(aiRepo, translationCache, cfg.Gemini, appLogger),
		Resolver:   service.NewSymbolResolver(seriesRepo),
		Screener:   service.NewScreener(seriesRepo, cfg.Screener.ScanWorkers, appLogger),
		Ranker:     service.NewRanker(cfg.Screener.DefaultLimit),
		SeriesRepo: seriesRepo,
	}, appLogger)

	refreshSvc, err := service.NewRefreshService(seriesRepo, cfg.Cache.RefreshCron, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize cache refresh", logger.ErrorField(err))
	}
	utils.GoSafe(func() { refreshSvc.Start(ctx) })

	var authHandler *delivery.AuthHandler
	if db != nil {
		authSvc := service.NewAuthService(repository.NewUserRepository(db.DB), appLogger)
		authHandler = delivery.NewAuthHandler(authSvc, appLogger)
	}

	e := delivery.NewRouter(delivery.NewChatHandler(chatSvc, appLogger), authHandler, appLogger)
	e.Server.ReadTimeout = cfg.API.ReadTimeout
	e.Server.WriteTimeout = cfg.API.WriteTimeout

	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop()
		}
	}()

	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.API.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}

// @title Stock Screener API
// @version 1.0
// @description Natural language screening over per-symbol price datasets.
// @BasePath /api/v1
func main() {
	rootCmd := &cobra.Command{Use: "screener-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-screener.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing screener-service CLI: %s\n", err)
		os.Exit(1)
	}
}
