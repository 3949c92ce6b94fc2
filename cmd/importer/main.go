package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"golang-stock-screener/internal/screener/config"
	"golang-stock-screener/internal/screener/repository"
	"golang-stock-screener/internal/screener/service"
	"golang-stock-screener/pkg/logger"
	"golang-stock-screener/pkg/postgres"

	"github.com/spf13/cobra"
)

var (
	configPath string
	dataDir    string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Loads dataset files into the stock_prices table",
	RunE:  runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
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

	db, err := postgres.NewDB(postgres.FromConfig(cfg.Database))
	if err != nil {
		appLogger.Fatal("Failed to initialize database", logger.ErrorField(err))
	}
	if sqlDB, err := db.DB.DB(); err == nil {
		defer sqlDB.Close()
	}

	if dataDir == "" {
		dataDir = cfg.Screener.DataDir
	}

	importSvc := service.NewImportService(
		repository.NewPostgresSeriesRepository(db.DB),
		repository.NewImportJobRepository(db.DB),
		cfg.Screener.FilePrefix,
		cfg.Screener.FileSuffix,
		appLogger,
	)

	summaries, err := importSvc.ImportDir(ctx, dataDir)
	for _, s := range summaries {
		if s.Error != "" {
			fmt.Printf("%-20s %-30s FAILED %s\n", s.Symbol, s.File, s.Error)
			continue
		}
		fmt.Printf("%-20s %-30s %d rows\n", s.Symbol, s.File, s.Rows)
	}
	return err
}

func main() {
	rootCmd := &cobra.Command{Use: "importer"}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/config-screener.yaml", "Path to the configuration file")
	runCmd.Flags().StringVarP(&dataDir, "dir", "d", "", "Directory of dataset files (defaults to screener.data_dir)")

	rootCmd.AddCommand(runCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing importer CLI: %s\n", err)
		os.Exit(1)
	}
}
