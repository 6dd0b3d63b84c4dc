package main

import (
	"log"
	"path/filepath"

	"go.uber.org/zap"

	"formatbench/internal/config"
	"formatbench/internal/dataset"
	"formatbench/internal/logging"
	"formatbench/internal/utils"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	runID := utils.NewRunID()
	logger = logger.With(zap.String("run_id", runID))

	logger.Info("Generating datasets",
		zap.Int("count", len(cfg.Dataset.Sizes)),
		zap.String("output_dir", cfg.Benchmark.DataDir))

	for _, size := range cfg.Dataset.Sizes {
		ds, err := dataset.Generate(size.Name, size.Rows, size.Columns, cfg.Dataset.Seed)
		if err != nil {
			logger.Fatal("Dataset generation failed",
				zap.String("dataset", size.Name),
				zap.Error(err))
		}

		path := filepath.Join(cfg.Benchmark.DataDir, size.Name+".xlsx")
		if err := dataset.WriteExcel(ds, path); err != nil {
			logger.Fatal("Dataset write failed",
				zap.String("dataset", size.Name),
				zap.String("path", path),
				zap.Error(err))
		}

		logger.Info("Dataset written",
			zap.String("dataset", size.Name),
			zap.Int("rows", size.Rows),
			zap.Int("columns", size.Columns),
			zap.String("path", path))
	}

	logger.Info("Generation completed")
}
