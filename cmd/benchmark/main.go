package main

import (
	"log"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"formatbench/internal/aggregate"
	"formatbench/internal/config"
	"formatbench/internal/dataset"
	"formatbench/internal/engines"
	"formatbench/internal/harness"
	"formatbench/internal/logging"
	"formatbench/internal/model"
	"formatbench/internal/registry"
	"formatbench/internal/report"
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

	inputs, err := resolveInputs(cfg, logger)
	if err != nil {
		logger.Fatal("Input resolution failed", zap.Error(err))
	}

	// Intermediate files from an aborted previous run must not leak into
	// this one.
	if err := os.RemoveAll(cfg.Benchmark.TempDir); err != nil {
		logger.Fatal("Cannot reset temp directory", zap.Error(err))
	}
	if err := os.MkdirAll(cfg.Benchmark.TempDir, 0o755); err != nil {
		logger.Fatal("Cannot create temp directory", zap.Error(err))
	}
	defer os.RemoveAll(cfg.Benchmark.TempDir)

	metrics := harness.NewRunMetrics()
	engineList := engines.All()

	var allTrials []model.Trial
	for _, path := range inputs {
		ds, err := dataset.ReadExcel(path)
		if err != nil {
			logger.Fatal("Dataset ingestion failed",
				zap.String("path", path),
				zap.Error(err))
		}

		logger.Info("Benchmarking dataset",
			zap.String("dataset", ds.Name),
			zap.Int("rows", ds.Rows),
			zap.Int("columns", ds.NumColumns()))

		reg := registry.New(ds, engineList, cfg.Benchmark.TempDir)
		h := harness.New(cfg.Benchmark.Trials, reg, metrics, logger)

		trials, err := h.Run(ds)
		if err != nil {
			logger.Fatal("Benchmark run failed",
				zap.String("dataset", ds.Name),
				zap.Error(err))
		}
		allTrials = append(allTrials, trials...)
	}

	results, err := aggregate.Aggregate(allTrials, cfg.Benchmark.TrimPercent)
	if err != nil {
		logger.Fatal("Aggregation failed", zap.Error(err))
	}

	rep := &model.Report{RunID: runID, Results: results}
	if err := report.Write(rep, cfg.Benchmark.ReportPath); err != nil {
		logger.Fatal("Report write failed",
			zap.String("path", cfg.Benchmark.ReportPath),
			zap.Error(err))
	}

	summary := metrics.Summary()
	logger.Info("Benchmark completed",
		zap.String("report", cfg.Benchmark.ReportPath),
		zap.Any("total_trials", summary["total_trials"]),
		zap.Any("failed_trials", summary["failed_trials"]),
		zap.Any("success_rate", summary["success_rate"]),
		zap.Any("elapsed_seconds", summary["elapsed_seconds"]))
}

// resolveInputs lists the xlsx sources, smallest first. When the input
// directory is empty a single dataset is generated in place, if the
// configuration allows it.
func resolveInputs(cfg *config.Config, logger *zap.Logger) ([]string, error) {
	inputs, err := dataset.ListInputFiles(cfg.Benchmark.DataDir)
	if err != nil {
		return nil, err
	}
	if len(inputs) > 0 {
		return inputs, nil
	}

	if !cfg.Benchmark.GenerateIfMissing {
		return nil, utils.NewSetupError(nil, "no input datasets found in "+cfg.Benchmark.DataDir)
	}

	logger.Info("No input datasets found, generating one",
		zap.Int("rows", cfg.Dataset.Rows),
		zap.Int("columns", cfg.Dataset.Columns))

	ds, err := dataset.Generate("generated", cfg.Dataset.Rows, cfg.Dataset.Columns, cfg.Dataset.Seed)
	if err != nil {
		return nil, err
	}
	path := filepath.Join(cfg.Benchmark.DataDir, "generated.xlsx")
	if err := dataset.WriteExcel(ds, path); err != nil {
		return nil, err
	}
	return []string{path}, nil
}
