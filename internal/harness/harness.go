package harness

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"formatbench/internal/model"
	"formatbench/internal/registry"
	"formatbench/internal/utils"
)

// Harness executes every enabled combination of the benchmark matrix for a
// dataset, N trials each, strictly sequentially. Trials never run
// concurrently: overlapping I/O would skew the measurements.
type Harness struct {
	trials   int
	registry *registry.Registry
	metrics  *RunMetrics
	logger   *zap.Logger
}

// New creates a new timing harness
func New(trials int, reg *registry.Registry, metrics *RunMetrics, logger *zap.Logger) *Harness {
	return &Harness{
		trials:   trials,
		registry: reg,
		metrics:  metrics,
		logger:   logger,
	}
}

// Run executes the full matrix for one dataset in deterministic order:
// engine declaration order, then format order, write then read per trial
// index. Returns every trial, failed ones included.
func (h *Harness) Run(ds *model.Dataset) ([]model.Trial, error) {
	if h.trials < 1 {
		return nil, utils.NewInsufficientTrialsError(fmt.Sprintf("trial count must be at least 1, got %d", h.trials))
	}

	var trials []model.Trial
	for _, engine := range model.EngineOrder {
		for _, format := range model.FormatOrder {
			if !registry.Enabled(engine, format, model.OperationWrite) {
				continue
			}
			trials = append(trials, h.runCombination(ds, engine, format)...)

			// Drop the intermediate file before the next combination so
			// disk usage stays bounded.
			if path := h.registry.Path(engine, format); path != "" {
				os.Remove(path)
			}
		}
	}
	return trials, nil
}

// runCombination executes all trials for one (engine, format) pair. A read
// trial always consumes the file the preceding write trial produced, so
// every engine reads its own output.
func (h *Harness) runCombination(ds *model.Dataset, engine model.EngineType, format model.FormatType) []model.Trial {
	writeWork, err := h.registry.Get(model.Combination{Engine: engine, Format: format, Operation: model.OperationWrite})
	if err != nil {
		h.logger.Warn("No write operation registered",
			zap.String("engine", string(engine)),
			zap.String("format", string(format)))
		return nil
	}
	readWork, err := h.registry.Get(model.Combination{Engine: engine, Format: format, Operation: model.OperationRead})
	if err != nil {
		h.logger.Warn("No read operation registered",
			zap.String("engine", string(engine)),
			zap.String("format", string(format)))
		return nil
	}

	path := h.registry.Path(engine, format)
	trials := make([]model.Trial, 0, h.trials*2)

	for i := 0; i < h.trials; i++ {
		write := h.timed(ds.Name, engine, format, model.OperationWrite, writeWork)
		if write.Success {
			if info, err := os.Stat(path); err == nil {
				write.FileSize = info.Size()
			}
		}
		h.metrics.Record(&write)
		trials = append(trials, write)

		var read model.Trial
		if write.Success {
			read = h.timed(ds.Name, engine, format, model.OperationRead, readWork)
		} else {
			read = model.Trial{
				Dataset:   ds.Name,
				Engine:    engine,
				Format:    format,
				Operation: model.OperationRead,
				Success:   false,
				Error:     "no input file: preceding write trial failed",
			}
		}
		h.metrics.Record(&read)
		trials = append(trials, read)
	}

	failures := 0
	for i := range trials {
		if !trials[i].Success {
			failures++
		}
	}
	h.logger.Info("Combination completed",
		zap.String("dataset", ds.Name),
		zap.String("engine", string(engine)),
		zap.String("format", string(format)),
		zap.Int("trials", len(trials)),
		zap.Int("failures", failures))

	return trials
}

// timed runs one unit of work under the monotonic clock. Panics from codec
// libraries become failed trials instead of aborting the run.
func (h *Harness) timed(dataset string, engine model.EngineType, format model.FormatType, op model.OperationKind, work registry.UnitOfWork) (trial model.Trial) {
	trial = model.Trial{
		Dataset:   dataset,
		Engine:    engine,
		Format:    format,
		Operation: op,
	}

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			trial.Duration = time.Since(start)
			trial.Success = false
			trial.Error = utils.NewTrialExecutionError(fmt.Errorf("%v", r), "panic during trial").Error()
		}
	}()

	err := work()
	trial.Duration = time.Since(start)

	if err != nil {
		trial.Success = false
		trial.Error = err.Error()
	} else {
		trial.Success = true
	}
	return trial
}
