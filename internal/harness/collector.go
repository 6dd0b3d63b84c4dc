package harness

import (
	"sync"
	"time"

	"formatbench/internal/model"
)

// RunMetrics tallies trial outcomes across one benchmark run. It feeds the
// end-of-run summary log, not the report.
type RunMetrics struct {
	engines map[model.EngineType]*EngineMetrics
	mutex   sync.RWMutex

	totalTrials  int64
	failedTrials int64
	startTime    time.Time
}

// EngineMetrics holds per-engine trial counters
type EngineMetrics struct {
	Engine        model.EngineType
	Trials        int64
	Failures      int64
	TotalDuration time.Duration
	MinDuration   time.Duration
	MaxDuration   time.Duration
}

// NewRunMetrics creates a new run metrics collector
func NewRunMetrics() *RunMetrics {
	return &RunMetrics{
		engines:   make(map[model.EngineType]*EngineMetrics),
		startTime: time.Now(),
	}
}

// Record records the outcome of one trial
func (rm *RunMetrics) Record(trial *model.Trial) {
	if trial == nil {
		return
	}

	rm.mutex.Lock()
	defer rm.mutex.Unlock()

	em, exists := rm.engines[trial.Engine]
	if !exists {
		em = &EngineMetrics{
			Engine:      trial.Engine,
			MinDuration: trial.Duration,
			MaxDuration: trial.Duration,
		}
		rm.engines[trial.Engine] = em
	}

	em.Trials++
	em.TotalDuration += trial.Duration
	if trial.Duration < em.MinDuration {
		em.MinDuration = trial.Duration
	}
	if trial.Duration > em.MaxDuration {
		em.MaxDuration = trial.Duration
	}

	rm.totalTrials++
	if !trial.Success {
		em.Failures++
		rm.failedTrials++
	}
}

// EngineSummary returns a copy of the per-engine counters
func (rm *RunMetrics) EngineSummary() map[model.EngineType]EngineMetrics {
	rm.mutex.RLock()
	defer rm.mutex.RUnlock()

	result := make(map[model.EngineType]EngineMetrics, len(rm.engines))
	for engine, em := range rm.engines {
		result[engine] = *em
	}
	return result
}

// Summary returns run-wide counters for the final log line
func (rm *RunMetrics) Summary() map[string]interface{} {
	rm.mutex.RLock()
	defer rm.mutex.RUnlock()

	summary := map[string]interface{}{
		"total_trials":    rm.totalTrials,
		"failed_trials":   rm.failedTrials,
		"elapsed_seconds": time.Since(rm.startTime).Seconds(),
		"success_rate":    0.0,
	}
	if rm.totalTrials > 0 {
		summary["success_rate"] = float64(rm.totalTrials-rm.failedTrials) / float64(rm.totalTrials)
	}
	return summary
}
