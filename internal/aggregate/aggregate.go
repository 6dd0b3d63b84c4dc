package aggregate

import (
	"time"

	"formatbench/internal/model"
	"formatbench/internal/stats"
)

type groupKey struct {
	dataset string
	combo   model.Combination
}

// Aggregate groups the trials of a run by (dataset, engine, format,
// operation), computes trimmed-mean statistics per group, and annotates the
// fastest engine per (dataset, format, operation). Groups whose every trial
// failed come back with status "error" and no statistics.
func Aggregate(trials []model.Trial, trimFraction float64) ([]model.AggregateResult, error) {
	var order []groupKey
	samples := make(map[groupKey][]time.Duration)
	attempts := make(map[groupKey]int)
	failures := make(map[groupKey]int)
	sizes := make(map[groupKey]int64)

	for i := range trials {
		t := &trials[i]
		key := groupKey{dataset: t.Dataset, combo: t.Combination()}
		if _, seen := attempts[key]; !seen {
			order = append(order, key)
		}
		attempts[key]++
		if !t.Success {
			failures[key]++
			continue
		}
		samples[key] = append(samples[key], t.Duration)
		if t.Operation == model.OperationWrite && sizes[key] == 0 && t.FileSize > 0 {
			sizes[key] = t.FileSize
		}
	}

	results := make([]model.AggregateResult, 0, len(order))
	for _, key := range order {
		result := model.AggregateResult{
			Dataset:   key.dataset,
			Engine:    key.combo.Engine,
			Format:    key.combo.Format,
			Operation: key.combo.Operation,
			Trials:    attempts[key],
			Failures:  failures[key],
		}

		durations := samples[key]
		if len(durations) == 0 {
			result.Status = model.StatusError
			results = append(results, result)
			continue
		}

		mean, err := stats.TrimmedMeanDuration(durations, trimFraction)
		if err != nil {
			return nil, err
		}
		result.TrimmedMean = mean
		result.Min, result.Max = stats.MinMaxDuration(durations)
		result.FileSize = fileSizeFor(key, sizes)
		result.Status = model.StatusOK
		results = append(results, result)
	}

	markFastest(results)
	return results, nil
}

// fileSizeFor resolves the representative file size for a group. Read
// groups inherit the size recorded by the matching write group.
func fileSizeFor(key groupKey, sizes map[groupKey]int64) int64 {
	if key.combo.Operation == model.OperationWrite {
		return sizes[key]
	}
	writeKey := key
	writeKey.combo.Operation = model.OperationWrite
	return sizes[writeKey]
}

// markFastest flags the winning engine per (dataset, format, operation).
// Ties break on smaller file size, then on engine declaration order, so the
// annotation is deterministic.
func markFastest(results []model.AggregateResult) {
	type raceKey struct {
		dataset   string
		format    model.FormatType
		operation model.OperationKind
	}

	best := make(map[raceKey]int)
	for i := range results {
		r := &results[i]
		if r.Status != model.StatusOK {
			continue
		}
		key := raceKey{dataset: r.Dataset, format: r.Format, operation: r.Operation}
		current, exists := best[key]
		if !exists || beats(r, &results[current]) {
			best[key] = i
		}
	}

	for _, i := range best {
		results[i].Fastest = true
	}
}

// beats reports whether a should win the race over b.
func beats(a, b *model.AggregateResult) bool {
	if a.TrimmedMean != b.TrimmedMean {
		return a.TrimmedMean < b.TrimmedMean
	}
	if a.FileSize != b.FileSize {
		return a.FileSize < b.FileSize
	}
	return engineRank(a.Engine) < engineRank(b.Engine)
}

func engineRank(engine model.EngineType) int {
	for i, e := range model.EngineOrder {
		if e == engine {
			return i
		}
	}
	return len(model.EngineOrder)
}
