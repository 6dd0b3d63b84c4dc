package stats

import (
	"fmt"
	"sort"
	"time"

	"formatbench/internal/utils"
)

// TrimmedMean computes the mean of samples after discarding trimFraction of
// the values from each end of the sorted set. A fraction of 0 yields the
// plain arithmetic mean. When the requested trim would consume every sample
// the median is returned instead.
func TrimmedMean(samples []float64, trimFraction float64) (float64, error) {
	if len(samples) < 1 {
		return 0, utils.NewInsufficientTrialsError("at least one sample is required")
	}
	if trimFraction < 0 || trimFraction >= 0.5 {
		return 0, utils.NewErrorBuilder(utils.ErrCodeInvalidConfig).
			WithDetails(fmt.Sprintf("trim fraction %v outside [0, 0.5)", trimFraction)).
			Build()
	}

	sorted := make([]float64, len(samples))
	copy(sorted, samples)
	sort.Float64s(sorted)

	drop := int(float64(len(sorted)) * trimFraction)
	if drop*2 >= len(sorted) {
		return median(sorted), nil
	}

	trimmed := sorted[drop : len(sorted)-drop]
	var sum float64
	for _, v := range trimmed {
		sum += v
	}
	return sum / float64(len(trimmed)), nil
}

// TrimmedMeanDuration is TrimmedMean over wall-clock durations.
func TrimmedMeanDuration(samples []time.Duration, trimFraction float64) (time.Duration, error) {
	values := make([]float64, len(samples))
	for i, d := range samples {
		values[i] = float64(d)
	}
	mean, err := TrimmedMean(values, trimFraction)
	if err != nil {
		return 0, err
	}
	return time.Duration(mean), nil
}

// MinMaxDuration returns the smallest and largest sample without trimming.
func MinMaxDuration(samples []time.Duration) (time.Duration, time.Duration) {
	if len(samples) == 0 {
		return 0, 0
	}
	min, max := samples[0], samples[0]
	for _, d := range samples[1:] {
		if d < min {
			min = d
		}
		if d > max {
			max = d
		}
	}
	return min, max
}

func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
