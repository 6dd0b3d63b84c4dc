package stats

import (
	"math"
	"testing"
	"time"
)

func TestTrimmedMeanPlainMean(t *testing.T) {
	samples := []float64{1, 2, 3, 4}

	mean, err := TrimmedMean(samples, 0)
	if err != nil {
		t.Fatalf("TrimmedMean failed: %v", err)
	}
	if mean != 2.5 {
		t.Errorf("Expected plain mean 2.5, got %v", mean)
	}
}

func TestTrimmedMeanDropsOutliers(t *testing.T) {
	// Five samples at 20% trim drop exactly one value from each end,
	// leaving the middle three.
	samples := []float64{0.10, 0.11, 0.50, 0.12, 0.09}

	mean, err := TrimmedMean(samples, 0.2)
	if err != nil {
		t.Fatalf("TrimmedMean failed: %v", err)
	}
	expected := (0.10 + 0.11 + 0.12) / 3
	if math.Abs(mean-expected) > 1e-12 {
		t.Errorf("Expected trimmed mean %v, got %v", expected, mean)
	}
}

func TestTrimmedMeanWithinRange(t *testing.T) {
	samples := []float64{3, 9, 1, 7, 5, 2, 8}

	mean, err := TrimmedMean(samples, 0.25)
	if err != nil {
		t.Fatalf("TrimmedMean failed: %v", err)
	}
	if mean < 1 || mean > 9 {
		t.Errorf("Trimmed mean %v outside sample range [1, 9]", mean)
	}
}

func TestTrimmedMeanMedianFallback(t *testing.T) {
	// Two samples at 49% trim would drop both ends, so the median is used.
	samples := []float64{1, 3}

	mean, err := TrimmedMean(samples, 0.49)
	if err != nil {
		t.Fatalf("TrimmedMean failed: %v", err)
	}
	if mean != 2 {
		t.Errorf("Expected median fallback 2, got %v", mean)
	}
}

func TestTrimmedMeanSingleSample(t *testing.T) {
	mean, err := TrimmedMean([]float64{0.42}, 0.2)
	if err != nil {
		t.Fatalf("TrimmedMean failed: %v", err)
	}
	if mean != 0.42 {
		t.Errorf("Expected single-sample mean 0.42, got %v", mean)
	}
}

func TestTrimmedMeanRejectsEmptyInput(t *testing.T) {
	if _, err := TrimmedMean(nil, 0.1); err == nil {
		t.Error("Expected error for empty sample set")
	}
}

func TestTrimmedMeanRejectsBadFraction(t *testing.T) {
	for _, frac := range []float64{-0.1, 0.5, 1.0} {
		if _, err := TrimmedMean([]float64{1, 2, 3}, frac); err == nil {
			t.Errorf("Expected error for trim fraction %v", frac)
		}
	}
}

func TestTrimmedMeanDuration(t *testing.T) {
	samples := []time.Duration{
		100 * time.Millisecond,
		110 * time.Millisecond,
		500 * time.Millisecond,
		120 * time.Millisecond,
		90 * time.Millisecond,
	}

	mean, err := TrimmedMeanDuration(samples, 0.2)
	if err != nil {
		t.Fatalf("TrimmedMeanDuration failed: %v", err)
	}
	expected := (100*time.Millisecond + 110*time.Millisecond + 120*time.Millisecond) / 3
	if mean != expected {
		t.Errorf("Expected %v, got %v", expected, mean)
	}
}

func TestMinMaxDuration(t *testing.T) {
	samples := []time.Duration{
		3 * time.Second,
		time.Second,
		2 * time.Second,
	}

	min, max := MinMaxDuration(samples)
	if min != time.Second {
		t.Errorf("Expected min 1s, got %v", min)
	}
	if max != 3*time.Second {
		t.Errorf("Expected max 3s, got %v", max)
	}

	min, max = MinMaxDuration(nil)
	if min != 0 || max != 0 {
		t.Errorf("Expected zero min/max for empty input, got %v/%v", min, max)
	}
}
