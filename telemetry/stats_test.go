package telemetry

import (
	"math"
	"testing"
)

func TestComputeDistStats(t *testing.T) {
	values := []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}
	mean, std, p10, p50, p90 := ComputeDistStats(values)

	if math.Abs(mean-55) > 0.001 {
		t.Errorf("mean = %v, want 55", mean)
	}

	// Sample standard deviation of an even 10..100 spread.
	if math.Abs(std-30.2765) > 0.001 {
		t.Errorf("std = %v, want ~30.2765", std)
	}

	// Empirical quantiles pick the smallest sample covering p.
	if p10 != 10 {
		t.Errorf("p10 = %v, want 10", p10)
	}
	if p50 != 50 {
		t.Errorf("p50 = %v, want 50", p50)
	}
	if p90 != 90 {
		t.Errorf("p90 = %v, want 90", p90)
	}
}

func TestComputeDistStatsUnsortedInput(t *testing.T) {
	// The input need not be sorted, and must not be mutated.
	values := []float64{50, 10, 30}
	_, _, p10, p50, p90 := ComputeDistStats(values)

	if p10 != 10 || p50 != 30 || p90 != 50 {
		t.Errorf("percentiles = %v/%v/%v, want 10/30/50", p10, p50, p90)
	}
	if values[0] != 50 || values[1] != 10 || values[2] != 30 {
		t.Errorf("input mutated: %v", values)
	}
}

func TestComputeDistStatsSingle(t *testing.T) {
	mean, std, p10, p50, p90 := ComputeDistStats([]float64{42})

	if mean != 42 || p10 != 42 || p50 != 42 || p90 != 42 {
		t.Errorf("single sample: mean/p10/p50/p90 = %v/%v/%v/%v, want all 42", mean, p10, p50, p90)
	}
	if std != 0 {
		t.Errorf("std = %v, want 0 for single sample", std)
	}
}

func TestComputeDistStatsEmpty(t *testing.T) {
	mean, std, p10, p50, p90 := ComputeDistStats([]float64{})

	if mean != 0 || std != 0 || p10 != 0 || p50 != 0 || p90 != 0 {
		t.Error("empty slice should return all zeros")
	}
}
