package indicator

import (
	"math"
	"testing"
)

func TestLogReturns(t *testing.T) {
	returns := LogReturns([]float64{100, 110, 99})

	expected := []float64{math.Log(1.1), math.Log(0.9)}
	if len(returns) != len(expected) {
		t.Fatalf("expected %d values, got %d", len(expected), len(returns))
	}
	for i, v := range expected {
		if !almostEqual(returns[i], v, 1e-12) {
			t.Errorf("returns[%d] = %f, want %f", i, returns[i], v)
		}
	}
}

func TestLogReturns_SkipsNonPositive(t *testing.T) {
	returns := LogReturns([]float64{100, 0, 110, 121})

	if len(returns) != 1 {
		t.Fatalf("expected 1 value, got %d", len(returns))
	}
	if !almostEqual(returns[0], math.Log(1.1), 1e-12) {
		t.Errorf("got %f", returns[0])
	}
}

func TestHistoricalVolatility(t *testing.T) {
	tests := []struct {
		name    string
		prices  []float64
		periods float64
		want    float64
	}{
		{"two returns daily", []float64{100, 110, 99}, 1, 0.14189560954670769},
		{"annualised", []float64{100, 102, 101, 103, 104, 102}, TradingDaysPerYear, 0.2823799780648834},
		{"flat prices", []float64{50, 50, 50, 50}, TradingDaysPerYear, 0},
		{"not enough data", []float64{100, 101}, TradingDaysPerYear, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HistoricalVolatility(tt.prices, tt.periods)
			if !almostEqual(got, tt.want, 1e-9) {
				t.Errorf("HistoricalVolatility() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRollingVolatility(t *testing.T) {
	prices := []float64{100, 102, 101, 103, 104, 102}

	vols := RollingVolatility(prices, 4, TradingDaysPerYear)
	if len(vols) != 3 {
		t.Fatalf("expected 3 values, got %d", len(vols))
	}
	if !almostEqual(vols[0], HistoricalVolatility(prices[:4], TradingDaysPerYear), 1e-12) {
		t.Errorf("first window mismatch: %f", vols[0])
	}

	if got := RollingVolatility(prices, 10, TradingDaysPerYear); len(got) != 0 {
		t.Errorf("expected empty slice, got %d values", len(got))
	}
}

func almostEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) < tolerance
}
