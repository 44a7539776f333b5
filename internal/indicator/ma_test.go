package indicator

import (
	"math"
	"testing"
)

func TestSMA(t *testing.T) {
	tests := []struct {
		name   string
		series []float64
		period int
		want   float64
	}{
		{"empty", nil, 5, 0},
		{"normal window", []float64{1, 2, 3, 4}, 2, 3.5},
		{"whole series", []float64{1, 2, 3, 4}, 4, 2.5},
		{"short series falls back to last", []float64{1, 2, 3, 4}, 10, 4},
		{"zero period falls back to last", []float64{1, 2, 3, 4}, 0, 4},
	}
	for _, tt := range tests {
		if got := SMA(tt.series, tt.period); got != tt.want {
			t.Errorf("%s: expected %.2f, got %.2f", tt.name, tt.want, got)
		}
	}
}

func TestEMA_SeededWithSimpleMean(t *testing.T) {
	// period 2, k=2/3: seed (1+2)/2=1.5, then 2.5, then 3.5
	got := EMA([]float64{1, 2, 3, 4}, 2)
	if math.Abs(got-3.5) > 1e-9 {
		t.Errorf("expected 3.5, got %.6f", got)
	}
}

func TestEMA_ShortSeries(t *testing.T) {
	// Shorter than the period: simple mean of everything available
	got := EMA([]float64{2, 4}, 5)
	if got != 3 {
		t.Errorf("expected mean 3, got %.2f", got)
	}
}

func TestMACD_ShortSeries(t *testing.T) {
	for _, n := range []int{0, 10, 25, 26} {
		series := make([]float64, n)
		for i := range series {
			series[i] = float64(100 + i)
		}
		line, signal := MACD(series)
		if line != 0 || signal != 0 {
			t.Errorf("len %d: expected (0, 0), got (%.4f, %.4f)", n, line, signal)
		}
	}
}

// accelerating builds a convex series: the slope keeps growing, so the
// fast EMA pulls away from the slow one and the MACD line keeps rising
// ahead of its own signal line.
func accelerating(n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = 100 + 0.05*float64(i)*float64(i)
	}
	return s
}

func TestMACD_SignalNeedsNinePoints(t *testing.T) {
	// 34 closes produce only 8 MACD points: line resolves, signal stays 0.
	line, signal := MACD(accelerating(34))
	if line <= 0 {
		t.Errorf("expected positive MACD line for accelerating series, got %.4f", line)
	}
	if signal != 0 {
		t.Errorf("expected zero signal with 8 MACD points, got %.4f", signal)
	}

	// One more close crosses the threshold.
	line, signal = MACD(accelerating(35))
	if line <= 0 || signal <= 0 {
		t.Errorf("expected positive line and signal with 9 MACD points, got (%.4f, %.4f)", line, signal)
	}
	if line <= signal {
		t.Errorf("accelerating series: expected line above signal, got line=%.4f signal=%.4f", line, signal)
	}
}

func TestMACD_LinearSteadyState(t *testing.T) {
	// A slope-1 series is the degenerate case: the simple-mean seed lands
	// exactly on the EMA's steady-state lag, so EMA12 trails by 5.5, EMA26
	// by 12.5, the MACD line sits at a constant 7 and its EMA9 equals it.
	series := make([]float64, 60)
	for i := range series {
		series[i] = float64(100 + i)
	}
	line, signal := MACD(series)
	if math.Abs(line-7) > 1e-9 {
		t.Errorf("expected constant line 7, got %.6f", line)
	}
	if math.Abs(line-signal) > 1e-9 {
		t.Errorf("linear series must give line == signal, got line=%.6f signal=%.6f", line, signal)
	}
}

func TestMACD_DeceleratingSeries(t *testing.T) {
	// Concave decline: the drop steepens over time, so the line falls
	// faster than its signal can follow.
	series := make([]float64, 60)
	for i := range series {
		series[i] = 300 - 0.05*float64(i)*float64(i)
	}
	line, signal := MACD(series)
	if line >= 0 {
		t.Errorf("expected negative MACD line for a steepening decline, got %.4f", line)
	}
	if line >= signal {
		t.Errorf("steepening decline: expected line below signal, got line=%.4f signal=%.4f", line, signal)
	}
}
