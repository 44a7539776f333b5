package indicator

import "testing"

func TestRSI_InsufficientData(t *testing.T) {
	tests := []struct {
		name   string
		series []float64
		period int
	}{
		{"empty", nil, 14},
		{"one short of minimum", []float64{1, 2, 3}, 3},
		{"zero period", []float64{1, 2, 3}, 0},
		{"negative period", []float64{1, 2, 3}, -1},
	}
	for _, tt := range tests {
		if got := RSI(tt.series, tt.period); got != 50 {
			t.Errorf("%s: expected neutral 50, got %.2f", tt.name, got)
		}
	}
}

func TestRSI_AllGains(t *testing.T) {
	// No losses in the window → avgLoss 0 → 100
	if got := RSI([]float64{1, 2, 3, 4, 5}, 3); got != 100 {
		t.Errorf("expected 100 for monotone gains, got %.2f", got)
	}
}

func TestRSI_FlatSeries(t *testing.T) {
	// Zero diffs count as gains, so a flat series also reads 100.
	series := make([]float64, 30)
	for i := range series {
		series[i] = 100
	}
	if got := RSI(series, 14); got != 100 {
		t.Errorf("expected 100 for flat series, got %.2f", got)
	}
}

func TestRSI_AllLosses(t *testing.T) {
	if got := RSI([]float64{5, 4, 3, 2, 1}, 3); got != 0 {
		t.Errorf("expected 0 for monotone losses, got %.2f", got)
	}
}

func TestRSI_BalancedWindow(t *testing.T) {
	// One gain and one loss of equal size → RS = 1 → RSI = 50
	if got := RSI([]float64{2, 1, 2}, 2); got != 50 {
		t.Errorf("expected 50 for balanced window, got %.2f", got)
	}
}

func TestRSI_Range(t *testing.T) {
	series := []float64{100, 103, 101, 104, 99, 102, 105, 103, 107, 104,
		108, 106, 110, 107, 111, 109, 113, 110, 114, 112}
	got := RSI(series, 14)
	if got < 0 || got > 100 {
		t.Errorf("RSI out of range: %.2f", got)
	}
	if got <= 50 {
		t.Errorf("expected RSI above neutral for an uptrending series, got %.2f", got)
	}
}
