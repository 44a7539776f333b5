package indicator

import (
	"math"
	"testing"
)

func TestStdDev(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"empty", nil, 0},
		{"constant", []float64{5, 5, 5, 5}, 0},
		{"known population stddev", []float64{2, 4, 4, 4, 5, 5, 7, 9}, 2},
	}
	for _, tt := range tests {
		if got := StdDev(tt.values); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("%s: expected %.4f, got %.4f", tt.name, tt.want, got)
		}
	}
}

func TestBollingerBands_Degraded(t *testing.T) {
	// Series shorter than the period: flat bands at the last value
	b := BollingerBands([]float64{10, 12}, 20, 2)
	if b.Upper != 12 || b.Middle != 12 || b.Lower != 12 {
		t.Errorf("expected flat bands at 12, got %+v", b)
	}
}

func TestBollingerBands_Constant(t *testing.T) {
	series := make([]float64, 20)
	for i := range series {
		series[i] = 100
	}
	b := BollingerBands(series, 20, 2)
	if b.Upper != 100 || b.Middle != 100 || b.Lower != 100 {
		t.Errorf("expected all bands at 100 for constant series, got %+v", b)
	}
}

func TestBollingerBands_Ordering(t *testing.T) {
	series := []float64{98, 101, 99, 103, 100, 104, 102, 106, 101, 105,
		103, 107, 104, 108, 105, 109, 106, 110, 107, 111}
	b := BollingerBands(series, 20, 2)
	if !(b.Lower < b.Middle && b.Middle < b.Upper) {
		t.Errorf("expected lower < middle < upper, got %+v", b)
	}
}

func TestATRFromCloses(t *testing.T) {
	if got := ATRFromCloses(nil, 14); got != 0 {
		t.Errorf("empty: expected 0, got %.4f", got)
	}
	if got := ATRFromCloses([]float64{100}, 14); got != 0 {
		t.Errorf("single close: expected 0, got %.4f", got)
	}

	// diffs {2, 1, 4}; period capped to 3 → mean 7/3
	got := ATRFromCloses([]float64{100, 102, 101, 105}, 14)
	if math.Abs(got-7.0/3.0) > 1e-9 {
		t.Errorf("expected %.4f, got %.4f", 7.0/3.0, got)
	}

	// period 2 takes only the last two diffs {1, 4}
	got = ATRFromCloses([]float64{100, 102, 101, 105}, 2)
	if math.Abs(got-2.5) > 1e-9 {
		t.Errorf("expected 2.5, got %.4f", got)
	}
}

func TestPctChange(t *testing.T) {
	if got := PctChange(0, 50); got != 0 {
		t.Errorf("zero base: expected 0, got %.4f", got)
	}
	if got := PctChange(100, 110); math.Abs(got-10) > 1e-9 {
		t.Errorf("expected 10, got %.4f", got)
	}
	if got := PctChange(100, 95); math.Abs(got+5) > 1e-9 {
		t.Errorf("expected -5, got %.4f", got)
	}
}
