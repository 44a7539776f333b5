package indicator

import "math"

// Bands holds a Bollinger Bands result.
type Bands struct {
	Upper  float64
	Middle float64
	Lower  float64
}

// StdDev computes the population standard deviation. Returns 0 for empty input.
func StdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	variance := 0.0
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(values))
	return math.Sqrt(variance)
}

// BollingerBands computes SMA(period) ± k standard deviations over the last
// `period` values. Degrades to flat bands (upper=middle=lower) when the
// series is shorter than the period.
func BollingerBands(series []float64, period int, k float64) Bands {
	middle := SMA(series, period)
	if period <= 0 || len(series) < period {
		return Bands{Upper: middle, Middle: middle, Lower: middle}
	}
	sd := StdDev(series[len(series)-period:])
	return Bands{
		Upper:  middle + sd*k,
		Middle: middle,
		Lower:  middle - sd*k,
	}
}

// ATRFromCloses approximates the Average True Range as the mean of absolute
// close-to-close differences over the last `period` diffs. This is a
// deliberate close-only simplification of the classic high-low-close ATR;
// callers that need the full definition must supply OHLC data elsewhere.
// Returns 0 when fewer than two closes exist.
func ATRFromCloses(closes []float64, period int) float64 {
	if len(closes) < 2 {
		return 0
	}
	diffs := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		diffs = append(diffs, math.Abs(closes[i]-closes[i-1]))
	}
	if period > len(diffs) {
		period = len(diffs)
	}
	return SMA(diffs, period)
}

// PctChange returns the percent change from prev to cur, 0 when prev is 0.
func PctChange(prev, cur float64) float64 {
	if prev == 0 {
		return 0
	}
	return (cur - prev) / prev * 100
}
