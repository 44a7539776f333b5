package indicator

// MACD periods are the conventional 12/26/9 setup.
const (
	macdFastPeriod   = 12
	macdSlowPeriod   = 26
	macdSignalPeriod = 9
)

// SMA computes the simple moving average of the last `period` values.
// Degraded mode when data is short: the most recent value, or 0 for empty
// input. Short data is never an error here.
func SMA(series []float64, period int) float64 {
	if len(series) == 0 {
		return 0
	}
	if period <= 0 || len(series) < period {
		return series[len(series)-1]
	}
	sum := 0.0
	for _, v := range series[len(series)-period:] {
		sum += v
	}
	return sum / float64(period)
}

// EMA computes the exponential moving average, seeded with the simple mean
// of the first `period` values. Falls back to SMA over everything available
// when the series is shorter than the period.
func EMA(series []float64, period int) float64 {
	if len(series) < period {
		return SMA(series, len(series))
	}
	vals := emaSeries(series, period)
	return vals[len(vals)-1]
}

// emaSeries returns the running EMA value at every index. Entries before
// index period-1 hold the partial seed and must not be read by callers.
func emaSeries(series []float64, period int) []float64 {
	out := make([]float64, len(series))
	k := 2 / float64(period+1)

	seed := 0.0
	for i := 0; i < period && i < len(series); i++ {
		seed += series[i]
		out[i] = seed / float64(i+1)
	}
	if len(series) <= period {
		return out
	}
	out[period-1] = seed / float64(period)
	for i := period; i < len(series); i++ {
		out[i] = (series[i]-out[i-1])*k + out[i-1]
	}
	return out
}

// MACD returns the MACD line (EMA12 − EMA26) and its EMA9 signal line.
// The signal line is built from the MACD values at every prefix from index
// 26 onward; the single-pass carry here is numerically identical to
// recomputing both EMAs per prefix, because the seed (simple mean of the
// first period values) is the same either way. Both values are 0 when the
// series is shorter than 26; the signal is 0 until 9 MACD points exist.
func MACD(series []float64) (line, signal float64) {
	if len(series) < macdSlowPeriod {
		return 0, 0
	}

	fast := emaSeries(series, macdFastPeriod)
	slow := emaSeries(series, macdSlowPeriod)

	macdSeries := make([]float64, 0, len(series)-macdSlowPeriod)
	for i := macdSlowPeriod; i < len(series); i++ {
		macdSeries = append(macdSeries, fast[i]-slow[i])
	}

	if n := len(macdSeries); n > 0 {
		line = macdSeries[n-1]
	}
	if len(macdSeries) >= macdSignalPeriod {
		sig := emaSeries(macdSeries, macdSignalPeriod)
		signal = sig[len(sig)-1]
	}
	return line, signal
}
