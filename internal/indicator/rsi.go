package indicator

// RSI computes the Wilder-smoothed Relative Strength Index over the period.
// Requires at least period+1 closes; returns the neutral value 50 when data
// is insufficient, and 100 when no losses occurred over the window.
func RSI(series []float64, period int) float64 {
	if period <= 0 || len(series) < period+1 {
		return 50
	}

	// Initial average gain/loss over the first `period` changes
	var gains, losses float64
	for i := 1; i <= period; i++ {
		diff := series[i] - series[i-1]
		if diff >= 0 {
			gains += diff
		} else {
			losses -= diff // make positive
		}
	}
	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)

	// Wilder smoothing for the remaining bars
	for i := period + 1; i < len(series); i++ {
		diff := series[i] - series[i-1]
		gain, loss := 0.0, 0.0
		if diff >= 0 {
			gain = diff
		} else {
			loss = -diff
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
	}

	if avgLoss == 0 {
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}
