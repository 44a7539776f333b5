package engine

import (
	"fmt"
	"log"
	"math"

	"StockScout/internal/indicator"
	"StockScout/internal/model"
)

// atrWindow and atrPeriod fix the slice of recent closes used for the
// stop/target distance.
const (
	atrWindow = 30
	atrPeriod = 14

	volatilityWindow = 20
)

// Evaluate scores one symbol from its close series and an optional live
// quote. The series is oldest-first closes with nulls already removed by
// the caller. Returns nil when no price is resolvable from either input;
// any internal computation failure is also converted to nil, so callers
// only ever have to skip the symbol.
func Evaluate(symbol string, quote *model.Quote, series []float64, cfg *Config) (ev *model.Evaluation) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[WARN] evaluate %s: %v, skipping", symbol, r)
			ev = nil
		}
	}()

	var def Config
	if cfg == nil {
		def = DefaultConfig()
		cfg = &def
	}

	price := 0.0
	if quote != nil && quote.Price != 0 {
		price = quote.Price
	} else if len(series) > 0 {
		price = series[len(series)-1]
	}
	if price == 0 {
		return nil
	}

	rsi := indicator.RSI(series, cfg.RSIPeriod)
	recentChange := 0.0
	if len(series) >= 2 {
		recentChange = indicator.PctChange(series[len(series)-2], series[len(series)-1])
	}
	macd, signal := indicator.MACD(series)

	// MA crossover needs the series to cover both periods; shorter data
	// contributes no trend signal rather than a degraded one.
	maBullish, maBearish := false, false
	if len(series) >= cfg.MAShortPeriod && len(series) >= cfg.MALongPeriod {
		smaShort := indicator.SMA(series, cfg.MAShortPeriod)
		smaLong := indicator.SMA(series, cfg.MALongPeriod)
		maBullish = smaShort > smaLong
		maBearish = smaShort < smaLong
	}

	var tags []model.SignalTag
	if rsi < 30 {
		tags = append(tags, model.TagRSIOversold)
	}
	if rsi > 70 {
		tags = append(tags, model.TagRSIOverbought)
	}
	if maBullish {
		tags = append(tags, model.TagMABullish)
	}
	if maBearish {
		tags = append(tags, model.TagMABearish)
	}
	if recentChange > 2 {
		tags = append(tags, model.TagMomentumPos)
	}
	if recentChange < -2 {
		tags = append(tags, model.TagMomentumNeg)
	}
	if macd > signal {
		tags = append(tags, model.TagMACDBullish)
	} else if macd < signal {
		tags = append(tags, model.TagMACDBearish)
	}

	// Composite score: baseline 50, each factor capped by its weight.
	score := 50.0
	if rsi < 30 {
		score += cfg.Weights.RSI
	} else if rsi > 70 {
		score -= cfg.Weights.RSI
	}
	if maBullish {
		score += cfg.Weights.MA
	}
	if maBearish {
		score -= cfg.Weights.MA
	}

	macdContribution := clamp(macd/math.Max(1, price)*100, cfg.Weights.MACD)
	if macd > signal {
		score += macdContribution
	} else {
		score -= macdContribution
	}

	score += clamp(recentChange, cfg.Weights.Momentum)

	recentStd := indicator.StdDev(tail(series, volatilityWindow))
	volPenalty := math.Min(cfg.Weights.Volatility, math.Round(recentStd/price*100))
	score -= volPenalty

	finalScore := int(math.Round(math.Max(0, math.Min(100, score))))

	recommendation := model.RecommendHold
	if finalScore >= 70 {
		recommendation = model.RecommendBuy
	} else if finalScore <= 30 {
		recommendation = model.RecommendSell
	}

	confidence := model.ConfidenceLow
	if finalScore >= 80 {
		confidence = model.ConfidenceHigh
	} else if finalScore >= 60 {
		confidence = model.ConfidenceMedium
	}

	// ATR-sized stop and target; high volatility widens both distances.
	atr := indicator.ATRFromCloses(tail(series, atrWindow), atrPeriod)
	volRatio := atr / math.Max(1, price)
	stopMultiplier := cfg.ATRMultiplierForStop * (1 + math.Min(1, volRatio*10))
	targetMultiplier := cfg.ATRMultiplierForTarget * (1 + math.Min(1, volRatio*5))

	stopLoss := round2(price - stopMultiplier*atr)
	targetPrice := round2(price + targetMultiplier*atr)
	riskReward := round2((targetPrice - price) / math.Max(1, price-stopLoss))

	reasons := buildReasons(tags, cfg)

	return &model.Evaluation{
		Symbol:         symbol,
		Price:          price,
		RSI:            round2(rsi),
		Score:          finalScore,
		Recommendation: recommendation,
		Confidence:     confidence,
		TargetPrice:    targetPrice,
		StopLoss:       stopLoss,
		RiskReward:     riskReward,
		Reasons:        reasons,
		Signals:        tags,
	}
}

func buildReasons(tags []model.SignalTag, cfg *Config) []string {
	reasons := make([]string, 0, len(tags))
	for _, tag := range tags {
		switch tag {
		case model.TagRSIOversold:
			reasons = append(reasons, "RSI in oversold territory")
		case model.TagRSIOverbought:
			reasons = append(reasons, "RSI in overbought territory")
		case model.TagMABullish:
			reasons = append(reasons, fmt.Sprintf("SMA%d above SMA%d (uptrend)", cfg.MAShortPeriod, cfg.MALongPeriod))
		case model.TagMABearish:
			reasons = append(reasons, fmt.Sprintf("SMA%d below SMA%d (downtrend)", cfg.MAShortPeriod, cfg.MALongPeriod))
		case model.TagMomentumPos:
			reasons = append(reasons, "Recent positive momentum")
		case model.TagMomentumNeg:
			reasons = append(reasons, "Recent negative momentum")
		}
	}
	return reasons
}

// clamp limits v to [-cap, +cap].
func clamp(v, limit float64) float64 {
	return math.Max(-limit, math.Min(limit, v))
}

// tail returns the last n elements, or the whole slice when shorter.
func tail(series []float64, n int) []float64 {
	if len(series) <= n {
		return series
	}
	return series[len(series)-n:]
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
