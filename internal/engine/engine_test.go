package engine

import (
	"testing"

	"StockScout/internal/model"
)

func TestEvaluate_QuoteOnly(t *testing.T) {
	// No history at all: every indicator degrades to neutral and the
	// stop/target collapse onto the quote price.
	cfg := DefaultConfig()
	ev := Evaluate("GGAL", &model.Quote{Symbol: "GGAL", Price: 100}, nil, &cfg)
	if ev == nil {
		t.Fatal("expected non-nil evaluation")
	}
	if ev.Price != 100 {
		t.Errorf("expected price 100, got %.2f", ev.Price)
	}
	if ev.RSI != 50 {
		t.Errorf("expected neutral RSI 50, got %.2f", ev.RSI)
	}
	if ev.Score != 50 {
		t.Errorf("expected baseline score 50, got %d", ev.Score)
	}
	if ev.Recommendation != model.RecommendHold {
		t.Errorf("expected HOLD, got %s", ev.Recommendation)
	}
	if ev.Confidence != model.ConfidenceLow {
		t.Errorf("expected LOW confidence, got %s", ev.Confidence)
	}
	if ev.StopLoss != 100 || ev.TargetPrice != 100 {
		t.Errorf("expected stop and target pinned to price, got stop=%.2f target=%.2f", ev.StopLoss, ev.TargetPrice)
	}
	if ev.RiskReward != 0 {
		t.Errorf("expected zero risk:reward, got %.2f", ev.RiskReward)
	}
}

func TestEvaluate_NoPrice(t *testing.T) {
	cfg := DefaultConfig()
	if ev := Evaluate("GGAL", nil, nil, &cfg); ev != nil {
		t.Errorf("expected nil without any price source, got %+v", ev)
	}
	if ev := Evaluate("GGAL", &model.Quote{Symbol: "GGAL"}, nil, &cfg); ev != nil {
		t.Errorf("expected nil for zero-price quote and empty series, got %+v", ev)
	}
}

func TestEvaluate_SeriesPriceFallback(t *testing.T) {
	series := []float64{10, 11, 12}
	ev := Evaluate("YPFD", nil, series, nil)
	if ev == nil {
		t.Fatal("expected non-nil evaluation")
	}
	if ev.Price != 12 {
		t.Errorf("expected last close as price, got %.2f", ev.Price)
	}
}

func TestEvaluate_Uptrend(t *testing.T) {
	// Accelerating rally: gains only, short MA above long MA, and a MACD
	// line pulling away from its signal. A straight line would not do for
	// the last part: constant slope parks the MACD exactly on its signal.
	series := make([]float64, 120)
	for i := range series {
		series[i] = 100 + 0.02*float64(i)*float64(i)
	}
	ev := Evaluate("PAMP", nil, series, nil)
	if ev == nil {
		t.Fatal("expected non-nil evaluation")
	}
	if ev.Price != series[len(series)-1] {
		t.Errorf("expected last close %.2f as price, got %.2f", series[len(series)-1], ev.Price)
	}
	if ev.StopLoss >= ev.Price {
		t.Errorf("expected stop below price, got stop=%.2f price=%.2f", ev.StopLoss, ev.Price)
	}
	if ev.TargetPrice <= ev.Price {
		t.Errorf("expected target above price, got target=%.2f price=%.2f", ev.TargetPrice, ev.Price)
	}
	if ev.RiskReward <= 0 {
		t.Errorf("expected positive risk:reward, got %.2f", ev.RiskReward)
	}
	if ev.Score < 0 || ev.Score > 100 {
		t.Errorf("score out of range: %d", ev.Score)
	}
	if !ev.HasSignal(model.TagMABullish) {
		t.Error("expected MA bullish tag for a steady uptrend")
	}
	if !ev.HasSignal(model.TagMACDBullish) {
		t.Error("expected MACD bullish tag for a steady uptrend")
	}
	// Monotone gains read as overbought
	if !ev.HasSignal(model.TagRSIOverbought) {
		t.Error("expected RSI overbought tag for monotone gains")
	}
	if len(ev.Reasons) == 0 {
		t.Error("expected human-readable reasons for the fired tags")
	}
}

func TestEvaluate_FlatSeries(t *testing.T) {
	// Zero diffs count as gains, so a perfectly flat series reads as
	// overbought rather than neutral. Documented behavior, not intuition.
	series := make([]float64, 60)
	for i := range series {
		series[i] = 100
	}
	ev := Evaluate("TXAR", nil, series, nil)
	if ev == nil {
		t.Fatal("expected non-nil evaluation")
	}
	if ev.RSI != 100 {
		t.Errorf("expected RSI 100 for flat series, got %.2f", ev.RSI)
	}
	if !ev.HasSignal(model.TagRSIOverbought) {
		t.Error("expected RSI overbought tag")
	}
	if ev.StopLoss != 100 || ev.TargetPrice != 100 {
		t.Errorf("zero ATR must pin stop and target to price, got stop=%.2f target=%.2f", ev.StopLoss, ev.TargetPrice)
	}
}

func TestEvaluate_ShortSeriesNoMATags(t *testing.T) {
	// Fewer closes than the long MA period: no trend signal either way.
	series := make([]float64, 30)
	for i := range series {
		series[i] = float64(100 + i)
	}
	ev := Evaluate("BBAR", nil, series, nil)
	if ev == nil {
		t.Fatal("expected non-nil evaluation")
	}
	if ev.HasSignal(model.TagMABullish) || ev.HasSignal(model.TagMABearish) {
		t.Errorf("expected no MA tags when the series is shorter than the long period, got %v", ev.Signals)
	}
}

func TestEvaluate_LiveQuoteOverridesSeries(t *testing.T) {
	series := []float64{10, 11, 12}
	ev := Evaluate("ALUA", &model.Quote{Symbol: "ALUA", Price: 99}, series, nil)
	if ev == nil {
		t.Fatal("expected non-nil evaluation")
	}
	if ev.Price != 99 {
		t.Errorf("expected live quote price 99 to win over last close, got %.2f", ev.Price)
	}
}
