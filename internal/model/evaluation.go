package model

// Recommendation is the categorical action derived from the composite score.
type Recommendation string

const (
	RecommendBuy  Recommendation = "BUY"
	RecommendSell Recommendation = "SELL"
	RecommendHold Recommendation = "HOLD"
)

// Confidence expresses how strong the score behind a recommendation is.
type Confidence string

const (
	ConfidenceHigh   Confidence = "HIGH"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceLow    Confidence = "LOW"
)

// SignalTag marks a single triggered technical condition.
type SignalTag string

const (
	TagRSIOversold   SignalTag = "RSI_OVERSOLD"
	TagRSIOverbought SignalTag = "RSI_OVERBOUGHT"
	TagMABullish     SignalTag = "MA_BULLISH"
	TagMABearish     SignalTag = "MA_BEARISH"
	TagMomentumPos   SignalTag = "MOMENTUM_POS"
	TagMomentumNeg   SignalTag = "MOMENTUM_NEG"
	TagMACDBullish   SignalTag = "MACD_BULLISH"
	TagMACDBearish   SignalTag = "MACD_BEARISH"
)

// Evaluation is the scoring engine's full output for one symbol.
// Field names are stable: exported JSON reports depend on them.
type Evaluation struct {
	Symbol         string         `json:"symbol"`
	Price          float64        `json:"price"`
	RSI            float64        `json:"rsi"`
	Score          int            `json:"score"`
	Recommendation Recommendation `json:"recommendation"`
	Confidence     Confidence     `json:"confidence"`
	TargetPrice    float64        `json:"targetPrice"`
	StopLoss       float64        `json:"stopLoss"`
	RiskReward     float64        `json:"riskReward"`
	Reasons        []string       `json:"reasons"`
	Signals        []SignalTag    `json:"signals"`
}

// HasSignal reports whether the evaluation carries the given tag.
func (e *Evaluation) HasSignal(tag SignalTag) bool {
	for _, s := range e.Signals {
		if s == tag {
			return true
		}
	}
	return false
}
