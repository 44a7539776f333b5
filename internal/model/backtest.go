package model

// Outcome classifies how a simulated trade ended.
type Outcome string

const (
	OutcomeWin     Outcome = "win"
	OutcomeLoss    Outcome = "loss"
	OutcomeNeutral Outcome = "neutral"
)

// Signal is the projection of an Evaluation the backtester consumes.
type Signal struct {
	Symbol      string  `json:"symbol"`
	Price       float64 `json:"price"`
	TargetPrice float64 `json:"targetPrice"`
	StopLoss    float64 `json:"stopLoss"`
	HoldDays    int     `json:"holdDays"`
}

// TradeResult is the simulated outcome of a single signal.
// DaysHeld is set for win/loss exits, Pnl for neutral exits.
type TradeResult struct {
	Outcome   Outcome `json:"outcome"`
	ExitPrice float64 `json:"exitPrice"`
	DaysHeld  int     `json:"daysHeld,omitempty"`
	Pnl       float64 `json:"pnl,omitempty"`
}

// SignalResult pairs a signal with its simulation result.
// Result is nil when no history was available for the symbol.
type SignalResult struct {
	Symbol string       `json:"symbol"`
	Signal Signal       `json:"signal"`
	Result *TradeResult `json:"result"`
}

// BacktestReport aggregates a batch of simulated signals.
type BacktestReport struct {
	Total       int            `json:"total"`
	Wins        int            `json:"wins"`
	Losses      int            `json:"losses"`
	Neutrals    int            `json:"neutrals"`
	WinRate     float64        `json:"winRate"` // percent, 1 decimal
	TotalPnl    float64        `json:"totalPnl"`
	AvgPnl      float64        `json:"avgPnl"`
	AvgDaysHeld float64        `json:"avgDaysHeld"`
	Results     []SignalResult `json:"results"`
}
