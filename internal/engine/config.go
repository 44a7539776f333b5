package engine

import "errors"

// Weights holds the per-factor contribution caps for the composite score.
type Weights struct {
	RSI        float64 `yaml:"rsi" json:"rsi"`
	MA         float64 `yaml:"ma" json:"ma"`
	Momentum   float64 `yaml:"momentum" json:"momentum"`
	MACD       float64 `yaml:"macd" json:"macd"`
	Volume     float64 `yaml:"volume" json:"volume"`
	Volatility float64 `yaml:"volatility" json:"volatility"`
}

// Config is the full parameter set for one evaluation. Immutable per call;
// concurrent evaluations may share one value because nothing mutates it.
// The volume weight is carried for parity with saved grid-search reports
// but contributes nothing to the score.
type Config struct {
	Weights                Weights `yaml:"weights" json:"weights"`
	ATRMultiplierForStop   float64 `yaml:"atr_multiplier_for_stop" json:"atrMultiplierForStop"`
	ATRMultiplierForTarget float64 `yaml:"atr_multiplier_for_target" json:"atrMultiplierForTarget"`
	RSIPeriod              int     `yaml:"rsi_period" json:"rsiPeriod"`
	MAShortPeriod          int     `yaml:"ma_short" json:"maShort"`
	MALongPeriod           int     `yaml:"ma_long" json:"maLong"`
}

// DefaultConfig returns the tuned default parameter set.
func DefaultConfig() Config {
	return Config{
		Weights: Weights{
			RSI:        15,
			MA:         25,
			Momentum:   15,
			MACD:       20,
			Volume:     10,
			Volatility: 15,
		},
		ATRMultiplierForStop:   1.5,
		ATRMultiplierForTarget: 4,
		RSIPeriod:              14,
		MAShortPeriod:          20,
		MALongPeriod:           50,
	}
}

// Validate checks the config invariants: non-negative weights, positive
// ATR multipliers and indicator periods.
func (c *Config) Validate() error {
	for _, w := range []float64{
		c.Weights.RSI, c.Weights.MA, c.Weights.Momentum,
		c.Weights.MACD, c.Weights.Volume, c.Weights.Volatility,
	} {
		if w < 0 {
			return errors.New("weights must be non-negative")
		}
	}
	if c.ATRMultiplierForStop <= 0 {
		return errors.New("atr_multiplier_for_stop must be positive")
	}
	if c.ATRMultiplierForTarget <= 0 {
		return errors.New("atr_multiplier_for_target must be positive")
	}
	if c.RSIPeriod <= 0 {
		return errors.New("rsi_period must be positive")
	}
	if c.MAShortPeriod <= 0 || c.MALongPeriod <= 0 {
		return errors.New("ma periods must be positive")
	}
	return nil
}
