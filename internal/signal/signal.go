// Package signal classifies trigger condition types and formats criteria
// for display. Both are pure lookups over the closed condition-type set.
package signal

import "TriggerLab/internal/domain/models"

// direction is the fixed membership table. Bullish conditions historically
// precede gains in the target (including contrarian fear readings); bearish
// ones precede caution. Unknown types classify as none.
var direction = map[string]models.Signal{
	"rsi_above":              models.SignalBullish,
	"rsi_below":              models.SignalBullish,
	"momentum_above":         models.SignalBullish,
	"momentum_below":         models.SignalBullish,
	"ma_crossover":           models.SignalBullish,
	"single_ath":             models.SignalBullish,
	"dual_ath":               models.SignalBullish,
	"vix_above":              models.SignalBullish,
	"putcall_above":          models.SignalBullish,
	"sp500_pct_above_200ma":  models.SignalBullish,
	"feargreed_below":        models.SignalBullish,
	"ma_crossunder":          models.SignalBearish,
	"vix_below":              models.SignalBearish,
	"putcall_below":          models.SignalBearish,
	"feargreed_above":        models.SignalBearish,
}

// Derive returns the directional classification for a condition type.
// A stored record's own signal always takes precedence over this; Derive
// backfills legacy records during canonicalization only.
func Derive(conditionType string) models.Signal {
	return direction[conditionType]
}

// ConditionTypes lists the closed condition-type enumeration in the order
// the dashboard presents it.
var ConditionTypes = []string{
	"dual_ath",
	"single_ath",
	"rsi_above",
	"rsi_below",
	"ma_crossover",
	"ma_crossunder",
	"momentum_above",
	"momentum_below",
	"sp500_pct_above_200ma",
	"putcall_above",
	"putcall_below",
	"vix_above",
	"vix_below",
	"feargreed_above",
	"feargreed_below",
}

// DefaultParams carries the per-type default condition parameters the
// dashboard seeds its form with.
var DefaultParams = map[string]map[string]any{
	"dual_ath":              {"days_gap": 365},
	"single_ath":            {"days_gap": 365},
	"rsi_above":             {"rsi_period": 14, "rsi_threshold": 70},
	"rsi_below":             {"rsi_period": 14, "rsi_threshold": 30},
	"ma_crossover":          {"ma_short": 50, "ma_long": 200},
	"ma_crossunder":         {"ma_short": 50, "ma_long": 200},
	"momentum_above":        {"momentum_period": 12, "momentum_threshold": 0.05},
	"momentum_below":        {"momentum_period": 12, "momentum_threshold": -0.05},
	"sp500_pct_above_200ma": {"breadth_threshold": 30},
	"putcall_above":         {"putcall_threshold": 1.0},
	"putcall_below":         {"putcall_threshold": 0.7},
	"vix_above":             {"vix_threshold": 30},
	"vix_below":             {"vix_threshold": 15},
	"feargreed_above":       {"feargreed_threshold": 75},
	"feargreed_below":       {"feargreed_threshold": 25},
}
