package signal

import (
	"fmt"
	"strings"

	"TriggerLab/internal/domain/models"
)

// descriptor renders one condition type. Format verbs are filled from the
// criteria params named in keys, in order; adding a condition type is a
// table entry, not new control flow.
type descriptor struct {
	format string
	keys   []string
}

var descriptors = map[string]descriptor{
	"dual_ath":              {"Dual ATH after %v-day gap", []string{"days_gap"}},
	"single_ath":            {"New ATH after %v-day gap", []string{"days_gap"}},
	"rsi_above":             {"RSI(%v) crosses above %v", []string{"rsi_period", "rsi_threshold"}},
	"rsi_below":             {"RSI(%v) crosses below %v", []string{"rsi_period", "rsi_threshold"}},
	"ma_crossover":          {"MA %v/%v golden cross", []string{"ma_short", "ma_long"}},
	"ma_crossunder":         {"MA %v/%v death cross", []string{"ma_short", "ma_long"}},
	"momentum_above":        {"Momentum(%v) above %v", []string{"momentum_period", "momentum_threshold"}},
	"momentum_below":        {"Momentum(%v) below %v", []string{"momentum_period", "momentum_threshold"}},
	"sp500_pct_above_200ma": {"S&P 500 breadth below %v%%", []string{"breadth_threshold"}},
	"putcall_above":         {"Put/Call ratio above %v", []string{"putcall_threshold"}},
	"putcall_below":         {"Put/Call ratio below %v", []string{"putcall_threshold"}},
	"vix_above":             {"VIX above %v", []string{"vix_threshold"}},
	"vix_below":             {"VIX below %v", []string{"vix_threshold"}},
	"feargreed_above":       {"Fear & Greed above %v", []string{"feargreed_threshold"}},
	"feargreed_below":       {"Fear & Greed below %v", []string{"feargreed_threshold"}},
}

// Describe formats the criteria for display and sorting. Unrecognized
// condition types fall back to the humanized type name.
func Describe(c models.Criteria) string {
	d, ok := descriptors[c.ConditionType]
	if !ok {
		return strings.ReplaceAll(c.ConditionType, "_", " ")
	}

	args := make([]any, 0, len(d.keys))
	for _, k := range d.keys {
		v, ok := c.Params[k]
		if !ok {
			v = "?"
		}
		args = append(args, v)
	}
	desc := fmt.Sprintf(d.format, args...)

	if len(c.ConditionTickers) > 0 {
		desc += " on " + strings.Join(c.ConditionTickers, ", ")
	}
	return desc
}
