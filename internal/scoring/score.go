// Package scoring computes the 0-100 composite trigger score. The formula
// is frozen: previously stored scores must stay comparable, so the weights,
// clamp ranges, and the saturating sharpe-like term are reproduced exactly.
package scoring

import "math"

// Inputs are the scalar summary statistics of a backtest run. Nil fields
// default to zero before the formula runs; the computation never fails.
type Inputs struct {
	AvgReturn   *float64 // decimal, e.g. 0.125 for 12.5%
	AvgWinRate  *float64 // 0..1, caller-supplied
	EventCount  int
	MaxDrawdown *float64 // percentage, typically negative
}

// ComputeScore maps the inputs to a single score in [0,100]:
// 30% return (-10%..+30% mapped to 0..100), 30% win rate, 25% a
// return/drawdown ratio term, 15% event-count significance saturating at
// 50 events. Rounded to one decimal.
func ComputeScore(in Inputs) float64 {
	avgReturn := deref(in.AvgReturn)
	winRate := deref(in.AvgWinRate)
	maxDD := deref(in.MaxDrawdown)

	r := avgReturn * 100

	returnScore := clamp((r+10)/40*100, 0, 100)
	winRateScore := winRate * 100

	ddMagnitude := math.Abs(maxDD)
	if ddMagnitude == 0 {
		ddMagnitude = 1
	}
	sharpeScore := clamp((r/ddMagnitude+1)*50, 0, 100)

	significanceScore := clamp(float64(in.EventCount)/50*100, 0, 100)

	score := 0.30*returnScore + 0.30*winRateScore + 0.25*sharpeScore + 0.15*significanceScore
	return math.Round(score*10) / 10
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
