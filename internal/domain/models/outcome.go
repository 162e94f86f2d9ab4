package models

// Horizon is one of the fixed forward windows over which return is measured.
type Horizon string

const (
	Horizon1Week   Horizon = "1_week"
	Horizon2Weeks  Horizon = "2_weeks"
	Horizon1Month  Horizon = "1_month"
	Horizon2Months Horizon = "2_months"
	Horizon3Months Horizon = "3_months"
	Horizon6Months Horizon = "6_months"
	Horizon9Months Horizon = "9_months"
	Horizon1Year   Horizon = "1_year"
)

// Horizons lists all horizons in ascending window order.
var Horizons = []Horizon{
	Horizon1Week, Horizon2Weeks, Horizon1Month, Horizon2Months,
	Horizon3Months, Horizon6Months, Horizon9Months, Horizon1Year,
}

// HorizonTradingDays maps each horizon to its trading-day window.
var HorizonTradingDays = map[Horizon]int{
	Horizon1Week:   5,
	Horizon2Weeks:  10,
	Horizon1Month:  21,
	Horizon2Months: 42,
	Horizon3Months: 63,
	Horizon6Months: 126,
	Horizon9Months: 189,
	Horizon1Year:   252,
}

// EventOutcome is one historical occurrence of a trigger condition, as
// produced by the backtest upstream. Returns are percentages; a nil entry
// (or absent horizon) means insufficient future data existed. Immutable.
type EventOutcome struct {
	Date        string               `json:"date"` // YYYY-MM-DD, unique per evaluation
	Returns     map[Horizon]*float64 `json:"returns"`
	MaxDrawdown *float64             `json:"max_drawdown"` // percentage over the 1-year window
}

// Return reports the event's return at the horizon, nil when absent.
func (e EventOutcome) Return(h Horizon) *float64 {
	if e.Returns == nil {
		return nil
	}
	return e.Returns[h]
}

// OutcomeSummary is the per-horizon reduction of an event list. Nil
// Average/PercentPositive mean "no data at this horizon", never zero.
// Recomputed on demand; never persisted.
type OutcomeSummary struct {
	Average         *float64 `json:"average"`          // mean of non-null values, percent
	PercentPositive *float64 `json:"percent_positive"` // share of values >= 0, in 0..100
	PositiveCount   int      `json:"positive_count"`
	NegativeCount   int      `json:"negative_count"`
}

// ForwardCurve is the per-trading-day aggregation across events. Every
// slice is indexed by trading day 0..N; nil entries are data gaps and must
// render as gaps, not drops to zero.
type ForwardCurve struct {
	Average []*float64 `json:"average"`
	Median  []*float64 `json:"median,omitempty"`
	Max     []*float64 `json:"max,omitempty"`
	Min     []*float64 `json:"min,omitempty"`
	StdDev  []*float64 `json:"std_dev,omitempty"`
}
