// Package aggregate reduces per-event forward-return series into horizon
// summaries and day-by-day curves. All functions are pure; nil values mean
// "no data" throughout and never collapse to zero.
package aggregate

import (
	"TriggerLab/internal/domain/models"
)

// SummarizeByHorizon reduces an event list to one OutcomeSummary per
// horizon. Only non-null returns participate; a horizon with no data
// yields nil Average and nil PercentPositive rather than a zero or NaN.
// Zero returns count as positive; this boundary is shared with the win
// rate fed into scoring and must not drift.
func SummarizeByHorizon(events []models.EventOutcome) map[models.Horizon]models.OutcomeSummary {
	summaries := make(map[models.Horizon]models.OutcomeSummary, len(models.Horizons))

	for _, h := range models.Horizons {
		var values []float64
		positive, negative := 0, 0
		for _, ev := range events {
			r := ev.Return(h)
			if r == nil {
				continue
			}
			values = append(values, *r)
			if *r >= 0 {
				positive++
			} else {
				negative++
			}
		}

		s := models.OutcomeSummary{PositiveCount: positive, NegativeCount: negative}
		if len(values) > 0 {
			avg := round2(computeMean(values))
			pct := round2(float64(positive) / float64(len(values)) * 100)
			s.Average = &avg
			s.PercentPositive = &pct
		}
		summaries[h] = s
	}

	return summaries
}

// BuildForwardCurve aggregates raw per-event daily return series (percent,
// one inner slice per event) into per-day statistics. The curve extends to
// the longest event series; days where every event has run out of data are
// nil across all statistics.
func BuildForwardCurve(curves [][]*float64) models.ForwardCurve {
	days := 0
	for _, c := range curves {
		if len(c) > days {
			days = len(c)
		}
	}

	fc := models.ForwardCurve{
		Average: make([]*float64, days),
		Median:  make([]*float64, days),
		Max:     make([]*float64, days),
		Min:     make([]*float64, days),
		StdDev:  make([]*float64, days),
	}

	for d := 0; d < days; d++ {
		var values []float64
		for _, c := range curves {
			if d < len(c) && c[d] != nil {
				values = append(values, *c[d])
			}
		}
		if len(values) == 0 {
			continue
		}

		avg := round2(computeMean(values))
		med := round2(computeMedian(values))
		mx := round2(computeMax(values))
		mn := round2(computeMin(values))
		sd := round2(computeStddev(values, computeMean(values)))
		fc.Average[d] = &avg
		fc.Median[d] = &med
		fc.Max[d] = &mx
		fc.Min[d] = &mn
		fc.StdDev[d] = &sd
	}

	return fc
}

// DrawdownBand buckets average drawdown for presentation. Shared by the
// scoring and ranking layers so the thresholds live in one place.
type DrawdownBand string

const (
	DrawdownSevere     DrawdownBand = "severe"           // below -10%
	DrawdownModerate   DrawdownBand = "moderate caution" // -10% .. -5%
	DrawdownAcceptable DrawdownBand = "acceptable"       // above -5%
)

// ClassifyDrawdown maps a drawdown percentage (typically negative) to its
// presentation band.
func ClassifyDrawdown(pct float64) DrawdownBand {
	switch {
	case pct < -10:
		return DrawdownSevere
	case pct < -5:
		return DrawdownModerate
	default:
		return DrawdownAcceptable
	}
}
