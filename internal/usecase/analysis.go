package usecase

import (
	"math"
	"time"

	"TriggerLab/internal/aggregate"
	"TriggerLab/internal/domain/models"
	"TriggerLab/internal/scoring"
	"TriggerLab/internal/signal"
	"TriggerLab/pkg/util"
)

// recentWindowDays is the trailing window for RecentTriggerCount.
const recentWindowDays = 30

// BuildDraft turns a backtest result into an unsaved trigger record: summary
// statistics from the 1-year horizon, the composite score, the directional
// signal, and the recency fields. The remote store assigns the id.
func BuildDraft(name string, criteria models.Criteria, events []models.EventOutcome, now time.Time) models.TriggerRecord {
	rec := models.TriggerRecord{
		Name:       name,
		Criteria:   criteria,
		EventCount: len(events),
		Signal:     signal.Derive(criteria.ConditionType),
	}

	summaries := aggregate.SummarizeByHorizon(events)
	if s, ok := summaries[models.Horizon1Year]; ok {
		if s.Average != nil {
			avg := round4(*s.Average / 100) // percent to decimal
			rec.AvgReturn = &avg
		}
		if s.PercentPositive != nil {
			wr := round4(*s.PercentPositive / 100)
			rec.AvgWinRate = &wr
		}
	}
	rec.MaxDrawdown = averageDrawdown(events)

	rec.Score = scoring.ComputeScore(scoring.Inputs{
		AvgReturn:   rec.AvgReturn,
		AvgWinRate:  rec.AvgWinRate,
		EventCount:  rec.EventCount,
		MaxDrawdown: rec.MaxDrawdown,
	})

	rec.RecentTriggerCount, rec.LatestTriggerDate = Recency(events, now)
	return rec
}

// Recency reports how many events fall inside the trailing window and the
// latest event date. ISO dates compare lexicographically.
func Recency(events []models.EventOutcome, now time.Time) (int, *string) {
	count := 0
	latest := ""
	for _, ev := range events {
		if util.WithinTrailingDays(ev.Date, now, recentWindowDays) {
			count++
		}
		if ev.Date > latest {
			latest = ev.Date
		}
	}
	if latest == "" {
		return count, nil
	}
	return count, &latest
}

// round4 keeps stored decimals at four places so values survive a
// store round-trip bit-for-bit.
func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

func averageDrawdown(events []models.EventOutcome) *float64 {
	var sum float64
	n := 0
	for _, ev := range events {
		if ev.MaxDrawdown != nil {
			sum += *ev.MaxDrawdown
			n++
		}
	}
	if n == 0 {
		return nil
	}
	avg := sum / float64(n)
	return &avg
}
