package scoring

import (
	"fmt"

	"TriggerLab/internal/domain/models"
)

// QualityGate holds the admission thresholds used by trigger discovery.
// Saving is unconditional by default; the gate applies only when a caller
// opts in (bulk discovery, reanalysis pruning).
type QualityGate struct {
	MinEvents    int
	MinWinRate   float64
	MinAvgReturn float64
	MinScore     float64
}

// DefaultQualityGate mirrors the discovery script thresholds.
func DefaultQualityGate() QualityGate {
	return QualityGate{
		MinEvents:    5,
		MinWinRate:   0.70,
		MinAvgReturn: 0.08,
		MinScore:     55,
	}
}

// Admit reports whether the record clears every threshold; the reason
// names the first failing one.
func (g QualityGate) Admit(rec models.TriggerRecord) (bool, string) {
	if rec.EventCount < g.MinEvents {
		return false, fmt.Sprintf("event count %d below minimum %d", rec.EventCount, g.MinEvents)
	}
	if rec.AvgWinRate == nil || *rec.AvgWinRate < g.MinWinRate {
		return false, fmt.Sprintf("win rate below minimum %.2f", g.MinWinRate)
	}
	if rec.AvgReturn == nil || *rec.AvgReturn < g.MinAvgReturn {
		return false, fmt.Sprintf("average return below minimum %.2f", g.MinAvgReturn)
	}
	if rec.Score < g.MinScore {
		return false, fmt.Sprintf("score %.1f below minimum %.1f", rec.Score, g.MinScore)
	}
	return true, ""
}
