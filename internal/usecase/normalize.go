package usecase

import (
	"TriggerLab/internal/domain/models"
	"TriggerLab/internal/signal"
)

// Canonicalize folds a stored trigger into the canonical record shape.
// Records written before the field rename carry avg_return_1y, win_rate_1y
// and avg_max_dd; those fill the canonical fields only when the modern ones
// are absent. A missing signal is backfilled from the condition type, but a
// stored signal always wins so historical classifications survive table
// changes.
func Canonicalize(st models.StoredTrigger) models.TriggerRecord {
	rec := models.TriggerRecord{
		ID:                 st.ID,
		Name:               st.Name,
		Criteria:           st.Criteria,
		EventCount:         st.EventCount,
		AvgReturn:          coalesce(st.AvgReturn, st.AvgReturn1Y),
		AvgWinRate:         coalesce(st.AvgWinRate, st.WinRate1Y),
		MaxDrawdown:        coalesce(st.MaxDrawdown, st.AvgMaxDD),
		Score:              st.Score,
		Signal:             st.Signal,
		RecentTriggerCount: st.RecentTriggerCount,
		LatestTriggerDate:  st.LatestTriggerDate,
	}
	if rec.Signal == models.SignalNone {
		rec.Signal = signal.Derive(st.Criteria.ConditionType)
	}
	return rec
}

// CanonicalizeAll maps a stored list into canonical records, preserving order.
func CanonicalizeAll(stored []models.StoredTrigger) []models.TriggerRecord {
	records := make([]models.TriggerRecord, len(stored))
	for i, st := range stored {
		records[i] = Canonicalize(st)
	}
	return records
}

func coalesce(primary, legacy *float64) *float64 {
	if primary != nil {
		return primary
	}
	return legacy
}
