// Package ranking produces the sorted trigger projection for the dashboard
// table. Sorting never mutates its input and tolerates records with missing
// fields by coalescing to a neutral default (0 for numbers, "" for strings).
package ranking

import (
	"sort"
	"strings"

	"TriggerLab/internal/domain/models"
	"TriggerLab/internal/signal"
)

type SortKey string

const (
	ByName       SortKey = "name"
	ByScore      SortKey = "score"
	ByTicker     SortKey = "ticker"
	BySignal     SortKey = "signal"
	ByCriteria   SortKey = "criteria"
	ByEventCount SortKey = "event_count"
	ByAvgReturn  SortKey = "avg_return"
	ByWinRate    SortKey = "win_rate"
	ByDrawdown   SortKey = "drawdown"
	ByLatestDate SortKey = "latest_date"
)

type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// stringKeys marks the keys compared as folded strings; the rest compare
// numerically. ISO dates order correctly under string comparison.
var stringKeys = map[SortKey]bool{
	ByName:       true,
	ByTicker:     true,
	BySignal:     true,
	ByCriteria:   true,
	ByLatestDate: true,
}

// Sort returns a stably sorted copy of records. Unknown keys fall back to
// score.
func Sort(records []models.TriggerRecord, key SortKey, dir Direction) []models.TriggerRecord {
	out := make([]models.TriggerRecord, len(records))
	copy(out, records)

	less := lessFunc(key)
	sort.SliceStable(out, func(i, j int) bool {
		if dir == Ascending {
			return less(out[i], out[j])
		}
		return less(out[j], out[i])
	})
	return out
}

func lessFunc(key SortKey) func(a, b models.TriggerRecord) bool {
	if stringKeys[key] {
		return func(a, b models.TriggerRecord) bool {
			return collate(stringValue(a, key)) < collate(stringValue(b, key))
		}
	}
	return func(a, b models.TriggerRecord) bool {
		return numericValue(a, key) < numericValue(b, key)
	}
}

// collate folds case for locale-insensitive ordering of names and tickers.
func collate(s string) string {
	return strings.ToLower(s)
}

func stringValue(r models.TriggerRecord, key SortKey) string {
	switch key {
	case ByName:
		return r.Name
	case ByTicker:
		return r.Criteria.TargetTicker
	case BySignal:
		return string(r.Signal)
	case ByCriteria:
		return signal.Describe(r.Criteria)
	case ByLatestDate:
		if r.LatestTriggerDate == nil {
			return ""
		}
		return *r.LatestTriggerDate
	}
	return ""
}

func numericValue(r models.TriggerRecord, key SortKey) float64 {
	switch key {
	case ByEventCount:
		return float64(r.EventCount)
	case ByAvgReturn:
		return coalesce(r.AvgReturn)
	case ByWinRate:
		return coalesce(r.AvgWinRate)
	case ByDrawdown:
		return coalesce(r.MaxDrawdown)
	default: // ByScore and unknown keys
		return r.Score
	}
}

func coalesce(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

// SortState tracks the dashboard's current ordering. Re-selecting the
// active key flips direction; selecting a new key resets to descending.
type SortState struct {
	Key       SortKey
	Direction Direction
}

func (s *SortState) Toggle(key SortKey) {
	if s.Key == key {
		if s.Direction == Descending {
			s.Direction = Ascending
		} else {
			s.Direction = Descending
		}
		return
	}
	s.Key = key
	s.Direction = Descending
}
