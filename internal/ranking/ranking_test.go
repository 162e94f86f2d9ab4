package ranking

import (
	"reflect"
	"testing"

	"TriggerLab/internal/domain/models"
)

func fp(v float64) *float64 { return &v }
func sp(s string) *string   { return &s }

func sample() []models.TriggerRecord {
	return []models.TriggerRecord{
		{ID: "a", Name: "breadth washout", Score: 72.1, AvgReturn: fp(0.11), EventCount: 12,
			Criteria: models.Criteria{TargetTicker: "SPY"}, LatestTriggerDate: sp("2024-03-01")},
		{ID: "b", Name: "VIX spike", Score: 81.5, AvgReturn: nil, EventCount: 7,
			Criteria: models.Criteria{TargetTicker: "QQQ"}, LatestTriggerDate: nil},
		{ID: "c", Name: "ath follow-through", Score: 81.5, AvgReturn: fp(-0.02), EventCount: 30,
			Criteria: models.Criteria{TargetTicker: "IWM"}, LatestTriggerDate: sp("2023-11-20")},
	}
}

func ids(records []models.TriggerRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func TestSortByScoreDescending(t *testing.T) {
	got := ids(Sort(sample(), ByScore, Descending))
	// b and c tie at 81.5; stability keeps input order
	want := []string{"b", "c", "a"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
}

func TestSortDoesNotMutateInput(t *testing.T) {
	in := sample()
	before := ids(in)
	Sort(in, ByName, Ascending)
	if !reflect.DeepEqual(ids(in), before) {
		t.Fatalf("input order changed: %v", ids(in))
	}
}

func TestSortIdempotent(t *testing.T) {
	once := Sort(sample(), ByEventCount, Ascending)
	twice := Sort(once, ByEventCount, Ascending)
	if !reflect.DeepEqual(ids(once), ids(twice)) {
		t.Fatalf("second sort changed order: %v vs %v", ids(once), ids(twice))
	}
}

func TestSortNullNumericCoalescesToZero(t *testing.T) {
	got := ids(Sort(sample(), ByAvgReturn, Ascending))
	// nil avg return sorts as 0: between -0.02 and 0.11
	want := []string{"c", "b", "a"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
}

func TestSortNullDateSortsAsEmpty(t *testing.T) {
	got := ids(Sort(sample(), ByLatestDate, Ascending))
	// nil date sorts as "" which precedes any ISO date
	want := []string{"b", "c", "a"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
}

func TestSortNameCaseInsensitive(t *testing.T) {
	got := ids(Sort(sample(), ByName, Ascending))
	// "ath..." < "breadth..." < "VIX..." under case folding
	want := []string{"c", "a", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
}

func TestSortUnknownKeyFallsBackToScore(t *testing.T) {
	got := ids(Sort(sample(), SortKey("bogus"), Descending))
	want := ids(Sort(sample(), ByScore, Descending))
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
}

func TestToggle(t *testing.T) {
	s := SortState{Key: ByScore, Direction: Descending}

	s.Toggle(ByScore)
	if s.Key != ByScore || s.Direction != Ascending {
		t.Fatalf("same key must flip direction, got %s/%s", s.Key, s.Direction)
	}

	s.Toggle(ByScore)
	if s.Direction != Descending {
		t.Fatalf("second toggle must flip back, got %s", s.Direction)
	}

	s.Toggle(ByName)
	if s.Key != ByName || s.Direction != Descending {
		t.Fatalf("new key must reset to descending, got %s/%s", s.Key, s.Direction)
	}
}
