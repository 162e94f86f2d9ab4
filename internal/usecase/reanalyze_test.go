package usecase

import (
	"context"
	"testing"
	"time"

	"TriggerLab/internal/domain/models"
)

func TestReanalyzerRefreshesRecency(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	date := "2024-01-15"
	f.remote.triggers = []models.StoredTrigger{{
		ID: "a", Name: "stale", Score: 66.6, Signal: models.SignalBullish,
		RecentTriggerCount: 3, LatestTriggerDate: &date,
	}}
	f.archive.events["a"] = []models.EventOutcome{
		{Date: "2024-05-20", Returns: map[models.Horizon]*float64{models.Horizon1Year: fp(5)}},
		{Date: "2024-01-15", Returns: map[models.Horizon]*float64{models.Horizon1Year: fp(3)}},
	}

	r := NewReanalyzer(f.sync, f.archive, testLogger(t))
	r.now = func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }
	r.Run(ctx)

	records := f.sync.Load(ctx)
	if len(records) != 1 {
		t.Fatalf("records = %+v", records)
	}
	got := records[0]
	if got.RecentTriggerCount != 1 {
		t.Fatalf("recent count = %d, want 1", got.RecentTriggerCount)
	}
	if got.LatestTriggerDate == nil || *got.LatestTriggerDate != "2024-05-20" {
		t.Fatalf("latest date = %v, want 2024-05-20", got.LatestTriggerDate)
	}
	if got.Score != 66.6 || got.Signal != models.SignalBullish {
		t.Fatalf("score/signal must stay frozen, got %v/%q", got.Score, got.Signal)
	}
}

func TestReanalyzerSkipsUnarchivedAndUnchanged(t *testing.T) {
	f := newFixture(t)
	date := "2024-05-20"
	f.remote.triggers = []models.StoredTrigger{
		{ID: "no-archive"},
		{ID: "fresh", RecentTriggerCount: 1, LatestTriggerDate: &date},
	}
	f.archive.events["fresh"] = []models.EventOutcome{{Date: date}}

	r := NewReanalyzer(f.sync, f.archive, testLogger(t))
	r.now = func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }
	r.Run(context.Background())

	if n := f.metrics.ops["update:ok"]; n != 0 {
		t.Fatalf("updates = %d, want 0", n)
	}
}
