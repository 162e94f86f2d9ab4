package usecase

import (
	"testing"

	"TriggerLab/internal/domain/models"
)

func TestCanonicalizeLegacyFields(t *testing.T) {
	rec := Canonicalize(models.StoredTrigger{
		ID:          "legacy-1",
		Name:        "old record",
		Criteria:    models.Criteria{ConditionType: "ma_crossunder"},
		AvgReturn1Y: fp(0.09),
		WinRate1Y:   fp(0.71),
		AvgMaxDD:    fp(-7.2),
		Score:       58.3,
	})
	if rec.AvgReturn == nil || *rec.AvgReturn != 0.09 {
		t.Fatalf("avg return = %v, want legacy 0.09", rec.AvgReturn)
	}
	if rec.AvgWinRate == nil || *rec.AvgWinRate != 0.71 {
		t.Fatalf("win rate = %v, want legacy 0.71", rec.AvgWinRate)
	}
	if rec.MaxDrawdown == nil || *rec.MaxDrawdown != -7.2 {
		t.Fatalf("drawdown = %v, want legacy -7.2", rec.MaxDrawdown)
	}
}

func TestCanonicalizeModernFieldsWin(t *testing.T) {
	rec := Canonicalize(models.StoredTrigger{
		AvgReturn:   fp(0.12),
		AvgReturn1Y: fp(0.01),
	})
	if *rec.AvgReturn != 0.12 {
		t.Fatalf("avg return = %v, modern field must win", *rec.AvgReturn)
	}
}

func TestCanonicalizeSignalBackfill(t *testing.T) {
	rec := Canonicalize(models.StoredTrigger{
		Criteria: models.Criteria{ConditionType: "ma_crossunder"},
	})
	if rec.Signal != models.SignalBearish {
		t.Fatalf("signal = %q, want backfilled bearish", rec.Signal)
	}
}

func TestCanonicalizeStoredSignalWins(t *testing.T) {
	// stored classification survives even when the table now disagrees
	rec := Canonicalize(models.StoredTrigger{
		Criteria: models.Criteria{ConditionType: "ma_crossunder"},
		Signal:   models.SignalBullish,
	})
	if rec.Signal != models.SignalBullish {
		t.Fatalf("signal = %q, stored value must win", rec.Signal)
	}
}

func TestCanonicalizeUnknownTypeNoSignal(t *testing.T) {
	rec := Canonicalize(models.StoredTrigger{
		Criteria: models.Criteria{ConditionType: "custom_condition"},
	})
	if rec.Signal != models.SignalNone {
		t.Fatalf("signal = %q, want none for unknown type", rec.Signal)
	}
}

func TestCanonicalizeAllPreservesOrder(t *testing.T) {
	records := CanonicalizeAll([]models.StoredTrigger{{ID: "b"}, {ID: "a"}})
	if len(records) != 2 || records[0].ID != "b" || records[1].ID != "a" {
		t.Fatalf("order changed: %+v", records)
	}
}
