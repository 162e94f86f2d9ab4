package signal

import (
	"testing"

	"TriggerLab/internal/domain/models"
)

func TestDerive(t *testing.T) {
	cases := []struct {
		conditionType string
		want          models.Signal
	}{
		{"ma_crossunder", models.SignalBearish},
		{"vix_below", models.SignalBearish},
		{"putcall_below", models.SignalBearish},
		{"feargreed_above", models.SignalBearish},
		{"ma_crossover", models.SignalBullish},
		{"rsi_above", models.SignalBullish},
		{"rsi_below", models.SignalBullish},
		{"dual_ath", models.SignalBullish},
		{"vix_above", models.SignalBullish},
		{"feargreed_below", models.SignalBullish},
		{"sp500_pct_above_200ma", models.SignalBullish},
		{"made_up_condition", models.SignalNone},
		{"", models.SignalNone},
	}
	for _, c := range cases {
		if got := Derive(c.conditionType); got != c.want {
			t.Errorf("Derive(%q) = %q, want %q", c.conditionType, got, c.want)
		}
	}
}

func TestConditionTypesAllClassified(t *testing.T) {
	for _, ct := range ConditionTypes {
		if Derive(ct) == models.SignalNone {
			t.Errorf("condition type %q has no direction", ct)
		}
		if _, ok := DefaultParams[ct]; !ok {
			t.Errorf("condition type %q has no default params", ct)
		}
	}
}

func TestDescribe(t *testing.T) {
	got := Describe(models.Criteria{
		ConditionType: "rsi_above",
		TargetTicker:  "SPY",
		Params:        map[string]any{"rsi_period": 14, "rsi_threshold": 70},
	})
	if got != "RSI(14) crosses above 70" {
		t.Fatalf("describe = %q", got)
	}
}

func TestDescribeWithTickers(t *testing.T) {
	got := Describe(models.Criteria{
		ConditionType:    "dual_ath",
		ConditionTickers: []string{"QQQ", "SPY"},
		Params:           map[string]any{"days_gap": 365},
	})
	if got != "Dual ATH after 365-day gap on QQQ, SPY" {
		t.Fatalf("describe = %q", got)
	}
}

func TestDescribeMissingParam(t *testing.T) {
	got := Describe(models.Criteria{ConditionType: "vix_above"})
	if got != "VIX above ?" {
		t.Fatalf("describe = %q", got)
	}
}

func TestDescribeUnknownType(t *testing.T) {
	got := Describe(models.Criteria{ConditionType: "lunar_phase_full"})
	if got != "lunar phase full" {
		t.Fatalf("describe = %q", got)
	}
}
