package scoring

import (
	"testing"

	"TriggerLab/internal/domain/models"
)

func fp(v float64) *float64 { return &v }

func TestComputeScoreWorkedExample(t *testing.T) {
	// returnScore 56.25, winRateScore 75, sharpe term saturates at 100,
	// significance saturates at 100 -> 16.875+22.5+25+15 = 79.375 -> 79.4
	got := ComputeScore(Inputs{
		AvgReturn:   fp(0.125),
		AvgWinRate:  fp(0.75),
		EventCount:  60,
		MaxDrawdown: fp(-8.0),
	})
	if got != 79.4 {
		t.Fatalf("score = %v, want 79.4", got)
	}
}

func TestComputeScoreMissingInputs(t *testing.T) {
	// everything nil/zero: returnScore 25, the rest 0 except sharpe
	// (0/1+1)*50 = 50 -> 0.3*25 + 0.25*50 = 20
	got := ComputeScore(Inputs{})
	if got != 20 {
		t.Fatalf("score = %v, want 20", got)
	}
}

func TestComputeScoreZeroDrawdownFallsBackToOne(t *testing.T) {
	withZero := ComputeScore(Inputs{AvgReturn: fp(0.02), MaxDrawdown: fp(0)})
	withOne := ComputeScore(Inputs{AvgReturn: fp(0.02), MaxDrawdown: fp(-1)})
	if withZero != withOne {
		t.Fatalf("zero drawdown %v, drawdown -1 %v; magnitudes must match", withZero, withOne)
	}
}

func TestComputeScoreRange(t *testing.T) {
	returns := []*float64{nil, fp(-0.9), fp(-0.1), fp(0), fp(0.08), fp(0.3), fp(5)}
	winRates := []*float64{nil, fp(0), fp(0.5), fp(1)}
	counts := []int{0, 1, 5, 50, 10000}
	drawdowns := []*float64{nil, fp(0), fp(-0.001), fp(-8), fp(-95)}

	for _, r := range returns {
		for _, w := range winRates {
			for _, n := range counts {
				for _, d := range drawdowns {
					got := ComputeScore(Inputs{AvgReturn: r, AvgWinRate: w, EventCount: n, MaxDrawdown: d})
					if got < 0 || got > 100 {
						t.Fatalf("score %v out of [0,100] for r=%v w=%v n=%d d=%v", got, r, w, n, d)
					}
				}
			}
		}
	}
}

func TestComputeScoreExtremesClamp(t *testing.T) {
	low := ComputeScore(Inputs{AvgReturn: fp(-0.5), AvgWinRate: fp(0), EventCount: 0, MaxDrawdown: fp(-50)})
	if low < 0 {
		t.Fatalf("score %v below 0", low)
	}
	high := ComputeScore(Inputs{AvgReturn: fp(2), AvgWinRate: fp(1), EventCount: 500, MaxDrawdown: fp(-0.01)})
	if high != 100 {
		t.Fatalf("score = %v, want 100 at saturation", high)
	}
}

func TestQualityGateAdmit(t *testing.T) {
	gate := DefaultQualityGate()
	good := models.TriggerRecord{
		EventCount: 10,
		AvgReturn:  fp(0.12),
		AvgWinRate: fp(0.8),
		Score:      70,
	}
	if ok, reason := gate.Admit(good); !ok {
		t.Fatalf("expected admission, got rejection: %s", reason)
	}

	cases := []struct {
		name string
		mut  func(*models.TriggerRecord)
	}{
		{"too few events", func(r *models.TriggerRecord) { r.EventCount = 4 }},
		{"low win rate", func(r *models.TriggerRecord) { r.AvgWinRate = fp(0.69) }},
		{"nil win rate", func(r *models.TriggerRecord) { r.AvgWinRate = nil }},
		{"low return", func(r *models.TriggerRecord) { r.AvgReturn = fp(0.07) }},
		{"low score", func(r *models.TriggerRecord) { r.Score = 54.9 }},
	}
	for _, c := range cases {
		rec := good
		c.mut(&rec)
		if ok, _ := gate.Admit(rec); ok {
			t.Errorf("%s: expected rejection", c.name)
		}
	}
}
