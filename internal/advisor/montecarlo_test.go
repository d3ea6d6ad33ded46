package advisor

import (
	"math/rand"
	"testing"

	"github.com/finpass/backend/internal/models"
)

func simRecord(goalAmt, months, invest float64) models.UserRecord {
	return models.UserRecord{
		Goal:        map[string]any{"target-amt": goalAmt, "target-time": months},
		Investments: map[string]any{"risk-opt": "Moderate", "invest-amt": invest},
	}
}

func TestGoalProbabilityReproducibleWithSeed(t *testing.T) {
	rec := simRecord(1000000, 60, 10000)

	a, err := NewSimulatorWithSource(rand.NewSource(1)).GoalProbability(rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := NewSimulatorWithSource(rand.NewSource(1)).GoalProbability(rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a != b {
		t.Fatalf("same seed produced different results: %+v vs %+v", a, b)
	}
}

func TestGoalProbabilityBoundsAndExpectedValue(t *testing.T) {
	res, err := NewSimulatorWithSource(rand.NewSource(42)).GoalProbability(simRecord(1000000, 60, 10000))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.GoalProbability < 0 || res.GoalProbability > 100 {
		t.Fatalf("probability %v out of [0, 100]", res.GoalProbability)
	}
	// 60 contributions of 10000 compound at ~1% a month; the mean outcome
	// has to land above the raw contributions and below doubling them.
	if res.ExpectedValue < 600000 || res.ExpectedValue > 1200000 {
		t.Fatalf("expected value %v implausible for 600000 contributed", res.ExpectedValue)
	}
}

func TestGoalProbabilityExtremes(t *testing.T) {
	sim := NewSimulatorWithSource(rand.NewSource(7))

	sure, err := sim.GoalProbability(simRecord(1000, 60, 10000))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sure.GoalProbability != 100 {
		t.Fatalf("trivial goal probability = %v, want 100", sure.GoalProbability)
	}

	hopeless, err := sim.GoalProbability(simRecord(1e12, 12, 100))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hopeless.GoalProbability != 0 {
		t.Fatalf("hopeless goal probability = %v, want 0", hopeless.GoalProbability)
	}
}

func TestGoalProbabilityStrictFields(t *testing.T) {
	sim := NewSimulatorWithSource(rand.NewSource(1))
	cases := []models.UserRecord{
		{Goal: map[string]any{"target-time": 60.0}, Investments: map[string]any{"invest-amt": 100.0}},
		{Goal: map[string]any{"target-amt": 1000.0}, Investments: map[string]any{"invest-amt": 100.0}},
		{Goal: map[string]any{"target-amt": 1000.0, "target-time": 60.0}, Investments: map[string]any{}},
		{Goal: map[string]any{"target-amt": "1000", "target-time": 60.0}, Investments: map[string]any{"invest-amt": 100.0}},
	}
	for i, rec := range cases {
		if _, err := sim.GoalProbability(rec); err == nil {
			t.Fatalf("case %d: expected error for missing/malformed field", i)
		}
	}
}

func TestAssetAllocation(t *testing.T) {
	cases := []struct {
		risk string
		want map[string]float64
	}{
		{"Low", map[string]float64{"Equity": 30, "Debt": 60, "Gold": 10}},
		{"Moderate", map[string]float64{"Equity": 60, "Debt": 30, "Gold": 10}},
		{"High", map[string]float64{"Equity": 80, "Debt": 15, "Gold": 5}},
		{"anything else", map[string]float64{"Equity": 80, "Debt": 15, "Gold": 5}},
	}
	for _, tc := range cases {
		got := AssetAllocation(tc.risk)
		for asset, pct := range tc.want {
			if got[asset] != pct {
				t.Fatalf("%s: %s = %v, want %v", tc.risk, asset, got[asset], pct)
			}
		}
	}
}

func TestGeneratePlan(t *testing.T) {
	plan, err := GeneratePlan(simRecord(0, 0, 100000))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]float64{"Equity": 60000, "Debt": 30000, "Gold": 10000}
	for asset, amt := range want {
		if plan[asset] != amt {
			t.Fatalf("%s = %v, want %v", asset, plan[asset], amt)
		}
	}

	if _, err := GeneratePlan(models.UserRecord{Investments: map[string]any{"invest-amt": 1.0}}); err == nil {
		t.Fatal("expected error for missing risk-opt")
	}
}

func TestShouldAdjust(t *testing.T) {
	cases := []struct {
		probability float64
		want        string
	}{
		{30, "Increase tenure or reduce risk"},
		{55, "Increase monthly investment"},
		{85, "No change required"},
	}
	for _, tc := range cases {
		if got := ShouldAdjust(tc.probability); got != tc.want {
			t.Fatalf("ShouldAdjust(%v) = %q, want %q", tc.probability, got, tc.want)
		}
	}
}
