package advisor

import (
	"errors"
	"math"
	"testing"

	"github.com/finpass/backend/internal/models"
)

func validRecord(savings float64) models.UserRecord {
	return record(
		map[string]any{"monthly-income": 50000 + savings, "monthly-expenses": 50000.0},
		map[string]any{"target-amt": 1000000.0, "target-time": 60.0},
		map[string]any{"risk-opt": "Moderate"},
	)
}

func TestComputeGoalIntelligenceExample(t *testing.T) {
	gi, err := ComputeGoalIntelligence(validRecord(30000))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gi.ROIAssumed != 10 {
		t.Fatalf("roi = %v, want 10", gi.ROIAssumed)
	}
	if gi.MonthlySavings != 30000 {
		t.Fatalf("savings = %v, want 30000", gi.MonthlySavings)
	}
	// 30000/month at 10% annual over 60 months is roughly 2.32M, well past
	// the 1M target, so probability clamps at the 120 ceiling.
	if gi.GoalProbability != 120 {
		t.Fatalf("probability = %v, want 120", gi.GoalProbability)
	}
	if gi.Verdict != VerdictAchievable {
		t.Fatalf("verdict = %q, want %q", gi.Verdict, VerdictAchievable)
	}
	if gi.ExpectedCorpus < 2300000 || gi.ExpectedCorpus > 2350000 {
		t.Fatalf("expected corpus = %d, want ~2325000", gi.ExpectedCorpus)
	}
	if gi.Gap != gi.ExpectedCorpus-1000000 {
		t.Fatalf("gap = %d, corpus = %d", gi.Gap, gi.ExpectedCorpus)
	}
	if gi.GoalTimeMonths != 60 {
		t.Fatalf("goal time = %d, want 60", gi.GoalTimeMonths)
	}
}

func TestComputeGoalIntelligenceROIMapping(t *testing.T) {
	cases := []struct {
		risk string
		roi  float64
	}{
		{"Low", 6},
		{"Moderate", 10},
		{"High", 14},
		{"Aggressive", 8}, // unknown tier takes the fallback, not Moderate
		{"", 8},
	}
	for _, tc := range cases {
		rec := validRecord(30000)
		rec.Investments["risk-opt"] = tc.risk
		gi, err := ComputeGoalIntelligence(rec)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.risk, err)
		}
		if gi.ROIAssumed != tc.roi {
			t.Fatalf("%s: roi = %v, want %v", tc.risk, gi.ROIAssumed, tc.roi)
		}
	}
}

func TestComputeGoalIntelligenceNullRiskUsesFallback(t *testing.T) {
	rec := validRecord(30000)
	rec.Investments["risk-opt"] = nil
	gi, err := ComputeGoalIntelligence(rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// A null tier is present-but-unrecognized, so it takes the 8% fallback
	// rather than the Moderate default reserved for an absent field.
	if gi.ROIAssumed != 8 {
		t.Fatalf("roi = %v, want 8", gi.ROIAssumed)
	}
	if gi.RiskLevel == "Moderate" {
		t.Fatalf("risk level = %q, null tier must not become Moderate", gi.RiskLevel)
	}
}

func TestComputeGoalIntelligenceAbsentRiskUsesModerate(t *testing.T) {
	rec := validRecord(30000)
	delete(rec.Investments, "risk-opt")
	gi, err := ComputeGoalIntelligence(rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Absent risk defaults to Moderate during normalization, which maps to
	// 10, not the unknown-tier fallback of 8.
	if gi.ROIAssumed != 10 {
		t.Fatalf("roi = %v, want 10", gi.ROIAssumed)
	}
	if gi.RiskLevel != "Moderate" {
		t.Fatalf("risk level = %q, want Moderate", gi.RiskLevel)
	}
}

func TestComputeGoalIntelligenceInvalidValues(t *testing.T) {
	cases := []struct {
		name string
		mut  func(rec *models.UserRecord)
	}{
		{"non-positive savings", func(rec *models.UserRecord) {
			rec.Financials["monthly-income"] = 40000.0
			rec.Financials["monthly-expenses"] = 50000.0
		}},
		{"zero savings", func(rec *models.UserRecord) {
			rec.Financials["monthly-income"] = 50000.0
			rec.Financials["monthly-expenses"] = 50000.0
		}},
		{"non-positive horizon", func(rec *models.UserRecord) {
			rec.Goal["target-time"] = 0.0
		}},
		{"non-positive target", func(rec *models.UserRecord) {
			rec.Goal["target-amt"] = -5.0
		}},
		{"malformed target defaults to zero", func(rec *models.UserRecord) {
			rec.Goal["target-amt"] = "soon"
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := validRecord(30000)
			tc.mut(&rec)
			_, err := ComputeGoalIntelligence(rec)
			if !errors.Is(err, ErrInvalidFinancialValues) {
				t.Fatalf("expected ErrInvalidFinancialValues, got %v", err)
			}
		})
	}
}

func TestComputeGoalIntelligenceInsufficientData(t *testing.T) {
	_, err := ComputeGoalIntelligence(models.UserRecord{})
	if !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
}

func TestVerdictBands(t *testing.T) {
	cases := []struct {
		probability float64
		want        string
	}{
		{120, VerdictAchievable},
		{100.00, VerdictAchievable},
		{99.99, VerdictOnTrack},
		{75, VerdictOnTrack},
		{74.99, VerdictHighRisk},
		{50, VerdictHighRisk},
		{49.99, VerdictUnlikely},
		{0, VerdictUnlikely},
	}
	for _, tc := range cases {
		if got := verdict(tc.probability); got != tc.want {
			t.Fatalf("verdict(%v) = %q, want %q", tc.probability, got, tc.want)
		}
	}
}

func TestGoalProbabilityBounds(t *testing.T) {
	// A barely reachable goal keeps the probability inside (0, 120).
	rec := validRecord(1000)
	rec.Goal["target-amt"] = 100000000.0
	gi, err := ComputeGoalIntelligence(rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gi.GoalProbability < 0 || gi.GoalProbability > 120 {
		t.Fatalf("probability %v out of [0, 120]", gi.GoalProbability)
	}
	if gi.Gap >= 0 {
		t.Fatalf("expected shortfall, gap = %d", gi.Gap)
	}
}

func TestComputeGoalIntelligenceExtremeHorizonSaturates(t *testing.T) {
	// Compounding over thousands of months pushes the future value far past
	// int64 range; the corpus and gap must saturate, not wrap.
	rec := validRecord(30000)
	rec.Goal["target-time"] = 12000.0
	rec.Investments["risk-opt"] = "High"
	gi, err := ComputeGoalIntelligence(rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gi.ExpectedCorpus != math.MaxInt64 {
		t.Fatalf("expected corpus = %d, want saturation at MaxInt64", gi.ExpectedCorpus)
	}
	if gi.Gap != math.MaxInt64 {
		t.Fatalf("gap = %d, want saturation at MaxInt64", gi.Gap)
	}
	if gi.GoalProbability != 120 {
		t.Fatalf("probability = %v, want 120", gi.GoalProbability)
	}
	if gi.Verdict != VerdictAchievable {
		t.Fatalf("verdict = %q", gi.Verdict)
	}
}

func TestMonotonicityInSavings(t *testing.T) {
	prevCorpus := int64(math.MinInt64)
	prevProbability := -1.0
	for savings := 1000.0; savings <= 20000; savings += 1000 {
		rec := validRecord(savings)
		rec.Goal["target-amt"] = 10000000.0
		gi, err := ComputeGoalIntelligence(rec)
		if err != nil {
			t.Fatalf("savings %v: unexpected error: %v", savings, err)
		}
		if gi.ExpectedCorpus < prevCorpus {
			t.Fatalf("corpus decreased at savings %v: %d < %d", savings, gi.ExpectedCorpus, prevCorpus)
		}
		if gi.GoalProbability < prevProbability {
			t.Fatalf("probability decreased at savings %v: %v < %v", savings, gi.GoalProbability, prevProbability)
		}
		prevCorpus = gi.ExpectedCorpus
		prevProbability = gi.GoalProbability
	}
}
