package advisor

import (
	"errors"
	"math"

	"github.com/finpass/backend/internal/models"
)

// Errors returned by ComputeGoalIntelligence. The messages are part of the
// API contract: handlers surface them verbatim as the result-level error.
var (
	ErrInsufficientData       = errors.New("Insufficient data to compute goal intelligence")
	ErrInvalidFinancialValues = errors.New("Invalid financial values")
)

// Verdict labels, one per probability band.
const (
	VerdictAchievable = "Goal Achievable"
	VerdictOnTrack    = "On Track but Needs Discipline"
	VerdictHighRisk   = "High Risk – Needs Adjustment"
	VerdictUnlikely   = "Goal Unlikely Without Changes"
)

// maxGoalProbability is deliberately above 100 so a comfortable overshoot is
// distinguishable from a marginal success. What-if and Monte Carlo
// probabilities clamp at 100 instead.
const maxGoalProbability = 120

// riskROI maps a stated risk tier to an assumed annual return in percent.
// Unknown tiers take the 8% fallback, which is intentionally distinct from
// the Moderate value.
var riskROI = map[string]float64{
	"Low":      6,
	"Moderate": 10,
	"High":     14,
}

const fallbackROI = 8

// ComputeGoalIntelligence runs the deterministic projection: normalize the
// record, map risk tier to an assumed ROI, project the future value of the
// monthly savings as an ordinary annuity over the goal horizon, and classify
// the outcome. Returns ErrInsufficientData when the record cannot be
// normalized and ErrInvalidFinancialValues when savings, horizon or target
// are not positive.
func ComputeGoalIntelligence(rec models.UserRecord) (models.GoalIntelligence, error) {
	snap, err := Normalize(rec)
	if err != nil {
		return models.GoalIntelligence{}, ErrInsufficientData
	}

	if snap.MonthlySavings <= 0 || snap.GoalTimeMonths <= 0 || snap.GoalAmount <= 0 {
		return models.GoalIntelligence{}, ErrInvalidFinancialValues
	}

	annualROI, ok := riskROI[snap.RiskLevel]
	if !ok {
		annualROI = fallbackROI
	}
	monthlyRate := annualROI / 12 / 100

	// Future value of an ordinary annuity. monthlyRate is never zero since
	// the assumed ROI is always one of {6, 8, 10, 14}.
	n := float64(snap.GoalTimeMonths)
	futureValue := snap.MonthlySavings * ((math.Pow(1+monthlyRate, n) - 1) / monthlyRate)

	probability := math.Min(futureValue/snap.GoalAmount*100, maxGoalProbability)
	gap := futureValue - snap.GoalAmount

	return models.GoalIntelligence{
		MonthlySavings:  snap.MonthlySavings,
		ExpectedCorpus:  toInt64(futureValue),
		TargetAmount:    snap.GoalAmount,
		Gap:             toInt64(gap),
		GoalProbability: round2(probability),
		GoalTimeMonths:  snap.GoalTimeMonths,
		RiskLevel:       snap.RiskLevel,
		ROIAssumed:      annualROI,
		Verdict:         verdict(probability),
	}, nil
}

// verdict buckets a probability into one of the four labels. Each band is
// inclusive on its lower bound.
func verdict(probability float64) string {
	switch {
	case probability >= 100:
		return VerdictAchievable
	case probability >= 75:
		return VerdictOnTrack
	case probability >= 50:
		return VerdictHighRisk
	default:
		return VerdictUnlikely
	}
}

// toInt64 truncates toward zero, saturating instead of overflowing when
// compounding over very long horizons pushes the value past int64 range.
func toInt64(f float64) int64 {
	if f >= math.MaxInt64 {
		return math.MaxInt64
	}
	if f <= math.MinInt64 {
		return math.MinInt64
	}
	return int64(f)
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
