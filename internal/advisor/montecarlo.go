package advisor

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/finpass/backend/internal/models"
)

// Simulation defaults: number of paths and annual market assumptions.
const (
	defaultSimulations    = 1000
	defaultExpectedReturn = 0.12
	defaultVolatility     = 0.08
)

// Simulator produces a stochastic estimate of goal success, independent of
// the deterministic projection. It owns its random source so tests can seed
// it; calls never share state beyond the source.
type Simulator struct {
	rng            *rand.Rand
	simulations    int
	expectedReturn float64
	volatility     float64
}

// NewSimulator returns a Simulator seeded from the clock.
func NewSimulator() *Simulator {
	return NewSimulatorWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewSimulatorWithSource returns a Simulator drawing from src. Use a fixed
// seed for reproducible results in tests.
func NewSimulatorWithSource(src rand.Source) *Simulator {
	return &Simulator{
		rng:            rand.New(src),
		simulations:    defaultSimulations,
		expectedReturn: defaultExpectedReturn,
		volatility:     defaultVolatility,
	}
}

// simulatePaths runs the configured number of independent paths. Each month
// the running balance takes a Gaussian return and then receives the fixed
// contribution.
func (s *Simulator) simulatePaths(monthlyInvest float64, months int) []float64 {
	mean := s.expectedReturn / 12
	stddev := s.volatility / math.Sqrt(12)

	results := make([]float64, s.simulations)
	for i := range results {
		value := 0.0
		for m := 0; m < months; m++ {
			monthlyReturn := s.rng.NormFloat64()*stddev + mean
			value = value*(1+monthlyReturn) + monthlyInvest
		}
		results[i] = value
	}
	return results
}

// GoalProbability estimates the chance of reaching the goal as the fraction
// of simulated paths whose final value meets the target. The record is read
// directly, without normalization: a missing or non-numeric field here is a
// caller error, not data to be defaulted.
func (s *Simulator) GoalProbability(rec models.UserRecord) (models.SimulationResult, error) {
	goalAmount, err := requireNum(rec.Goal, "Goal", models.FieldTargetAmount)
	if err != nil {
		return models.SimulationResult{}, err
	}
	months, err := requireNum(rec.Goal, "Goal", models.FieldTargetTime)
	if err != nil {
		return models.SimulationResult{}, err
	}
	invest, err := requireNum(rec.Investments, "investments", models.FieldInvestAmount)
	if err != nil {
		return models.SimulationResult{}, err
	}

	results := s.simulatePaths(invest, int(months))

	success := 0
	sum := 0.0
	for _, r := range results {
		if r >= goalAmount {
			success++
		}
		sum += r
	}
	n := float64(len(results))

	return models.SimulationResult{
		GoalProbability: round2(float64(success) / n * 100),
		ExpectedValue:   round2(sum / n),
	}, nil
}

// AssetAllocation maps a risk tier to percentage weights across three asset
// classes. Anything other than Low or Moderate, including High, takes the
// aggressive split.
func AssetAllocation(risk string) map[string]float64 {
	switch risk {
	case "Low":
		return map[string]float64{"Equity": 30, "Debt": 60, "Gold": 10}
	case "Moderate":
		return map[string]float64{"Equity": 60, "Debt": 30, "Gold": 10}
	default:
		return map[string]float64{"Equity": 80, "Debt": 15, "Gold": 5}
	}
}

// GeneratePlan scales the risk-tier allocation by the stated investment
// amount to produce a recommended plan per asset class.
func GeneratePlan(rec models.UserRecord) (map[string]float64, error) {
	riskField, ok := rec.Investments[models.FieldRiskOption]
	if !ok {
		return nil, fmt.Errorf("record missing investments.%s", models.FieldRiskOption)
	}
	risk, _ := riskField.(string)

	investAmt, err := requireNum(rec.Investments, "investments", models.FieldInvestAmount)
	if err != nil {
		return nil, err
	}

	plan := make(map[string]float64)
	for asset, pct := range AssetAllocation(risk) {
		plan[asset] = round2(investAmt * pct / 100)
	}
	return plan, nil
}

// ShouldAdjust gives a one-line nudge for a stochastic probability estimate.
func ShouldAdjust(probability float64) string {
	if probability < 50 {
		return "Increase tenure or reduce risk"
	}
	if probability < 70 {
		return "Increase monthly investment"
	}
	return "No change required"
}

// requireNum reads a numeric field without defaulting: absence or a
// non-numeric value is an error.
func requireNum(group map[string]any, groupName, key string) (float64, error) {
	v, ok := group[key]
	if !ok {
		return 0, fmt.Errorf("record missing %s.%s", groupName, key)
	}
	switch t := v.(type) {
	case float64:
		return t, nil
	case float32:
		return float64(t), nil
	case int:
		return float64(t), nil
	case int64:
		return float64(t), nil
	default:
		return 0, fmt.Errorf("%s.%s is not numeric", groupName, key)
	}
}
