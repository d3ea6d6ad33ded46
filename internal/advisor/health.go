package advisor

import (
	"math"

	"github.com/finpass/backend/internal/models"
)

// Health labels by savings ratio.
const (
	HealthExcellent        = "Excellent"
	HealthGood             = "Good"
	HealthNeedsImprovement = "Needs Improvement"
	HealthCritical         = "Critical"
)

// ComputeFinancialHealth derives savings and expense ratios from the raw
// record and buckets them into a qualitative label. Unlike the projection,
// this reads the record's own monthly_savings field rather than recomputing
// it, so the ratio reflects what the user actually stated they save.
func ComputeFinancialHealth(rec models.UserRecord) models.HealthResult {
	income := Coerce(rec.Financials[models.FieldMonthlyIncome], 0).Value
	expenses := Coerce(rec.Financials[models.FieldMonthlyExpenses], 0).Value
	savings := Coerce(rec.Financials[models.FieldMonthlySavings], 0).Value

	var savingsRatio, expenseRatio float64
	if income > 0 {
		savingsRatio = savings / income
		expenseRatio = expenses / income
	}

	var health string
	switch {
	case savingsRatio >= 0.30:
		health = HealthExcellent
	case savingsRatio >= 0.20:
		health = HealthGood
	case savingsRatio > 0:
		health = HealthNeedsImprovement
	default:
		health = HealthCritical
	}

	riskScore := math.Min(100, math.Max(0, expenseRatio*100))

	return models.HealthResult{
		FinancialHealth: health,
		SavingsRatio:    round2(savingsRatio),
		ExpenseRatio:    round2(expenseRatio),
		RiskScore:       round1(riskScore),
	}
}
