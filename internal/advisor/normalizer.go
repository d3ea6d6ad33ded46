package advisor

import (
	"errors"
	"fmt"

	"github.com/finpass/backend/internal/models"
)

// DefaultRiskLevel is assumed when a record states no risk tier.
const DefaultRiskLevel = "Moderate"

// ErrMissingGroup indicates a record without the nested groups normalization
// needs; callers surface it as the insufficient-data condition.
var ErrMissingGroup = errors.New("missing required record group")

// Substitution records one field whose stated value was replaced by a
// default during normalization.
type Substitution struct {
	Field  string
	Reason string
}

// Snapshot is the canonical numeric view of a raw user record. It is built
// per request and never stored. MonthlySavings is always recomputed as
// income minus expenses; the record's own monthly_savings field is ignored
// so stated savings can never drift from stated income and expenses.
type Snapshot struct {
	MonthlyIncome    float64
	MonthlyExpenses  float64
	MonthlySavings   float64
	GoalAmount       float64
	GoalTimeMonths   int
	RiskLevel        string
	InvestmentAmount float64
	HasEmergencyFund bool

	// Substitutions lists every defaulted field, for audit logging.
	Substitutions []Substitution
}

// Normalize coerces a raw user record into a Snapshot. Scalar coercion never
// fails: malformed values become 0 and are noted in Substitutions. The only
// error is a record missing its financials or Goal group entirely.
func Normalize(rec models.UserRecord) (*Snapshot, error) {
	if rec.Financials == nil {
		return nil, fmt.Errorf("%w: financials", ErrMissingGroup)
	}
	if rec.Goal == nil {
		return nil, fmt.Errorf("%w: Goal", ErrMissingGroup)
	}

	s := &Snapshot{}
	num := func(field string, v any) float64 {
		c := Coerce(v, 0)
		if c.Defaulted {
			s.Substitutions = append(s.Substitutions, Substitution{Field: field, Reason: c.Reason})
		}
		return c.Value
	}

	s.MonthlyIncome = num("financials."+models.FieldMonthlyIncome, rec.Financials[models.FieldMonthlyIncome])
	s.MonthlyExpenses = num("financials."+models.FieldMonthlyExpenses, rec.Financials[models.FieldMonthlyExpenses])
	s.MonthlySavings = s.MonthlyIncome - s.MonthlyExpenses

	s.GoalAmount = num("Goal."+models.FieldTargetAmount, rec.Goal[models.FieldTargetAmount])
	s.GoalTimeMonths = int(num("Goal."+models.FieldTargetTime, rec.Goal[models.FieldTargetTime]))

	if v, ok := rec.Investments[models.FieldRiskOption]; ok {
		s.RiskLevel = riskLevel(v)
	} else {
		s.RiskLevel = DefaultRiskLevel
	}
	s.InvestmentAmount = num("investments."+models.FieldInvestAmount, rec.Investments[models.FieldInvestAmount])
	s.HasEmergencyFund = Truthy(rec.Financials[models.FieldEmergencyFund])

	return s, nil
}

// riskLevel renders a stated tier verbatim; only an absent key takes the
// default, so a field present with null stays an unknown tier and gets the
// downstream ROI and allocation fallbacks.
func riskLevel(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}
