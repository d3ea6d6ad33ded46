package models

// Onboarding tracks a user's progress through the guided setup flow.
// CurrentStep is nil once onboarding is completed.
type Onboarding struct {
	Status      string  `json:"status"`
	CurrentStep *int    `json:"current_step"`
	LastUpdated *string `json:"last_updated"`
}

// Onboarding status values
const (
	OnboardingNotStarted = "not_started"
	OnboardingInProgress = "in_progress"
	OnboardingCompleted  = "completed"
	OnboardingCancelled  = "cancelled"
)

// UserRecord is the raw per-user financial document as stored. The nested
// groups are loosely typed on purpose: field values may be absent, null,
// numeric, numeric-as-string, or a single-key wrapper object around a number
// (a legacy export artifact). The advisor core owns all coercion.
type UserRecord struct {
	Financials  map[string]any `json:"financials"`
	Goal        map[string]any `json:"Goal"`
	Investments map[string]any `json:"investments"`
	Progress    map[string]any `json:"progress,omitempty"`
	Onboarding  *Onboarding    `json:"onboarding,omitempty"`
}

// Well-known keys inside the nested groups.
const (
	FieldMonthlyIncome   = "monthly-income"
	FieldMonthlyExpenses = "monthly-expenses"
	FieldMonthlySavings  = "monthly_savings"
	FieldDebt            = "debt"
	FieldEmergencyFund   = "em-fund-opted"
	FieldTargetAmount    = "target-amt"
	FieldTargetTime      = "target-time"
	FieldRiskOption      = "risk-opt"
	FieldInvestAmount    = "invest-amt"
)

