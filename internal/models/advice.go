package models

// GoalIntelligence is the deterministic projection result consumed by the
// decision agent and returned to API clients.
type GoalIntelligence struct {
	MonthlySavings  float64 `json:"monthly_savings"`
	ExpectedCorpus  int64   `json:"expected_corpus"`
	TargetAmount    float64 `json:"target_amount"`
	Gap             int64   `json:"gap"` // negative means shortfall
	GoalProbability float64 `json:"goal_probability"`
	GoalTimeMonths  int     `json:"goal_time_months"`
	RiskLevel       string  `json:"risk_level"`
	ROIAssumed      float64 `json:"roi_assumed"`
	Verdict         string  `json:"verdict"`
}

// Decision is the agent's chosen action for a goal.
type Decision struct {
	Action  string `json:"action"`
	Message string `json:"message"`
}

// WhatIfScenario is one alternate outcome for a stepped contribution increase.
type WhatIfScenario struct {
	AdditionalSIP  float64 `json:"additional_sip"`
	NewProbability float64 `json:"new_probability"`
}

// AgentResponse wraps a Decision with the verdict that motivated it and,
// for at-risk actions, a table of what-if alternatives.
type AgentResponse struct {
	Decision Decision         `json:"decision"`
	Reason   string           `json:"reason"`
	WhatIf   []WhatIfScenario `json:"what_if,omitempty"`
}

// SimulationResult is the Monte Carlo estimate of goal success.
type SimulationResult struct {
	GoalProbability float64 `json:"goal_probability"`
	ExpectedValue   float64 `json:"expected_value"`
}

// HealthResult summarizes a user's financial health.
type HealthResult struct {
	FinancialHealth string  `json:"financial_health"`
	SavingsRatio    float64 `json:"savings_ratio"`
	ExpenseRatio    float64 `json:"expense_ratio"`
	RiskScore       float64 `json:"risk_score"`
}
