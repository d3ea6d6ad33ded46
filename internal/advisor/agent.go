package advisor

import "github.com/finpass/backend/internal/models"

// Agent actions.
const (
	ActionHold   = "HOLD"
	ActionAdjust = "ADJUST"
	ActionSwitch = "SWITCH"
	ActionAbort  = "ABORT"
)

// fallbackHorizonYears is used only when goal intelligence carries no
// horizon of its own.
const fallbackHorizonYears = 10

// Decide is a pure classifier over goal probability. Bands are inclusive on
// their lower bound.
func Decide(probability float64) models.Decision {
	switch {
	case probability >= 80:
		return models.Decision{
			Action:  ActionHold,
			Message: "Your goal is on track. Continue current plan.",
		}
	case probability >= 50:
		return models.Decision{
			Action:  ActionAdjust,
			Message: "Increase SIP slightly or extend tenure to improve success probability.",
		}
	case probability >= 30:
		return models.Decision{
			Action:  ActionSwitch,
			Message: "Current strategy is weak. Consider higher savings or different instruments.",
		}
	default:
		return models.Decision{
			Action:  ActionAbort,
			Message: "Goal is unrealistic under current conditions. Redefine goal or timeline.",
		}
	}
}

// RunAgent turns goal intelligence into an agent response. The verdict is
// echoed as the reason; when the action implies risk (ADJUST or SWITCH) the
// response carries what-if alternatives over the goal's own horizon, rounded
// up to whole years. The caller must not pass an error result here.
func RunAgent(gi models.GoalIntelligence) models.AgentResponse {
	decision := Decide(gi.GoalProbability)

	resp := models.AgentResponse{
		Decision: decision,
		Reason:   gi.Verdict,
	}

	if decision.Action == ActionAdjust || decision.Action == ActionSwitch {
		years := (gi.GoalTimeMonths + 11) / 12
		if years <= 0 {
			years = fallbackHorizonYears
		}
		resp.WhatIf = SimulateSIPChange(gi.MonthlySavings, gi.TargetAmount, years, gi.ROIAssumed)
	}

	return resp
}
