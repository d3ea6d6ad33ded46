package advisor

import (
	"math"

	"github.com/finpass/backend/internal/models"
)

// sipDeltas are the fixed contribution increases explored by the what-if
// table, in the caller's currency unit.
var sipDeltas = []float64{2000, 5000, 8000, 12000}

// SimulateSIPChange projects the effect of stepped contribution increases.
// The model here is intentionally crude: total contributions times a flat
// growth factor, with no compounding. It exists for quick relative
// comparison, not as a second projection engine, and its probabilities clamp
// at 100 rather than 120.
func SimulateSIPChange(currentSavings, target float64, years int, roi float64) []models.WhatIfScenario {
	scenarios := make([]models.WhatIfScenario, 0, len(sipDeltas))
	for _, delta := range sipDeltas {
		newSIP := currentSavings + delta
		futureValue := newSIP * 12 * float64(years) * (1 + roi/100)
		probability := math.Min(100, futureValue/target*100)

		scenarios = append(scenarios, models.WhatIfScenario{
			AdditionalSIP:  delta,
			NewProbability: round2(probability),
		})
	}
	return scenarios
}
