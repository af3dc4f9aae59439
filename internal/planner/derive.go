package planner

import (
	"github.com/ajitpratap0/tripplanner/internal/knowledge"
	"github.com/ajitpratap0/tripplanner/internal/models"
)

const (
	// standardFloor is the lowest budget in the standard tier (inclusive).
	standardFloor = 10000

	// standardCeiling is the highest budget in the standard tier (inclusive).
	standardCeiling = 20000
)

// TierFor maps a budget onto its suggestion tier.
func TierFor(budget float64) models.Tier {
	switch {
	case budget < standardFloor:
		return models.TierBudget
	case budget <= standardCeiling:
		return models.TierStandard
	default:
		return models.TierPremium
	}
}

// SuggestionsFor returns the advice for the tier the budget falls into.
func SuggestionsFor(budget float64) models.Suggestions {
	return knowledge.Advice(TierFor(budget))
}

// PlacesFor returns the points of interest for a destination. Unknown or
// empty destinations yield an empty slice.
func PlacesFor(destination string) []string {
	return knowledge.Places(destination)
}
