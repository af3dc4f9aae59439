package models

// Category names one line of budget advice.
type Category string

const (
	CategoryTravel        Category = "Travel"
	CategoryAccommodation Category = "Accommodation"
	CategoryActivities    Category = "Activities"
	CategoryPlanning      Category = "Planning"
)

// Categories lists every advice category in display order.
var Categories = []Category{
	CategoryTravel,
	CategoryAccommodation,
	CategoryActivities,
	CategoryPlanning,
}

// Tier is a budget band that selects a set of suggestions.
type Tier string

const (
	TierBudget   Tier = "budget"   // [0, 10000)
	TierStandard Tier = "standard" // [10000, 20000]
	TierPremium  Tier = "premium"  // (20000, +inf)
)

// ValidTiers is the set of all tiers, lowest first.
var ValidTiers = []Tier{TierBudget, TierStandard, TierPremium}

// IsValid returns true if the tier is recognized.
func (t Tier) IsValid() bool {
	for _, v := range ValidTiers {
		if t == v {
			return true
		}
	}
	return false
}

// Suggestions maps each advice category to its advice text.
type Suggestions map[Category]string

// Clone returns an independent copy of s. A nil map clones to an empty one.
func (s Suggestions) Clone() Suggestions {
	out := make(Suggestions, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// State is the configuration stage a trip has reached. Reading a summary
// is a pure projection and leaves the state where it was, so there is no
// separate summarized stage.
type State string

const (
	StateEmpty     State = "empty"
	StatePartial   State = "partial"
	StateFinalized State = "finalized"
)

// Summary is the read-only projection of a trip handed to frontends.
// StartDate and EndDate are nil until dates have been set.
type Summary struct {
	TripName    string      `json:"trip_name"`
	Destination string      `json:"destination"`
	StartDate   *string     `json:"start_date"`
	EndDate     *string     `json:"end_date"`
	Duration    int         `json:"duration"`
	Budget      float64     `json:"budget"`
	Tier        Tier        `json:"tier,omitempty"`
	Activities  []string    `json:"activities"`
	Suggestions Suggestions `json:"suggestions"`
	Places      []string    `json:"places"`
	Fact        string      `json:"fact"`
	Quote       string      `json:"quote"`
}

// RegionInfo describes one supported destination.
type RegionInfo struct {
	Name   string   `json:"name"`
	Places []string `json:"places"`
	Facts  []string `json:"facts,omitempty"`
}
