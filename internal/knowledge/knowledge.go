// Package knowledge holds the static travel tables the planner validates and
// derives against. The tables are built once at package init and never
// mutated; every accessor hands out copies.
package knowledge

import (
	"strings"

	"github.com/ajitpratap0/tripplanner/internal/models"
)

// FallbackFact is returned when a destination has no facts on record.
const FallbackFact = "Every journey creates its own story!"

// Region is one supported destination with its facts and points of interest.
type Region struct {
	Key    string // lower-case lookup key
	Name   string // display name
	Facts  []string
	Places []string
}

var regions = []Region{
	{
		Key:  "tamil nadu",
		Name: "Tamil Nadu",
		Facts: []string{
			"Did you know? Tamil Nadu is home to over 33,000 ancient temples!",
			"Chennai's Marina Beach is the second longest urban beach in the world.",
		},
		Places: []string{
			"Chennai - Marina Beach, Kapaleeshwarar Temple",
			"Madurai - Meenakshi Amman Temple",
			"Ooty - Botanical Gardens, Nilgiri Mountain Railway",
			"Kanyakumari - Vivekananda Rock Memorial",
		},
	},
	{
		Key:  "kerala",
		Name: "Kerala",
		Facts: []string{
			"Kerala is known as 'God's Own Country'.",
			"Kerala has the highest literacy rate among Indian states.",
		},
		Places: []string{
			"Munnar - Tea Gardens, Eravikulam National Park",
			"Alleppey - Backwaters, Houseboats",
			"Kochi - Fort Kochi, Chinese Fishing Nets",
			"Thekkady - Periyar Wildlife Sanctuary",
		},
	},
	{
		Key:  "karnataka",
		Name: "Karnataka",
		Facts: []string{
			"Karnataka's Hampi is a UNESCO World Heritage Site.",
			"Bangalore is known as the Silicon Valley of India.",
		},
		Places: []string{
			"Bangalore - Lalbagh, Cubbon Park",
			"Mysore - Mysore Palace, Brindavan Gardens",
			"Hampi - Vijaya Vittala Temple, Stone Chariot",
			"Coorg - Abbey Falls, Coffee Plantations",
		},
	},
	{
		Key:  "telangana",
		Name: "Telangana",
		Facts: []string{
			"Hyderabad, the capital of Telangana, is known as the City of Pearls.",
			"Charminar, an iconic monument, was built in 1591 in Hyderabad.",
		},
		Places: []string{
			"Hyderabad - Charminar, Golconda Fort, Hussain Sagar Lake",
			"Warangal - Warangal Fort, Thousand Pillar Temple",
			"Nizamabad - Pocharam Wildlife Sanctuary",
			"Nagarjuna Sagar - Nagarjuna Sagar Dam",
		},
	},
}

var quotes = []string{
	"Travel is the only thing you buy that makes you richer.",
	"The journey of a thousand miles begins with a single step.",
	"Adventure is worthwhile.",
	"Jobs fill your pockets, adventures fill your soul.",
}

var themes = []string{
	"Adventure", "Escape", "Odyssey", "Expedition", "Retreat", "Quest", "Voyage",
}

var advice = map[models.Tier]models.Suggestions{
	models.TierBudget: {
		models.CategoryTravel:        "Consider using budget transportation options like buses or trains.",
		models.CategoryAccommodation: "Opt for budget accommodations like hostels or staying with friends/family.",
		models.CategoryActivities:    "Focus on free or low-cost activities such as hiking, sightseeing, or local events.",
		models.CategoryPlanning:      "According to the budget, try to complete the trip in 2-3 days.",
	},
	models.TierStandard: {
		models.CategoryTravel:        "You can explore economy flights or train travel for longer distances.",
		models.CategoryAccommodation: "Mid-range hotels or vacation rentals could fit within your budget.",
		models.CategoryActivities:    "Plan for a mix of free and paid activities, such as museums, local tours, and dining out.",
		models.CategoryPlanning:      "As the budget is a little flexible, plan the trip for 4 days.",
	},
	models.TierPremium: {
		models.CategoryTravel:        "You have the flexibility to book flights or rent a car for convenience.",
		models.CategoryAccommodation: "Consider luxury hotels, resorts, or premium vacation rentals.",
		models.CategoryActivities:    "Enjoy premium activities like guided tours, adventure sports, or fine dining.",
		models.CategoryPlanning:      "With a generous budget, you can stay for a week!",
	},
}

var byKey = func() map[string]*Region {
	m := make(map[string]*Region, len(regions))
	for i := range regions {
		m[regions[i].Key] = &regions[i]
	}
	return m
}()

// Lookup finds a region by name, ignoring case. Whitespace is significant.
func Lookup(name string) (Region, bool) {
	r, ok := byKey[strings.ToLower(name)]
	if !ok {
		return Region{}, false
	}
	return r.clone(), true
}

// IsSupported reports whether name matches a supported region.
func IsSupported(name string) bool {
	_, ok := byKey[strings.ToLower(name)]
	return ok
}

// Regions returns every supported region in a stable order.
func Regions() []Region {
	out := make([]Region, len(regions))
	for i := range regions {
		out[i] = regions[i].clone()
	}
	return out
}

// Names returns the display names of the supported regions.
func Names() []string {
	out := make([]string, len(regions))
	for i := range regions {
		out[i] = regions[i].Name
	}
	return out
}

// Facts returns the facts for a region, or nil when the region is unknown.
func Facts(name string) []string {
	r, ok := byKey[strings.ToLower(name)]
	if !ok {
		return nil
	}
	return cloneStrings(r.Facts)
}

// Places returns the ordered points of interest for a region. An unknown
// region yields an empty, non-nil slice.
func Places(name string) []string {
	r, ok := byKey[strings.ToLower(name)]
	if !ok {
		return []string{}
	}
	return cloneStrings(r.Places)
}

// Quotes returns the inspirational quotes.
func Quotes() []string { return cloneStrings(quotes) }

// Themes returns the trip name themes.
func Themes() []string { return cloneStrings(themes) }

// Advice returns the suggestions for a tier. Unknown tiers yield an empty map.
func Advice(t models.Tier) models.Suggestions {
	return advice[t].Clone()
}

func (r *Region) clone() Region {
	return Region{
		Key:    r.Key,
		Name:   r.Name,
		Facts:  cloneStrings(r.Facts),
		Places: cloneStrings(r.Places),
	}
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
