// Package render turns a trip summary into something a person reads:
// terminal text, indented JSON or a one-page PDF.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ajitpratap0/tripplanner/internal/models"
)

// DefaultCurrency is the symbol printed before budgets in text output.
const DefaultCurrency = "₹"

var tierIcons = map[models.Tier]map[models.Category]string{
	models.TierBudget: {
		models.CategoryTravel:        "🚌",
		models.CategoryAccommodation: "🏠",
		models.CategoryActivities:    "🎯",
		models.CategoryPlanning:      "⏰",
	},
	models.TierStandard: {
		models.CategoryTravel:        "🚂",
		models.CategoryAccommodation: "🏨",
		models.CategoryActivities:    "🎨",
		models.CategoryPlanning:      "📅",
	},
	models.TierPremium: {
		models.CategoryTravel:        "✈",
		models.CategoryAccommodation: "🏰",
		models.CategoryActivities:    "🎭",
		models.CategoryPlanning:      "🗓",
	},
}

// Text writes the summary in the layout of the planner's results panel.
func Text(w io.Writer, s models.Summary, currency string) error {
	if currency == "" {
		currency = DefaultCurrency
	}

	var b strings.Builder
	b.WriteString("✨ --- Creative Trip Summary --- ✨\n")
	fmt.Fprintf(&b, "🎈 Trip Name: %s\n", s.TripName)
	fmt.Fprintf(&b, "🌍 Destination: %s\n", s.Destination)
	fmt.Fprintf(&b, "📅 Start Date: %s\n", dateOrDash(s.StartDate))
	fmt.Fprintf(&b, "📅 End Date: %s\n", dateOrDash(s.EndDate))
	fmt.Fprintf(&b, "⏱ Trip Duration: %d days\n", s.Duration)
	fmt.Fprintf(&b, "💰 Budget: %s%.2f\n", currency, s.Budget)

	b.WriteString("\n🎯 Planned Activities:\n")
	for i, a := range s.Activities {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, a)
	}

	b.WriteString("\n💡 --- Suggestions Based on Budget ---\n")
	for _, line := range SuggestionLines(s, true) {
		fmt.Fprintf(&b, "  %s\n", line)
	}

	b.WriteString("\n🗺 --- Places to Visit ---\n")
	for i, p := range s.Places {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, p)
	}

	fmt.Fprintf(&b, "\n✨ Fun Fact: %s\n", s.Fact)
	fmt.Fprintf(&b, "💫 Quote: %s\n", s.Quote)

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("render: writing text: %w", err)
	}
	return nil
}

// SuggestionLines formats the suggestions in category order as
// "Category: advice", optionally prefixing each advice with the tier icon.
// Categories without advice are skipped.
func SuggestionLines(s models.Summary, icons bool) []string {
	var lines []string
	for _, c := range models.Categories {
		advice, ok := s.Suggestions[c]
		if !ok {
			continue
		}
		if icon := tierIcons[s.Tier][c]; icons && icon != "" {
			advice = icon + " " + advice
		}
		lines = append(lines, fmt.Sprintf("%s: %s", c, advice))
	}
	return lines
}

// JSON writes the summary as indented JSON.
func JSON(w io.Writer, s models.Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("render: encoding JSON: %w", err)
	}
	return nil
}

func dateOrDash(d *string) string {
	if d == nil {
		return "-"
	}
	return *d
}
