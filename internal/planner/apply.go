package planner

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ajitpratap0/tripplanner/internal/models"
)

// Input is the raw form data a frontend collects from the user.
type Input struct {
	Destination string   `json:"destination"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	Budget      string   `json:"budget"`
	Activities  []string `json:"activities"`
}

// ParseBudget converts raw budget text into a value SetBudget accepts.
// Surrounding whitespace is ignored.
func ParseBudget(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidBudget, raw)
	}
	if !validBudget(v) {
		return 0, fmt.Errorf("%w: got %s", ErrInvalidBudget, raw)
	}
	return v, nil
}

// Apply feeds in through the setters in form order (destination, dates,
// budget, activities), then generates the trip name and suggestions. It stops
// at the first rejected field and returns an error wrapping the matching
// sentinel. Fields applied before the failure stay applied.
func Apply(e *Engine, in Input) error {
	if !e.SetDestination(in.Destination) {
		return fmt.Errorf("destination %q: %w", in.Destination, ErrInvalidDestination)
	}
	if _, _, err := CheckDates(in.StartDate, in.EndDate); err != nil {
		return fmt.Errorf("dates %q to %q: %w", in.StartDate, in.EndDate, err)
	}
	e.SetDates(in.StartDate, in.EndDate)

	budget, err := ParseBudget(in.Budget)
	if err != nil {
		return err
	}
	e.SetBudget(budget)

	for i, a := range in.Activities {
		if !e.AddActivity(a) {
			return fmt.Errorf("activity %d: %w", i+1, ErrEmptyActivity)
		}
	}

	e.GenerateTripName()
	e.GenerateSuggestions()
	return nil
}

// Plan runs Apply on a fresh Engine and returns its summary.
func Plan(in Input, opts ...Option) (models.Summary, error) {
	e := New(opts...)
	if err := Apply(e, in); err != nil {
		return models.Summary{}, err
	}
	return e.Summary(), nil
}
