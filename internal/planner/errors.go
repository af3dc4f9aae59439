package planner

import (
	"errors"
	"strings"

	"github.com/ajitpratap0/tripplanner/internal/knowledge"
)

// Validation failures. Setters report these as a false result; Apply and the
// Check/Parse helpers return them so frontends can pick a message per kind.
var (
	ErrInvalidDestination = errors.New("destination is not a supported region")
	ErrInvalidDateFormat  = errors.New("dates must use the YYYY-MM-DD format")
	ErrInvalidDateOrder   = errors.New("start date is after end date")
	ErrInvalidBudget      = errors.New("budget must be a non-negative number")
	ErrEmptyActivity      = errors.New("activity must not be blank")
)

// descriptions holds the form field and user-facing text for each failure.
var descriptions = []struct {
	err   error
	field string
	msg   string
}{
	{ErrInvalidDestination, "destination", "please select a valid destination (" + strings.Join(knowledge.Names(), ", ") + ")"},
	{ErrInvalidDateFormat, "dates", "please enter valid dates in YYYY-MM-DD format"},
	{ErrInvalidDateOrder, "dates", "start date must not be after end date"},
	{ErrInvalidBudget, "budget", "budget must be a non-negative number"},
	{ErrEmptyActivity, "activity", "activities must not be blank"},
}

// Describe reports which form field a validation error concerns and a
// lower-case message for the user. ok is false for any other error.
func Describe(err error) (field, msg string, ok bool) {
	for _, d := range descriptions {
		if errors.Is(err, d.err) {
			return d.field, d.msg, true
		}
	}
	return "", "", false
}
