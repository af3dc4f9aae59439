// Package planner validates trip inputs and derives the trip summary.
//
// An Engine holds the state of one planning session. It is not safe for
// concurrent use; callers that share an Engine must synchronise access.
package planner

import (
	"io"
	"log/slog"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ajitpratap0/tripplanner/internal/knowledge"
	"github.com/ajitpratap0/tripplanner/internal/models"
)

// DateLayout is the accepted input and output format for trip dates.
const DateLayout = "2006-01-02"

const secondsPerDay = 24 * 60 * 60

// Picker chooses an index in [0, n). It drives the trip name theme, the
// random fact and the random quote.
type Picker interface {
	IntN(n int) int
}

type globalPicker struct{}

func (globalPicker) IntN(n int) int { return rand.IntN(n) }

// Option configures an Engine.
type Option func(*Engine)

// WithPicker replaces the default random source.
func WithPicker(p Picker) Option {
	return func(e *Engine) {
		if p != nil {
			e.picker = p
		}
	}
}

// WithLogger sets the logger used for rejected input at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// Engine is the trip state for one planning session.
type Engine struct {
	destination string
	start       time.Time
	end         time.Time
	hasDates    bool
	budget      float64
	budgetSet   bool
	activities  []string

	tripName    string
	tier        models.Tier
	suggestions models.Suggestions
	places      []string

	named     bool
	suggested bool

	picker Picker
	logger *slog.Logger
}

// New creates an empty Engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		activities:  []string{},
		suggestions: models.Suggestions{},
		places:      []string{},
		picker:      globalPicker{},
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SetDestination stores raw as the destination if it names a supported
// region, ignoring case. The original spelling is kept.
func (e *Engine) SetDestination(raw string) bool {
	if !knowledge.IsSupported(raw) {
		e.logger.Debug("planner: rejected destination", "destination", raw)
		return false
	}
	e.destination = raw
	e.touch()
	return true
}

// SetDates parses both dates and stores them together if start <= end.
// On any failure neither date changes.
func (e *Engine) SetDates(startRaw, endRaw string) bool {
	start, end, err := CheckDates(startRaw, endRaw)
	if err != nil {
		e.logger.Debug("planner: rejected dates", "start", startRaw, "end", endRaw, "error", err)
		return false
	}
	e.start, e.end, e.hasDates = start, end, true
	e.touch()
	return true
}

// SetBudget stores a finite, non-negative budget, overwriting any previous
// value.
func (e *Engine) SetBudget(v float64) bool {
	if !validBudget(v) {
		e.logger.Debug("planner: rejected budget", "budget", v)
		return false
	}
	e.budget, e.budgetSet = v, true
	e.touch()
	return true
}

// AddActivity appends text unless it is blank. Duplicates are kept.
func (e *Engine) AddActivity(text string) bool {
	if strings.TrimSpace(text) == "" {
		e.logger.Debug("planner: rejected blank activity")
		return false
	}
	e.activities = append(e.activities, text)
	e.touch()
	return true
}

// GenerateTripName picks a random theme and names the trip after the
// destination. An unset destination gives a name ending in "to ".
func (e *Engine) GenerateTripName() string {
	themes := knowledge.Themes()
	theme := themes[e.picker.IntN(len(themes))]
	e.tripName = theme + " to " + titleCase(e.destination)
	e.named = true
	return e.tripName
}

// GenerateSuggestions derives the budget advice and the places for the
// current destination, storing both. It is deterministic.
func (e *Engine) GenerateSuggestions() models.Suggestions {
	e.tier = TierFor(e.budget)
	e.suggestions = SuggestionsFor(e.budget)
	e.places = PlacesFor(e.destination)
	e.suggested = true
	return e.suggestions.Clone()
}

// LookupPlaces refreshes the places for the current destination.
func (e *Engine) LookupPlaces() []string {
	e.places = PlacesFor(e.destination)
	return cloneStrings(e.places)
}

// RandomFact draws a fact about the destination, or the fallback sentence.
func (e *Engine) RandomFact() string {
	facts := knowledge.Facts(e.destination)
	if len(facts) == 0 {
		return knowledge.FallbackFact
	}
	return facts[e.picker.IntN(len(facts))]
}

// RandomQuote draws one of the inspirational quotes.
func (e *Engine) RandomQuote() string {
	quotes := knowledge.Quotes()
	return quotes[e.picker.IntN(len(quotes))]
}

// Summary projects the trip into a Summary. Slices and maps are copies, and
// a new fact and quote are drawn on every call.
func (e *Engine) Summary() models.Summary {
	s := models.Summary{
		TripName:    e.tripName,
		Destination: e.destination,
		Budget:      e.budget,
		Tier:        e.tier,
		Activities:  cloneStrings(e.activities),
		Suggestions: e.suggestions.Clone(),
		Places:      cloneStrings(e.places),
		Fact:        e.RandomFact(),
		Quote:       e.RandomQuote(),
	}
	if e.hasDates {
		start := e.start.Format(DateLayout)
		end := e.end.Format(DateLayout)
		s.StartDate = &start
		s.EndDate = &end
		s.Duration = e.DurationDays()
	}
	return s
}

// DurationDays is end minus start in whole days, or 0 before dates are set.
// Parsed dates are UTC midnights, so the Unix difference is an exact
// multiple of a day; time.Duration would saturate past ~292 years.
func (e *Engine) DurationDays() int {
	if !e.hasDates {
		return 0
	}
	return int((e.end.Unix() - e.start.Unix()) / secondsPerDay)
}

// State reports how far configuration has progressed.
func (e *Engine) State() models.State {
	switch {
	case e.named && e.suggested:
		return models.StateFinalized
	case e.destination == "" && !e.hasDates && !e.budgetSet && len(e.activities) == 0:
		return models.StateEmpty
	default:
		return models.StatePartial
	}
}

// Destination returns the destination as entered.
func (e *Engine) Destination() string { return e.destination }

// Dates returns the trip dates and whether they have been set.
func (e *Engine) Dates() (start, end time.Time, ok bool) {
	return e.start, e.end, e.hasDates
}

// Budget returns the budget; it is 0 until set.
func (e *Engine) Budget() float64 { return e.budget }

// Activities returns a copy of the activities in insertion order.
func (e *Engine) Activities() []string { return cloneStrings(e.activities) }

// TripName returns the last generated trip name.
func (e *Engine) TripName() string { return e.tripName }

// touch drops the engine back to the partial state after a setter succeeds.
func (e *Engine) touch() {
	e.named = false
	e.suggested = false
}

// CheckDates parses both dates and verifies their order.
func CheckDates(startRaw, endRaw string) (start, end time.Time, err error) {
	start, err = time.Parse(DateLayout, startRaw)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDateFormat
	}
	end, err = time.Parse(DateLayout, endRaw)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDateFormat
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, ErrInvalidDateOrder
	}
	return start, end, nil
}

func validBudget(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

func titleCase(s string) string {
	return cases.Title(language.Und).String(s)
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
