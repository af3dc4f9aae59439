// Package metrics provides application-level counters using stdlib expvar.
// Counters are exported on the /debug/vars endpoint of the API server.
package metrics

import "expvar"

// Operation counters.
var (
	PlansTotal         = expvar.NewInt("tripplanner_plans_total")
	ValidationFailures = expvar.NewInt("tripplanner_validation_failures_total")
	SessionsCreated    = expvar.NewInt("tripplanner_sessions_created_total")
	SessionsExpired    = expvar.NewInt("tripplanner_sessions_expired_total")
	NarrationsTotal    = expvar.NewInt("tripplanner_narrations_total")
	NarrationFailures  = expvar.NewInt("tripplanner_narration_failures_total")
)

// Inc increments the given counter by 1.
func Inc(counter *expvar.Int) { counter.Add(1) }
