package main

import (
	"strings"

	"github.com/ajitpratap0/tripplanner/internal/planner"
)

// userMessage turns a planner validation error into the sentence shown to
// the user.
func userMessage(err error) string {
	_, msg, ok := planner.Describe(err)
	if !ok {
		return err.Error()
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}
