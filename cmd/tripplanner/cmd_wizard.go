package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/tripplanner/internal/knowledge"
	"github.com/ajitpratap0/tripplanner/internal/metrics"
	"github.com/ajitpratap0/tripplanner/internal/planner"
	"github.com/ajitpratap0/tripplanner/internal/render"
)

var errInputClosed = errors.New("input ended before the trip was complete")

func wizardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "wizard",
		Short: "Plan a trip interactively",
		Long: `Prompts for destination, dates, budget and activities, re-asking for any
field that does not validate, then prints the trip summary.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e := planner.New(engineOptions(newLogger())...)
			if err := runWizard(cmd.InOrStdin(), cmd.OutOrStdout(), e); err != nil {
				return fmt.Errorf("wizard: %w", err)
			}
			metrics.Inc(metrics.PlansTotal)
			return render.Text(cmd.OutOrStdout(), e.Summary(), cfg.Render.CurrencySymbol)
		},
	}
}

// runWizard fills e from r one field at a time and finalizes it. Prompts
// and validation messages go to w.
func runWizard(r io.Reader, w io.Writer, e *planner.Engine) error {
	sc := bufio.NewScanner(r)
	ask := func(prompt string) (string, error) {
		fmt.Fprint(w, prompt)
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return "", err
			}
			return "", errInputClosed
		}
		return sc.Text(), nil
	}
	fail := func(err error) {
		metrics.Inc(metrics.ValidationFailures)
		fmt.Fprintf(w, "Error: %s\n", userMessage(err))
	}

	fmt.Fprintf(w, "✈ TRIP PLANNER ✈\nDestinations: %s\n", strings.Join(knowledge.Names(), ", "))

	for {
		dest, err := ask("Destination: ")
		if err != nil {
			return err
		}
		if e.SetDestination(dest) {
			break
		}
		fail(planner.ErrInvalidDestination)
	}

	for {
		start, err := ask("Start date (YYYY-MM-DD): ")
		if err != nil {
			return err
		}
		end, err := ask("End date (YYYY-MM-DD): ")
		if err != nil {
			return err
		}
		if _, _, checkErr := planner.CheckDates(start, end); checkErr != nil {
			fail(checkErr)
			continue
		}
		e.SetDates(start, end)
		break
	}

	for {
		raw, err := ask("Budget: ")
		if err != nil {
			return err
		}
		v, parseErr := planner.ParseBudget(raw)
		if parseErr != nil || !e.SetBudget(v) {
			fail(planner.ErrInvalidBudget)
			continue
		}
		break
	}

	fmt.Fprintln(w, "Activities, one per line. Finish with an empty line.")
	for {
		line, err := ask("Activity: ")
		if errors.Is(err, errInputClosed) {
			break
		}
		if err != nil {
			return err
		}
		activity := strings.TrimSpace(line)
		if activity == "" {
			break
		}
		e.AddActivity(activity)
	}

	e.GenerateTripName()
	e.GenerateSuggestions()
	fmt.Fprintln(w)
	return nil
}
