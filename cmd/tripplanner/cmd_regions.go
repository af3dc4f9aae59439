package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/tripplanner/internal/knowledge"
	"github.com/ajitpratap0/tripplanner/internal/planner"
)

func regionsCmd() *cobra.Command {
	var withFacts bool

	cmd := &cobra.Command{
		Use:   "regions",
		Short: "List supported destinations and their places to visit",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			e := planner.New(engineOptions(newLogger())...)
			for _, r := range knowledge.Regions() {
				fmt.Fprintf(out, "%s\n", r.Name)
				for i, p := range r.Places {
					fmt.Fprintf(out, "  %d. %s\n", i+1, p)
				}
				if withFacts {
					e.SetDestination(r.Name)
					fmt.Fprintf(out, "  Fun fact: %s\n", e.RandomFact())
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&withFacts, "facts", false, "show a random fun fact for each region")
	return cmd
}

func quoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quote",
		Short: "Print a random travel quote",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), planner.New().RandomQuote())
			return nil
		},
	}
}
