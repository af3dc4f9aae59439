package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/tripplanner/internal/metrics"
	"github.com/ajitpratap0/tripplanner/internal/models"
	"github.com/ajitpratap0/tripplanner/internal/planner"
	"github.com/ajitpratap0/tripplanner/internal/render"
)

func planCmd() *cobra.Command {
	var (
		in      planner.Input
		format  string
		output  string
		narrate bool
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Plan a trip and print its summary",
		Example: `  tripplanner plan --destination Kerala --start 2024-06-01 --end 2024-06-05 \
      --budget 15000 --activity "Backwater cruise"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			ctx := cmd.Context()

			switch format {
			case "text", "json", "pdf":
			default:
				return fmt.Errorf("plan: invalid --format %q: must be text, json or pdf", format)
			}

			summary, err := planner.Plan(in, engineOptions(logger)...)
			if err != nil {
				metrics.Inc(metrics.ValidationFailures)
				return fmt.Errorf("plan: %s", userMessage(err))
			}
			metrics.Inc(metrics.PlansTotal)

			if format == "pdf" {
				return writePDF(cmd.OutOrStdout(), summary, output)
			}

			write := func(w io.Writer) error {
				if format == "json" {
					return render.JSON(w, summary)
				}
				if err := render.Text(w, summary, cfg.Render.CurrencySymbol); err != nil {
					return err
				}
				if !narrate {
					return nil
				}
				nar := newNarrator(logger)
				if nar == nil {
					logger.Warn("plan: --narrate needs a Claude API key (ANTHROPIC_API_KEY)")
					return nil
				}
				blurb, narrateErr := nar.Narrate(ctx, summary)
				if narrateErr != nil {
					return fmt.Errorf("plan: narrating: %w", narrateErr)
				}
				if blurb != "" {
					fmt.Fprintf(w, "\n📝 %s\n", blurb)
				}
				return nil
			}

			if output == "" || output == "-" {
				return write(cmd.OutOrStdout())
			}
			return writeFile(output, write)
		},
	}

	cmd.Flags().StringVar(&in.Destination, "destination", "", "destination region (Tamil Nadu|Kerala|Karnataka|Telangana)")
	cmd.Flags().StringVar(&in.StartDate, "start", "", "start date, YYYY-MM-DD")
	cmd.Flags().StringVar(&in.EndDate, "end", "", "end date, YYYY-MM-DD")
	cmd.Flags().StringVar(&in.Budget, "budget", "", "total budget")
	cmd.Flags().StringArrayVar(&in.Activities, "activity", nil, "planned activity (repeatable)")
	cmd.Flags().StringVar(&format, "format", "text", "output format (text|json|pdf)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout; pdf defaults to a generated name)")
	cmd.Flags().BoolVar(&narrate, "narrate", false, "append a Claude-written blurb (text format only)")
	_ = cmd.MarkFlagRequired("destination")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	_ = cmd.MarkFlagRequired("budget")
	return cmd
}

// writeFile creates path and hands it to write. A failed close is reported
// since it can mean buffered output never reached the disk.
func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path) //nolint:gosec // user-chosen output path
	if err != nil {
		return fmt.Errorf("plan: creating output file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("plan: closing output file: %w", closeErr)
		}
	}()
	return write(f)
}

func writePDF(stdout io.Writer, summary models.Summary, output string) error {
	data, filename, err := render.PDF(summary, cfg.Render.CurrencyCode)
	if err != nil {
		return fmt.Errorf("plan: %w", err)
	}
	if output == "-" {
		_, err = stdout.Write(data)
		return err
	}
	if output == "" {
		output = filename
	}
	if err := os.WriteFile(output, data, 0o644); err != nil { //nolint:gosec // user-chosen output path
		return fmt.Errorf("plan: writing PDF: %w", err)
	}
	fmt.Fprintf(stdout, "Wrote %s\n", output)
	return nil
}
