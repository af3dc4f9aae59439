package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/tripplanner/internal/config"
	"github.com/ajitpratap0/tripplanner/internal/narrator"
	"github.com/ajitpratap0/tripplanner/internal/planner"
)

var cfg *config.Config

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	rootCmd := newRootCmd()
	rootCmd.SetContext(ctx)

	err := rootCmd.Execute()
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tripplanner",
		Short: "Tripplanner — plan a trip to a South Indian region",
		Long:  "Tripplanner validates your destination, dates, budget and activities, then suggests how to travel, where to stay and what to see.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			return nil
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		planCmd(),
		wizardCmd(),
		regionsCmd(),
		quoteCmd(),
		serveCmd(),
		mcpCmd(),
	)
	return rootCmd
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if cfg != nil {
		switch cfg.Logging.Level {
		case "debug":
			level = slog.LevelDebug
		case "warn":
			level = slog.LevelWarn
		case "error":
			level = slog.LevelError
		}
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg != nil && cfg.Logging.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// newNarrator returns nil when no Claude API key is configured.
func newNarrator(logger *slog.Logger) narrator.Narrator {
	if !cfg.Claude.Enabled() {
		return nil
	}
	return narrator.NewClaudeNarrator(cfg.Claude.APIKey, cfg.Claude.Model, logger)
}

func engineOptions(logger *slog.Logger) []planner.Option {
	return []planner.Option{planner.WithLogger(logger)}
}
