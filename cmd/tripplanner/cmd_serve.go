package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/tripplanner/internal/api"
	"github.com/ajitpratap0/tripplanner/internal/lifecycle"
	"github.com/ajitpratap0/tripplanner/internal/session"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP/JSON API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			ctx := cmd.Context()

			st := session.NewStore(cfg.Sessions.MaxSessions, logger, engineOptions(logger)...)
			srv := api.NewServer(st, logger, cfg.API.AuthToken, cfg.Render.CurrencyCode, engineOptions(logger)...)

			if cfg.API.AuthToken == "" {
				logger.Warn("HTTP API: auth is DISABLED; set TRIPPLANNER_API_AUTH_TOKEN or api.auth_token for production use")
			}

			if cfg.Sessions.IdleTTLMinutes > 0 {
				ttl := time.Duration(cfg.Sessions.IdleTTLMinutes) * time.Minute
				interval := time.Duration(cfg.Sessions.SweepIntervalSeconds) * time.Second
				go lifecycle.NewManager(st, ttl, logger).Loop(ctx, interval)
			}

			httpSrv := &http.Server{
				Addr:              cfg.API.ListenAddr,
				Handler:           srv.Handler(),
				ReadHeaderTimeout: 10 * time.Second,
				ReadTimeout:       30 * time.Second,
				WriteTimeout:      60 * time.Second,
				IdleTimeout:       120 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("HTTP API server starting", "addr", cfg.API.ListenAddr)
				if listenErr := httpSrv.ListenAndServe(); listenErr != nil && listenErr != http.ErrServerClosed {
					errCh <- fmt.Errorf("serve: HTTP server: %w", listenErr)
				}
				close(errCh)
			}()

			select {
			case <-ctx.Done():
				logger.Info("shutting down", "sessions", st.Len())
			case startErr := <-errCh:
				return startErr
			}

			const shutdownTimeout = 10 * time.Second
			if shutdownErr := api.Shutdown(httpSrv, shutdownTimeout); shutdownErr != nil {
				return fmt.Errorf("serve: graceful shutdown: %w", shutdownErr)
			}

			if startErr := <-errCh; startErr != nil {
				return startErr
			}
			return nil
		},
	}
	return cmd
}
