// Package lifecycle expires planning sessions that have gone idle.
package lifecycle

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/ajitpratap0/tripplanner/internal/metrics"
	"github.com/ajitpratap0/tripplanner/internal/session"
)

// Report summarizes the results of a lifecycle run.
type Report struct {
	Expired int `json:"expired"`
	Live    int `json:"live"`
}

// Manager handles session lifecycle operations.
type Manager struct {
	store  *session.Store
	ttl    time.Duration
	logger *slog.Logger
}

// NewManager creates a lifecycle manager that expires sessions idle for
// longer than ttl. A ttl of zero disables expiry.
func NewManager(st *session.Store, ttl time.Duration, logger *slog.Logger) *Manager {
	return &Manager{
		store:  st,
		ttl:    ttl,
		logger: logger,
	}
}

// Run expires idle sessions once. With dryRun set, nothing is deleted but
// the report still counts what would have been.
func (m *Manager) Run(ctx context.Context, dryRun bool) (*Report, error) {
	report := &Report{}
	if m.ttl <= 0 {
		report.Live = m.store.Len()
		return report, nil
	}

	for _, id := range m.store.Idle(m.ttl) {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if dryRun {
			m.logger.Info("would expire idle session", "id", id, "ttl", m.ttl)
			report.Expired++
			continue
		}
		removed, err := m.store.DeleteIfIdle(id, m.ttl)
		if err != nil {
			// Deleted concurrently by its owner.
			if errors.Is(err, session.ErrNotFound) {
				continue
			}
			m.logger.Error("deleting idle session", "id", id, "error", err)
			continue
		}
		if !removed {
			m.logger.Debug("session used again before expiry", "id", id)
			continue
		}
		m.logger.Info("expired idle session", "id", id, "ttl", m.ttl)
		metrics.Inc(metrics.SessionsExpired)
		report.Expired++
	}

	report.Live = m.store.Len()
	return report, nil
}

// Loop calls Run every interval until ctx is done.
func (m *Manager) Loop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			report, err := m.Run(ctx, false)
			if err != nil {
				m.logger.Warn("lifecycle run interrupted", "error", err)
				continue
			}
			if report.Expired > 0 {
				m.logger.Info("lifecycle run", "expired", report.Expired, "live", report.Live)
			}
		}
	}
}
