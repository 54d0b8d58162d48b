package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/keyward/internal/license/store"
)

// HousekeepingService periodically snapshots the license fleet so operators
// see expiring licenses in the logs before customers see failures. Licenses
// are never deleted automatically; records are the audit trail.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration

	// Internal channels for lifecycle management
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a new housekeeping service with the given interval.
// If interval is 0 or negative, defaults to 1 hour.
func NewHousekeepingService(store store.Store, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}

	return &HousekeepingService{
		Store:    store,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background worker. This is non-blocking and should be
// called after the database is ready. Call Stop() to gracefully shutdown.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop gracefully shuts down the background worker.
// Blocks until the worker has finished any in-progress sweep.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

// run is the main background worker loop.
func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Run a sweep immediately on startup
	s.sweep()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stopCh:
			return
		}
	}
}

// sweep logs the current fleet counts against the authoritative date.
func (s *HousekeepingService) sweep() {
	ctx := context.Background()

	today, err := s.Store.ServerDate(ctx)
	if err != nil {
		s.Logger.Error("housekeeping: server date unavailable", "error", err)
		return
	}

	stats, err := s.Store.Licenses().CountStats(ctx, today)
	if err != nil {
		s.Logger.Error("housekeeping: failed to aggregate stats", "error", err)
		return
	}

	s.Logger.Info("license fleet snapshot",
		"total", stats.Total,
		"active", stats.Active,
		"expired", stats.Expired,
		"expiring_soon", stats.ExpiringSoon,
		"revoked", stats.Revoked,
		"activated", stats.Activated,
	)

	if stats.ExpiringSoon > 0 {
		s.Logger.Warn("licenses expiring within 30 days", "count", stats.ExpiringSoon)
	}
}
