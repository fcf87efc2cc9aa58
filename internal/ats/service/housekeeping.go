package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/talentpipehq/talentpipe/internal/ats/store"
)

// HousekeepingService periodically purges soft-deleted records once they
// age past the retention window, so the database doesn't grow without
// bound while deletes stay reversible for a while.
type HousekeepingService struct {
	Store     store.Store
	Logger    *slog.Logger
	Interval  time.Duration
	Retention time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a housekeeping service. Interval defaults
// to 1 hour, retention to 30 days.
func NewHousekeepingService(store store.Store, logger *slog.Logger, interval, retention time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}
	if retention <= 0 {
		retention = 30 * 24 * time.Hour
	}

	return &HousekeepingService{
		Store:     store,
		Logger:    logger,
		Interval:  interval,
		Retention: retention,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

// Start begins the background worker. Non-blocking; call Stop to shut down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval, "retention", s.Retention)
}

// Stop shuts down the worker and blocks until any in-progress sweep finishes.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Sweep immediately on startup
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

// sweep purges each record type independently; a failure in one doesn't
// stop the others.
func (s *HousekeepingService) sweep() {
	ctx := context.Background()
	cutoff := time.Now().Add(-s.Retention)

	var total int64

	purges := []struct {
		name string
		fn   func(context.Context, time.Time) (int64, error)
	}{
		{"notes", s.Store.Notes().PurgeDeletedNotes},
		{"applications", s.Store.Applications().PurgeDeletedApplications},
		{"jobs", s.Store.Jobs().PurgeDeletedJobs},
		{"candidates", s.Store.Candidates().PurgeDeletedCandidates},
		{"clients", s.Store.Clients().PurgeDeletedClients},
	}

	for _, p := range purges {
		n, err := p.fn(ctx, cutoff)
		if err != nil {
			s.Logger.Error("housekeeping purge failed", "table", p.name, "error", err)
			continue
		}
		if n > 0 {
			s.Logger.Debug("purged soft-deleted rows", "table", p.name, "rows", n)
		}
		total += n
	}

	s.Logger.Info("housekeeping sweep completed", "purged_rows", total)
}
