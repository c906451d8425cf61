// Package scheduler wires up the cron job that periodically refreshes all
// job categories from the external provider.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"github.com/samsondavid381/NeedAJobdotCom/internal/aggregator"
)

// Refresher is the aggregation capability the scheduler triggers.
type Refresher interface {
	RefreshAll(ctx context.Context) (int, error)
}

// Scheduler wraps robfig/cron and manages the periodic refresh loop.
type Scheduler struct {
	cron      *cron.Cron
	refresher Refresher
	spec      string // cron spec, e.g. "@every 6h"
}

// New creates a Scheduler that fires every intervalHours hours.
func New(refresher Refresher, intervalHours int) *Scheduler {
	return &Scheduler{
		cron:      cron.New(cron.WithLogger(cron.DefaultLogger)),
		refresher: refresher,
		spec:      fmt.Sprintf("@every %dh", intervalHours),
	}
}

// Start registers the job and starts the scheduler. Also runs one refresh
// immediately so the board is populated without waiting for the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.runRefresh(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	log.Printf("[scheduler] Cron started — spec: %s", s.spec)

	// Run immediately on startup (non-blocking)
	go s.runRefresh(ctx)

	return nil
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("[scheduler] Cron stopped")
}

// runRefresh executes one full refresh across all categories.
func (s *Scheduler) runRefresh(ctx context.Context) {
	log.Println("[scheduler] Refresh cycle started")

	added, err := s.refresher.RefreshAll(ctx)
	if err != nil {
		if errors.Is(err, aggregator.ErrRefreshInProgress) {
			log.Println("[scheduler] Refresh already running — skipping this cycle")
			return
		}
		log.Printf("[scheduler] Refresh error: %v", err)
		return
	}

	log.Printf("[scheduler] Refresh cycle complete — %d jobs added", added)
}
