// Package scheduler triggers incremental scrape runs on a daily cadence.
package scheduler

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/fortuna/gridiron/internal/scrape"
)

// Scheduler runs an incremental scrape once a day at a fixed hour. Box
// scores for a week are final well before the next morning, so a single
// early-morning run keeps the database current during the season.
type Scheduler struct {
	scraper *scrape.Service
	hour    int

	cancel context.CancelFunc
}

// New creates a scheduler that fires at the given local hour (0-23).
func New(scraper *scrape.Service, hour int) *Scheduler {
	return &Scheduler{scraper: scraper, hour: hour}
}

// Start blocks, running the daily loop until the context is cancelled or
// Stop is called.
func (s *Scheduler) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	log.Printf("[scheduler] Daily scrape scheduled at %02d:00", s.hour)

	for {
		now := time.Now()
		next := time.Date(now.Year(), now.Month(), now.Day(), s.hour, 0, 0, 0, now.Location())
		if !now.Before(next) {
			next = next.Add(24 * time.Hour)
		}

		log.Printf("[scheduler] Next run: %s (in %v)", next.Format("2006-01-02 15:04:05"), time.Until(next).Round(time.Second))

		select {
		case <-ctx.Done():
			log.Println("[scheduler] Stopped")
			return
		case <-time.After(time.Until(next)):
			s.runOnce(ctx)
		}
	}
}

// Stop cancels the daily loop.
func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	start := time.Now()
	log.Println("[scheduler] Starting daily scrape run")

	err := s.scraper.ScrapeRecent(ctx)
	switch {
	case errors.Is(err, scrape.ErrAlreadyRunning):
		log.Println("[scheduler] ⊘ Skipping: a scrape run is already in progress")
	case err != nil:
		log.Printf("[scheduler] Daily scrape run failed: %v", err)
	default:
		log.Printf("[scheduler] ✓ Daily scrape run complete in %v", time.Since(start).Round(time.Second))
	}
}
