package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/sevigo/code-critic/internal/config"
	"github.com/sevigo/code-critic/internal/storage"
)

// DefaultStaleAfter is how long a review may stay analyzing before it is failed.
const DefaultStaleAfter = 10 * time.Minute

// Sweeper periodically moves reviews that never finished from analyzing to failed.
type Sweeper struct {
	store      storage.Store
	staleAfter time.Duration
	interval   time.Duration
	now        func() time.Time
	logger     *slog.Logger

	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewSweeper(store storage.Store, cfg config.ReviewConfig, logger *slog.Logger) *Sweeper {
	staleAfter := cfg.StaleAfter
	if staleAfter <= 0 {
		staleAfter = DefaultStaleAfter
	}
	return &Sweeper{
		store:      store,
		staleAfter: staleAfter,
		interval:   cfg.SweepInterval,
		now:        time.Now,
		logger:     logger,
		stop:       make(chan struct{}),
	}
}

// Sweep runs one reconciliation pass and returns the number of reviews failed.
func (s *Sweeper) Sweep(ctx context.Context) (int64, error) {
	cutoff := s.now().Add(-s.staleAfter)
	n, err := s.store.MarkStaleReviews(ctx, cutoff)
	if err != nil {
		s.logger.Error("stale review sweep failed", "error", err)
		return 0, err
	}
	if n > 0 {
		s.logger.Warn("marked stale reviews as failed", "count", n, "older_than", cutoff)
	}
	return n, nil
}

// Start runs Sweep every interval until Stop is called. A non-positive interval
// disables the background sweep.
func (s *Sweeper) Start() {
	if s.interval <= 0 {
		s.logger.Info("stale review sweep disabled")
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.logger.Info("starting stale review sweep", "interval", s.interval, "stale_after", s.staleAfter)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), s.interval)
				_, _ = s.Sweep(ctx)
				cancel()
			case <-s.stop:
				s.logger.Info("stopping stale review sweep")
				return
			}
		}
	}()
}

// Stop ends the background sweep and waits for a running pass to finish.
func (s *Sweeper) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
	s.wg.Wait()
}
