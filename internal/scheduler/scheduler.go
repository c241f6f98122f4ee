// Package scheduler runs the background sync jobs: a live-poll ticker for
// in-progress games, a nightly strict refresh and the Monday week finalize.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"ncaam_pickem/engine/internal/config"
	"ncaam_pickem/engine/internal/ingest"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Scheduler manages background sync tasks
type Scheduler struct {
	cfg      *config.Config
	svc      *ingest.Service
	cron     *cron.Cron
	ticker   *time.Ticker
	stopChan chan struct{}

	// Guards against a live-poll tick overlapping a previous one that is
	// still in flight.
	pollMu sync.Mutex
}

// NewScheduler creates a new scheduler instance
func NewScheduler(cfg *config.Config, svc *ingest.Service) *Scheduler {
	return &Scheduler{
		cfg:      cfg,
		svc:      svc,
		cron:     cron.New(),
		stopChan: make(chan struct{}),
	}
}

// Start starts the scheduler
func (s *Scheduler) Start(ctx context.Context) error {
	log.Info().Msg("Scheduler starting...")

	if _, err := s.cron.AddFunc(s.cfg.NightlyRefreshCron, func() {
		log.Info().Msg("Running nightly refresh...")
		if err := s.svc.NightlyRefresh(ctx); err != nil {
			log.Error().Err(err).Msg("Nightly refresh failed")
		}
	}); err != nil {
		return fmt.Errorf("failed to schedule nightly refresh: %w", err)
	}

	if _, err := s.cron.AddFunc(s.cfg.WeeklyFinalizeCron, func() {
		log.Info().Msg("Running weekly finalize...")
		// The cron fires Monday morning; the week being closed out is the
		// one that ended yesterday.
		if err := s.svc.FinalizeWeek(ctx, time.Now().AddDate(0, 0, -1)); err != nil {
			log.Error().Err(err).Msg("Weekly finalize failed")
		}
	}); err != nil {
		return fmt.Errorf("failed to schedule weekly finalize: %w", err)
	}

	s.cron.Start()
	log.Info().
		Str("nightly", s.cfg.NightlyRefreshCron).
		Str("weekly", s.cfg.WeeklyFinalizeCron).
		Msg("Cron jobs scheduled")

	interval := time.Duration(s.cfg.LivePollInterval) * time.Second
	s.ticker = time.NewTicker(interval)
	log.Info().
		Dur("interval", interval).
		Msg("Live game polling started")

	go s.pollLiveGames(ctx)

	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	log.Info().Msg("Stopping scheduler...")

	if s.cron != nil {
		s.cron.Stop()
	}

	if s.ticker != nil {
		s.ticker.Stop()
	}

	close(s.stopChan)
	log.Info().Msg("Scheduler stopped")
}

// pollLiveGames runs the live-poll loop until stopped
func (s *Scheduler) pollLiveGames(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Context cancelled, stopping live game polling")
			return
		case <-s.stopChan:
			log.Info().Msg("Stop signal received, stopping live game polling")
			return
		case <-s.ticker.C:
			if !s.pollMu.TryLock() {
				log.Warn().Msg("Previous live poll still running, skipping tick")
				continue
			}
			start := time.Now()
			if err := s.svc.LivePoll(ctx); err != nil {
				log.Error().Err(err).Msg("Live poll failed")
			} else {
				log.Debug().Dur("duration", time.Since(start)).Msg("Live poll complete")
			}
			s.pollMu.Unlock()
		}
	}
}
