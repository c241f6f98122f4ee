package ingest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"ncaam_pickem/engine/internal/cache"
	"ncaam_pickem/engine/internal/client"
	"ncaam_pickem/engine/internal/config"
	"ncaam_pickem/engine/internal/gamelogic"
	"ncaam_pickem/engine/internal/metrics"
	"ncaam_pickem/engine/internal/models"
	"ncaam_pickem/engine/internal/normalizer"
	"ncaam_pickem/engine/internal/repository"
)

// Service orchestrates feed fetches, normalization, the import policy and
// pick accrual against the database.
type Service struct {
	cfg        *config.Config
	db         *repository.Database
	cache      *cache.Cache
	scoreboard *client.ScoreboardClient
	odds       *client.OddsClient

	// Serializes sync and accrual passes. Profile counter updates are
	// read-modify-write increments, so overlapping passes over the same
	// games would double-count.
	syncMu sync.Mutex
}

// NewService creates a sync service. cacheLayer and oddsClient may be nil;
// the service degrades to uncached reads and scoreboard-only spreads.
func NewService(cfg *config.Config, db *repository.Database, cacheLayer *cache.Cache,
	scoreboard *client.ScoreboardClient, oddsClient *client.OddsClient) *Service {
	return &Service{
		cfg:        cfg,
		db:         db,
		cache:      cacheLayer,
		scoreboard: scoreboard,
		odds:       oddsClient,
	}
}

// SyncDay fetches one scoreboard day, normalizes it and reconciles it with
// the stored game pool. New games pass through the import filter; known
// games get a live diff, and any game that just finished has its picks
// graded exactly once.
func (s *Service) SyncDay(ctx context.Context, day time.Time, mode ImportMode) error {
	s.syncMu.Lock()
	defer s.syncMu.Unlock()

	return s.syncDayLocked(ctx, day, mode)
}

func (s *Service) syncDayLocked(ctx context.Context, day time.Time, mode ImportMode) error {
	runID := uuid.New().String()
	date := models.CivilDate(day)
	start := time.Now()

	logger := log.With().Str("run_id", runID).Str("date", date).Logger()
	logger.Info().Msg("Starting day sync")

	events, err := s.scoreboard.FetchDay(ctx, day)
	if err != nil {
		metrics.RecordSync("day", "error", time.Since(start).Seconds())
		metrics.RecordError("ingest", "scoreboard_fetch")
		return fmt.Errorf("failed to fetch scoreboard day %s: %w", date, err)
	}

	var oddsEvents []models.OddsEvent
	if s.odds != nil {
		oddsEvents, err = s.odds.FetchSpreads(ctx)
		if err != nil {
			// Spread resolution falls back to the scoreboard quotations.
			logger.Warn().Err(err).Msg("Odds feed unavailable, continuing without it")
			metrics.RecordError("ingest", "odds_fetch")
			oddsEvents = nil
		}
	}

	games := normalizer.NormalizeDay(events, oddsEvents)

	confSet := s.cfg.ConferenceSet()
	var imported, updated, finished int
	// A failed write skips that game and moves on; the next cycle
	// reconciles it. One bad row must not sink the batch.
	for _, fresh := range games {
		stored, err := s.db.Games.GetByExternalID(ctx, fresh.ExternalID)
		if err != nil {
			logger.Error().Err(err).Str("external_id", fresh.ExternalID).Msg("Failed to look up game")
			metrics.RecordError("ingest", "game_lookup")
			continue
		}

		if stored == nil {
			if !ShouldImport(fresh, confSet, s.cfg.SpreadCeiling, mode) {
				logger.Debug().
					Str("external_id", fresh.ExternalID).
					Str("matchup", fresh.TeamAAbbrev+" @ "+fresh.TeamBAbbrev).
					Msg("Game rejected by import filter")
				continue
			}
			if err := s.db.Games.Upsert(ctx, fresh); err != nil {
				logger.Error().Err(err).Str("external_id", fresh.ExternalID).Msg("Failed to import game")
				metrics.RecordError("ingest", "game_upsert")
				continue
			}
			metrics.GamesImported.Inc()
			imported++
			continue
		}

		update := ApplyLiveUpdate(stored, fresh)
		if update == nil {
			continue
		}
		if err := s.db.Games.UpdateLive(ctx, update); err != nil {
			logger.Error().Err(err).Str("external_id", fresh.ExternalID).Msg("Failed to update game")
			metrics.RecordError("ingest", "game_update")
			continue
		}
		metrics.GamesUpdated.Inc()
		updated++

		if update.JustFinished {
			applyUpdate(stored, update)
			if err := s.accrueGame(ctx, stored); err != nil {
				logger.Error().Err(err).Str("external_id", fresh.ExternalID).Msg("Accrual pass failed")
				continue
			}
			finished++
		}
	}

	if active, err := s.db.Games.GetActiveGames(ctx); err == nil {
		metrics.ActiveGames.Set(float64(len(active)))
	}
	if s.cache != nil {
		s.cache.MarkFeedDaySynced(ctx, date)
	}

	metrics.RecordSync("day", "success", time.Since(start).Seconds())
	logger.Info().
		Int("events", len(events)).
		Int("imported", imported).
		Int("updated", updated).
		Int("finished", finished).
		Msg("Day sync complete")

	return nil
}

// LivePoll re-syncs the feed days of every in-progress game. A tick with no
// active games is a no-op so idle nights cost nothing.
func (s *Service) LivePoll(ctx context.Context) error {
	active, err := s.db.Games.GetActiveGames(ctx)
	if err != nil {
		return fmt.Errorf("failed to get active games: %w", err)
	}
	if len(active) == 0 {
		log.Debug().Msg("No active games, skipping live poll")
		return nil
	}

	dates := make(map[string]bool)
	for _, game := range active {
		dates[game.GameDate] = true
	}

	for date := range dates {
		day, err := time.Parse("2006-01-02", date)
		if err != nil {
			log.Warn().Str("date", date).Msg("Stored game has unparseable date, skipping")
			continue
		}
		if err := s.SyncDay(ctx, day, ModeInitial); err != nil {
			return err
		}
	}
	return nil
}

// NightlyRefresh re-imports the upcoming slate in strict mode and clears out
// stale spreadless games nobody picked.
func (s *Service) NightlyRefresh(ctx context.Context) error {
	now := time.Now()
	for offset := 0; offset <= 1; offset++ {
		if err := s.SyncDay(ctx, now.AddDate(0, 0, offset), ModeRefresh); err != nil {
			return err
		}
	}

	deleted, err := s.db.Games.DeleteOrphans(ctx, models.CivilDate(now))
	if err != nil {
		return err
	}
	if deleted > 0 {
		log.Info().Int("deleted", deleted).Msg("Nightly orphan cleanup finished")
	}
	return nil
}

// Standings returns the ranked standings for a window, consulting the cache
// for day and week windows. Season standings read the stored profile
// counters; day and week standings are recomputed from finished games.
func (s *Service) Standings(ctx context.Context, window gamelogic.Window) ([]gamelogic.Entry, error) {
	if s.cache != nil {
		if entries := s.cache.GetStandings(ctx, window); entries != nil {
			return entries, nil
		}
	}

	profiles, err := s.db.Profiles.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	var games []*models.Game
	var picks []*models.Pick
	if window.Kind != gamelogic.WindowSeason {
		games, err = s.db.Games.GetByDateRange(ctx, window.Start, window.End)
		if err != nil {
			return nil, err
		}
		picks, err = s.db.Picks.GetByGameIDs(ctx, gameIDs(games))
		if err != nil {
			return nil, err
		}
	}

	entries := gamelogic.ComputeStandings(profiles, games, picks, window)

	if s.cache != nil {
		s.cache.SetStandings(ctx, window, entries)
	}
	return entries, nil
}

func gameIDs(games []*models.Game) []int {
	ids := make([]int, 0, len(games))
	for _, g := range games {
		ids = append(ids, g.ID)
	}
	return ids
}

func applyUpdate(game *models.Game, update *models.GameUpdate) {
	game.Status = update.Status
	game.ResultA = update.ResultA
	game.ResultB = update.ResultB
	game.Spread = update.Spread
	game.TeamARank = update.TeamARank
	game.TeamBRank = update.TeamBRank
	game.TeamARecord = update.TeamARecord
	game.TeamBRecord = update.TeamBRecord
}
