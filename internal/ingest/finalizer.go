package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"ncaam_pickem/engine/internal/gamelogic"
	"ncaam_pickem/engine/internal/metrics"
	"ncaam_pickem/engine/internal/models"
)

// accrueGame grades every pick on a just-finished game and bumps the
// pickers' cumulative counters. One point per win.
//
// Callers must only invoke this on the stored-vs-fresh transition into
// Final, which is what keeps repeated polling from double-counting. The
// sync mutex serializes it against other accrual passes.
func (s *Service) accrueGame(ctx context.Context, game *models.Game) error {
	picks, err := s.db.Picks.GetByGameID(ctx, game.ID)
	if err != nil {
		metrics.RecordAccrualPass("error")
		return fmt.Errorf("failed to load picks for game %s: %w", game.ExternalID, err)
	}

	var wins, losses, skipped int
	for _, pick := range picks {
		switch gamelogic.DidTeamCover(game, pick.TeamName) {
		case gamelogic.Covered:
			if err := s.db.Profiles.ApplyAccrual(ctx, pick.UserID, 1, 0, 1); err != nil {
				metrics.RecordAccrualPass("error")
				return err
			}
			wins++
		case gamelogic.NotCovered:
			if err := s.db.Profiles.ApplyAccrual(ctx, pick.UserID, 0, 1, 0); err != nil {
				metrics.RecordAccrualPass("error")
				return err
			}
			losses++
		default:
			// No spread or no usable scores; the pick grades as nothing.
			skipped++
		}
	}

	if s.cache != nil {
		s.cache.InvalidateStandings(ctx)
	}

	metrics.RecordAccrualPass("success")
	log.Info().
		Str("external_id", game.ExternalID).
		Int("wins", wins).
		Int("losses", losses).
		Int("skipped", skipped).
		Msg("Graded picks for finished game")

	return nil
}

// FinalizeWeek records the champion of the week containing asOf and bumps
// their weekly win counter. Re-running for an already-finalized week is a
// no-op, so the cron firing twice cannot double-credit anyone.
func (s *Service) FinalizeWeek(ctx context.Context, asOf time.Time) error {
	s.syncMu.Lock()
	defer s.syncMu.Unlock()

	window := gamelogic.WeekWindowContaining(asOf)

	existing, err := s.db.WeeklyWinners.GetByWeekStart(ctx, window.Start)
	if err != nil {
		return err
	}
	if existing != nil {
		log.Info().Str("week_start", window.Start).Msg("Week already finalized, skipping")
		return nil
	}

	profiles, err := s.db.Profiles.GetAll(ctx)
	if err != nil {
		return err
	}
	games, err := s.db.Games.GetByDateRange(ctx, window.Start, window.End)
	if err != nil {
		return err
	}
	picks, err := s.db.Picks.GetByGameIDs(ctx, gameIDs(games))
	if err != nil {
		return err
	}

	entries := gamelogic.ComputeStandings(profiles, games, picks, window)
	champion := gamelogic.WeeklyChampion(entries)
	if champion == nil {
		log.Info().Str("week_start", window.Start).Msg("No winner this week, nothing to record")
		return nil
	}

	winner := &models.WeeklyWinner{
		WeekStart: window.Start,
		WeekEnd:   window.End,
		UserID:    champion.UserID,
		Wins:      champion.Wins,
		Losses:    champion.Losses,
	}
	if err := s.db.WeeklyWinners.UpsertForWeek(ctx, winner); err != nil {
		return err
	}
	if err := s.db.Profiles.IncrementWeeklyWins(ctx, champion.UserID); err != nil {
		return err
	}

	if s.cache != nil {
		s.cache.InvalidateStandings(ctx)
	}

	return nil
}

// RecomputeTotals rebuilds every profile's cumulative counters from the
// stored finished games. This is the admin escape hatch for counter drift;
// it overwrites totals rather than incrementing them.
func (s *Service) RecomputeTotals(ctx context.Context) error {
	s.syncMu.Lock()
	defer s.syncMu.Unlock()

	profiles, err := s.db.Profiles.GetAll(ctx)
	if err != nil {
		return err
	}
	games, err := s.db.Games.GetFinalGames(ctx)
	if err != nil {
		return err
	}
	picks, err := s.db.Picks.GetByGameIDs(ctx, gameIDs(games))
	if err != nil {
		return err
	}

	byID := make(map[int]*models.Game, len(games))
	for _, g := range games {
		byID[g.ID] = g
	}

	type tally struct{ wins, losses int }
	totals := make(map[string]*tally, len(profiles))
	for _, p := range profiles {
		totals[p.UserID] = &tally{}
	}

	for _, pick := range picks {
		game := byID[pick.GameID]
		if game == nil {
			continue
		}
		t := totals[pick.UserID]
		if t == nil {
			continue
		}
		switch gamelogic.DidTeamCover(game, pick.TeamName) {
		case gamelogic.Covered:
			t.wins++
		case gamelogic.NotCovered:
			t.losses++
		}
	}

	for _, p := range profiles {
		t := totals[p.UserID]
		if err := s.db.Profiles.SetTotals(ctx, p.UserID, t.wins, t.losses, t.wins); err != nil {
			return err
		}
	}

	if s.cache != nil {
		s.cache.InvalidateStandings(ctx)
	}

	log.Info().
		Int("profiles", len(profiles)).
		Int("games", len(games)).
		Int("picks", len(picks)).
		Msg("Recomputed profile totals")

	return nil
}
