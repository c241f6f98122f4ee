// Package normalizer reconciles the raw scoreboard feed (and, when supplied,
// the secondary odds feed) into canonical game records with a correctly
// attributed point spread.
package normalizer

import (
	"database/sql"
	"fmt"
	"time"

	"ncaam_pickem/engine/internal/metrics"
	"ncaam_pickem/engine/internal/models"

	"github.com/rs/zerolog/log"
)

// NormalizeDay converts one day's scoreboard events into canonical games.
// oddsEvents may be nil when the secondary odds feed was unavailable.
// Malformed events are logged and skipped; a bad record never aborts the
// batch.
func NormalizeDay(events []models.ScoreboardEvent, oddsEvents []models.OddsEvent) []*models.Game {
	games := make([]*models.Game, 0, len(events))
	for i := range events {
		game, err := normalizeEvent(&events[i], oddsEvents)
		if err != nil {
			log.Warn().
				Err(err).
				Str("external_id", events[i].ID).
				Msg("Skipping malformed scoreboard event")
			metrics.RecordEventSkipped()
			continue
		}
		games = append(games, game)
	}
	return games
}

// normalizeEvent builds a canonical Game from one scoreboard event.
// team_a is the away side and team_b the home side.
func normalizeEvent(ev *models.ScoreboardEvent, oddsEvents []models.OddsEvent) (*models.Game, error) {
	away, home := splitCompetitors(ev)
	if away == nil || home == nil {
		return nil, fmt.Errorf("event lacks two identifiable competitors")
	}
	if away.Name == "" || home.Name == "" || away.Abbreviation == "" || home.Abbreviation == "" {
		return nil, fmt.Errorf("competitor missing name or abbreviation")
	}

	status, ok := mapStatus(ev.Status)
	if !ok {
		return nil, fmt.Errorf("unknown status %q", ev.Status)
	}

	start, err := time.Parse(time.RFC3339, ev.StartTime)
	if err != nil {
		return nil, fmt.Errorf("unparseable start time %q: %w", ev.StartTime, err)
	}

	game := &models.Game{
		ExternalID:  ev.ID,
		TeamAName:   away.Name,
		TeamAAbbrev: away.Abbreviation,
		TeamBName:   home.Name,
		TeamBAbbrev: home.Abbreviation,
		StartTime:   start,
		// The parsed time keeps the feed's UTC offset, so formatting yields
		// the source-timezone civil date.
		GameDate: models.CivilDate(start),
		Status:   status,
	}

	if away.ConferenceID != "" {
		game.TeamAConference = sql.NullString{String: away.ConferenceID, Valid: true}
	}
	if home.ConferenceID != "" {
		game.TeamBConference = sql.NullString{String: home.ConferenceID, Valid: true}
	}
	if away.Score != nil {
		game.ResultA = sql.NullInt32{Int32: int32(*away.Score), Valid: true}
	}
	if home.Score != nil {
		game.ResultB = sql.NullInt32{Int32: int32(*home.Score), Valid: true}
	}
	if r := apRank(away.Rank); r != nil {
		game.TeamARank = sql.NullInt32{Int32: int32(*r), Valid: true}
	}
	if r := apRank(home.Rank); r != nil {
		game.TeamBRank = sql.NullInt32{Int32: int32(*r), Valid: true}
	}
	if away.Record != "" {
		game.TeamARecord = sql.NullString{String: away.Record, Valid: true}
	}
	if home.Record != "" {
		game.TeamBRecord = sql.NullString{String: home.Record, Valid: true}
	}

	if spread, ok := ResolveSpread(ev, away, home, oddsEvents); ok {
		game.Spread = sql.NullString{String: spread.String(), Valid: true}
	} else {
		metrics.RecordSpreadUnresolved()
		log.Debug().
			Str("external_id", ev.ID).
			Str("away", away.Abbreviation).
			Str("home", home.Abbreviation).
			Msg("No attributable spread for game")
	}

	return game, nil
}

// splitCompetitors pulls the away and home sides out of an event. Returns
// nils when either side is missing.
func splitCompetitors(ev *models.ScoreboardEvent) (away, home *models.Competitor) {
	for i := range ev.Competitors {
		switch ev.Competitors[i].HomeAway {
		case "away":
			away = &ev.Competitors[i]
		case "home":
			home = &ev.Competitors[i]
		}
	}
	return away, home
}

// mapStatus translates the feed's lifecycle states.
func mapStatus(feedStatus string) (string, bool) {
	switch feedStatus {
	case "pre":
		return models.StatusScheduled, true
	case "in":
		return models.StatusInProgress, true
	case "post":
		return models.StatusFinal, true
	default:
		return "", false
	}
}

// apRank keeps a rank only when it is a real AP top-25 position. Feeds report
// unranked teams with sentinel values above 25.
func apRank(rank *int) *int {
	if rank == nil || *rank < 1 || *rank > 25 {
		return nil
	}
	return rank
}
