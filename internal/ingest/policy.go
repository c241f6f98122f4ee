// Package ingest decides which normalized games reach storage and how stored
// games are kept in sync with the live feed.
package ingest

import (
	"math"

	"ncaam_pickem/engine/internal/models"
)

// ImportMode selects how strict the import filter is about spreads.
type ImportMode int

const (
	// ModeInitial imports games even when no spread has been posted yet;
	// the nightly refresh usually fills it in later.
	ModeInitial ImportMode = iota
	// ModeRefresh rejects games whose spread is still missing or invalid.
	ModeRefresh
)

// ShouldImport reports whether a normalized game belongs in the pool.
//
// A game is rejected when neither side's conference is on the allow-list, or
// when its spread magnitude exceeds the ceiling. A missing spread only
// rejects in ModeRefresh.
func ShouldImport(game *models.Game, allowedConferences map[string]bool, spreadCeiling float64, mode ImportMode) bool {
	inConference := (game.TeamAConference.Valid && allowedConferences[game.TeamAConference.String]) ||
		(game.TeamBConference.Valid && allowedConferences[game.TeamBConference.String])
	if !inConference {
		return false
	}

	if !game.Spread.Valid {
		return mode == ModeInitial
	}

	spread, err := models.ParseSpread(game.Spread.String)
	if err != nil {
		return mode == ModeInitial
	}
	return math.Abs(spread.Value) <= spreadCeiling
}
