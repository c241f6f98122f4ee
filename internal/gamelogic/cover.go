// Package gamelogic holds the pure pick'em rules: spread cover evaluation and
// standings aggregation. Nothing here touches the store or the feeds.
package gamelogic

import (
	"ncaam_pickem/engine/internal/models"
)

// CoverResult is the outcome of evaluating a pick against the spread.
type CoverResult int

const (
	// Undetermined means the game or spread data cannot support a verdict.
	// Undetermined picks are excluded from tallies entirely.
	Undetermined CoverResult = iota
	Covered
	NotCovered
)

func (r CoverResult) String() string {
	switch r {
	case Covered:
		return "covered"
	case NotCovered:
		return "not_covered"
	default:
		return "undetermined"
	}
}

// DidTeamCover decides whether teamName's wager on game's spread won.
//
// A definite verdict requires a final game, both scores, a well-formed spread
// whose leading token equals one of the stored abbreviations, and teamName
// equal to one of the stored team names. Any violation yields Undetermined,
// never a panic.
//
// A push (margin plus effective spread exactly zero) evaluates to NotCovered.
// There is no push state in this pool; that is the intended rule, not an
// oversight.
func DidTeamCover(game *models.Game, teamName string) CoverResult {
	if game == nil || !game.IsFinal() {
		return Undetermined
	}
	if !game.Spread.Valid || !game.ResultA.Valid || !game.ResultB.Valid {
		return Undetermined
	}

	spread, err := models.ParseSpread(game.Spread.String)
	if err != nil {
		return Undetermined
	}

	var spreadOnA bool
	switch spread.Abbrev {
	case game.TeamAAbbrev:
		spreadOnA = true
	case game.TeamBAbbrev:
		spreadOnA = false
	default:
		return Undetermined
	}

	var teamOnA bool
	var teamScore, oppScore int32
	switch teamName {
	case game.TeamAName:
		teamOnA = true
		teamScore, oppScore = game.ResultA.Int32, game.ResultB.Int32
	case game.TeamBName:
		teamOnA = false
		teamScore, oppScore = game.ResultB.Int32, game.ResultA.Int32
	default:
		return Undetermined
	}

	margin := float64(teamScore - oppScore)
	effective := spread.Value
	if spreadOnA != teamOnA {
		effective = -spread.Value
	}

	if margin+effective > 0 {
		return Covered
	}
	return NotCovered
}
