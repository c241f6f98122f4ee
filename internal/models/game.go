package models

import (
	"database/sql"
	"time"
)

// Game lifecycle statuses
const (
	StatusScheduled  = "Scheduled"
	StatusInProgress = "InProgress"
	StatusFinal      = "Final"
)

// Game represents a college basketball game after feed normalization.
//
// TeamA is the away side and TeamB the home side as reported at first import.
// The a/b ordering is append-only for a given ExternalID: live updates must
// remap a later swapped home/away feed orientation back onto this ordering
// rather than re-deriving it from the feed's labelling.
type Game struct {
	ID         int    `db:"id"`
	ExternalID string `db:"external_id"`

	TeamAName   string `db:"team_a_name"`
	TeamAAbbrev string `db:"team_a_abbrev"`
	TeamBName   string `db:"team_b_name"`
	TeamBAbbrev string `db:"team_b_abbrev"`

	TeamAConference sql.NullString `db:"team_a_conference"`
	TeamBConference sql.NullString `db:"team_b_conference"`

	StartTime time.Time `db:"start_time"`
	// GameDate is the civil date (source timezone) used as the grouping key
	// for daily and weekly standings, independent of StartTime's instant.
	GameDate string `db:"game_date"`
	Status   string `db:"status"`

	ResultA sql.NullInt32 `db:"result_a"`
	ResultB sql.NullInt32 `db:"result_b"`

	// Spread is "<favorite_abbrev> <signed decimal>"; the decimal is always
	// <= 0 and the abbreviation always equals TeamAAbbrev or TeamBAbbrev.
	// Null when the normalizer could not attribute a spread to either side.
	Spread sql.NullString `db:"spread"`

	TeamARank   sql.NullInt32  `db:"team_a_rank"`
	TeamBRank   sql.NullInt32  `db:"team_b_rank"`
	TeamARecord sql.NullString `db:"team_a_record"`
	TeamBRecord sql.NullString `db:"team_b_record"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// IsActive returns true if the game is currently in progress
func (g *Game) IsActive() bool {
	return g.Status == StatusInProgress
}

// IsScheduled returns true if the game has not started
func (g *Game) IsScheduled() bool {
	return g.Status == StatusScheduled
}

// IsFinal returns true if the game is completed
func (g *Game) IsFinal() bool {
	return g.Status == StatusFinal
}

// HasTeam reports whether name exactly equals one of the two stored team names.
func (g *Game) HasTeam(name string) bool {
	return name == g.TeamAName || name == g.TeamBName
}

// GameUpdate is the set of observable fields a live refresh may change on a
// stored game. The frozen team columns are never part of an update.
// JustFinished marks the one transition that triggers pick accrual.
type GameUpdate struct {
	ExternalID string

	Status  string
	ResultA sql.NullInt32
	ResultB sql.NullInt32
	Spread  sql.NullString

	TeamARank   sql.NullInt32
	TeamBRank   sql.NullInt32
	TeamARecord sql.NullString
	TeamBRecord sql.NullString

	JustFinished bool
}

const civilDateLayout = "2006-01-02"

// CivilDate formats t as the civil date grouping key.
func CivilDate(t time.Time) string {
	return t.Format(civilDateLayout)
}
