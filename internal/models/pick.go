package models

import "time"

// Pick is one participant's team selection for a game. Unique per
// (user, game); re-picks are last-write-wins while the game is still
// scheduled.
type Pick struct {
	ID       int    `db:"id"`
	UserID   string `db:"user_id"`
	GameID   int    `db:"game_id"`
	TeamName string `db:"team_name"`

	// UserName is the submitter's display name, joined in on read.
	UserName string `db:"user_name"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
