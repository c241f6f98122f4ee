package models

import "time"

// WeeklyWinner records the single champion of one Monday..Sunday week.
// At most one row exists per WeekStart.
type WeeklyWinner struct {
	ID        int    `db:"id"`
	WeekStart string `db:"week_start"` // civil date, Monday
	WeekEnd   string `db:"week_end"`   // civil date, Sunday
	UserID    string `db:"user_id"`
	Wins      int    `db:"wins"`
	Losses    int    `db:"losses"`

	CreatedAt time.Time `db:"created_at"`
}
