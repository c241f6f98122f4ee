package models

import "time"

// Profile holds a participant's identity and cumulative season counters.
// The counters are the authoritative season-level record: they are mutated by
// the accrual pass (or an admin recompute), never derived live from picks on
// every read. Points are equivalent to wins in this pool.
type Profile struct {
	UserID      string `db:"user_id"`
	DisplayName string `db:"display_name"`

	TotalWins   int `db:"total_wins"`
	TotalLosses int `db:"total_losses"`
	TotalPoints int `db:"total_points"`
	WeeklyWins  int `db:"weekly_wins"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
