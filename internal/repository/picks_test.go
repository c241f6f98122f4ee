//go:build integration

package repository

import (
	"testing"

	"ncaam_pickem/engine/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPickRepository_Upsert(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	profile := &models.Profile{UserID: "user-1", DisplayName: "Alice"}
	require.NoError(t, db.Profiles.Upsert(ctx, profile))

	game := testGame("espn-20001", "2026-02-10")
	require.NoError(t, db.Games.Upsert(ctx, game))

	pick := &models.Pick{UserID: "user-1", GameID: game.ID, TeamName: "Kansas"}
	require.NoError(t, db.Picks.Upsert(ctx, pick), "Pick on a scheduled game should land")

	// Last write wins
	pick.TeamName = "Baylor"
	require.NoError(t, db.Picks.Upsert(ctx, pick))

	picks, err := db.Picks.GetByGameID(ctx, game.ID)
	require.NoError(t, err)
	require.Len(t, picks, 1, "Re-picking should replace, not duplicate")
	assert.Equal(t, "Baylor", picks[0].TeamName)
	assert.Equal(t, "Alice", picks[0].UserName, "Display name should come from the profile join")
}

func TestPickRepository_UpsertRejected(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	profile := &models.Profile{UserID: "user-2", DisplayName: "Bob"}
	require.NoError(t, db.Profiles.Upsert(ctx, profile))

	game := testGame("espn-20002", "2026-02-10")
	game.Status = models.StatusInProgress
	require.NoError(t, db.Games.Upsert(ctx, game))

	pick := &models.Pick{UserID: "user-2", GameID: game.ID, TeamName: "Kansas"}
	err := db.Picks.Upsert(ctx, pick)
	assert.ErrorIs(t, err, ErrPickRejected, "Picks should lock once the game has started")

	scheduled := testGame("espn-20003", "2026-02-10")
	require.NoError(t, db.Games.Upsert(ctx, scheduled))

	pick = &models.Pick{UserID: "user-2", GameID: scheduled.ID, TeamName: "Duke"}
	err = db.Picks.Upsert(ctx, pick)
	assert.ErrorIs(t, err, ErrPickRejected, "Pick for a team not in the game should be rejected")
}

func TestProfileRepository_Accrual(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	profile := &models.Profile{UserID: "user-3", DisplayName: "Carol"}
	require.NoError(t, db.Profiles.Upsert(ctx, profile))

	require.NoError(t, db.Profiles.ApplyAccrual(ctx, "user-3", 1, 0, 10))
	require.NoError(t, db.Profiles.ApplyAccrual(ctx, "user-3", 0, 1, 0))

	got, err := db.Profiles.GetByUserID(ctx, "user-3")
	require.NoError(t, err)
	assert.Equal(t, 1, got.TotalWins)
	assert.Equal(t, 1, got.TotalLosses)
	assert.Equal(t, 10, got.TotalPoints)

	require.NoError(t, db.Profiles.SetTotals(ctx, "user-3", 5, 2, 50))
	got, err = db.Profiles.GetByUserID(ctx, "user-3")
	require.NoError(t, err)
	assert.Equal(t, 5, got.TotalWins)
	assert.Equal(t, 2, got.TotalLosses)
	assert.Equal(t, 50, got.TotalPoints)

	err = db.Profiles.ApplyAccrual(ctx, "user-missing", 1, 0, 0)
	assert.Error(t, err, "Accrual against a missing profile should fail")
}

func TestWeeklyWinnerRepository_UpsertForWeek(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	profile := &models.Profile{UserID: "user-4", DisplayName: "Dan"}
	require.NoError(t, db.Profiles.Upsert(ctx, profile))

	winner := &models.WeeklyWinner{
		WeekStart: "2026-02-09",
		WeekEnd:   "2026-02-15",
		UserID:    "user-4",
		Wins:      6,
		Losses:    1,
	}
	require.NoError(t, db.WeeklyWinners.UpsertForWeek(ctx, winner))

	// Re-finalizing the same week replaces the row
	winner.Wins = 7
	require.NoError(t, db.WeeklyWinners.UpsertForWeek(ctx, winner))

	got, err := db.WeeklyWinners.GetByWeekStart(ctx, "2026-02-09")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 7, got.Wins)
	assert.Equal(t, "user-4", got.UserID)

	missing, err := db.WeeklyWinners.GetByWeekStart(ctx, "2020-01-06")
	require.NoError(t, err)
	assert.Nil(t, missing, "Unrecorded week should return nil, not an error")
}
