//go:build integration

package repository

import (
	"database/sql"
	"testing"
	"time"

	"ncaam_pickem/engine/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGame(externalID, date string) *models.Game {
	start, _ := time.Parse(time.RFC3339, date+"T19:00:00-05:00")
	return &models.Game{
		ExternalID:      externalID,
		TeamAName:       "Kansas",
		TeamAAbbrev:     "KAN",
		TeamBName:       "Baylor",
		TeamBAbbrev:     "BAY",
		TeamAConference: sql.NullString{String: "8", Valid: true},
		TeamBConference: sql.NullString{String: "8", Valid: true},
		StartTime:       start,
		GameDate:        date,
		Status:          models.StatusScheduled,
	}
}

func TestGameRepository_Upsert(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	game := testGame("espn-10001", "2026-02-10")
	game.Spread = sql.NullString{String: "KAN -5.5", Valid: true}

	err := db.Games.Upsert(ctx, game)
	require.NoError(t, err, "Should insert game")
	assert.NotZero(t, game.ID, "Insert should populate database ID")

	retrieved, err := db.Games.GetByExternalID(ctx, "espn-10001")
	require.NoError(t, err, "Should retrieve game")
	require.NotNil(t, retrieved)
	assert.Equal(t, "Kansas", retrieved.TeamAName)
	assert.Equal(t, "BAY", retrieved.TeamBAbbrev)
	assert.Equal(t, models.StatusScheduled, retrieved.Status)
	assert.Equal(t, "KAN -5.5", retrieved.Spread.String)

	// Re-upsert with fresh feed state
	game.Status = models.StatusInProgress
	game.ResultA = sql.NullInt32{Int32: 31, Valid: true}
	game.ResultB = sql.NullInt32{Int32: 28, Valid: true}
	require.NoError(t, db.Games.Upsert(ctx, game))

	updated, err := db.Games.GetByExternalID(ctx, "espn-10001")
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, updated.Status)
	assert.Equal(t, int32(31), updated.ResultA.Int32)
	assert.Equal(t, int32(28), updated.ResultB.Int32)
	assert.Equal(t, retrieved.ID, updated.ID, "Upsert should not create a second row")
}

func TestGameRepository_GetByDateRange(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	require.NoError(t, db.Games.Upsert(ctx, testGame("espn-10010", "2026-02-09")))
	require.NoError(t, db.Games.Upsert(ctx, testGame("espn-10011", "2026-02-12")))
	require.NoError(t, db.Games.Upsert(ctx, testGame("espn-10012", "2026-02-16")))

	games, err := db.Games.GetByDateRange(ctx, "2026-02-09", "2026-02-15")
	require.NoError(t, err)

	ids := make(map[string]bool)
	for _, g := range games {
		ids[g.ExternalID] = true
		assert.GreaterOrEqual(t, g.GameDate, "2026-02-09")
		assert.LessOrEqual(t, g.GameDate, "2026-02-15")
	}
	assert.True(t, ids["espn-10010"])
	assert.True(t, ids["espn-10011"])
	assert.False(t, ids["espn-10012"], "Game after the window should be excluded")
}

func TestGameRepository_UpdateLive(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	game := testGame("espn-10020", "2026-02-10")
	require.NoError(t, db.Games.Upsert(ctx, game))

	update := &models.GameUpdate{
		ExternalID: "espn-10020",
		Status:     models.StatusFinal,
		ResultA:    sql.NullInt32{Int32: 70, Valid: true},
		ResultB:    sql.NullInt32{Int32: 66, Valid: true},
		Spread:     sql.NullString{String: "KAN -5.5", Valid: true},
	}
	require.NoError(t, db.Games.UpdateLive(ctx, update))

	updated, err := db.Games.GetByExternalID(ctx, "espn-10020")
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, models.StatusFinal, updated.Status)
	assert.Equal(t, int32(70), updated.ResultA.Int32)
	assert.Equal(t, "Kansas", updated.TeamAName, "Team columns stay frozen")

	err = db.Games.UpdateLive(ctx, &models.GameUpdate{ExternalID: "espn-nope"})
	assert.Error(t, err, "Updating a missing game should fail")
}

func TestGameRepository_DeleteOrphans(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	orphan := testGame("espn-10030", "2026-02-01")
	kept := testGame("espn-10031", "2026-02-01")
	kept.Spread = sql.NullString{String: "KAN -3", Valid: true}
	require.NoError(t, db.Games.Upsert(ctx, orphan))
	require.NoError(t, db.Games.Upsert(ctx, kept))

	deleted, err := db.Games.DeleteOrphans(ctx, "2026-02-05")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, deleted, 1)

	gone, err := db.Games.GetByExternalID(ctx, "espn-10030")
	require.NoError(t, err)
	assert.Nil(t, gone, "Spreadless game with no picks should be gone")

	survivor, err := db.Games.GetByExternalID(ctx, "espn-10031")
	require.NoError(t, err)
	assert.NotNil(t, survivor, "Game with a spread should survive")
}
