package gamelogic

import (
	"database/sql"
	"testing"

	"ncaam_pickem/engine/internal/models"

	"github.com/stretchr/testify/assert"
)

func finalGame(spread string, resultA, resultB int32) *models.Game {
	return &models.Game{
		ExternalID:  "401712345",
		TeamAName:   "Kansas",
		TeamAAbbrev: "KAN",
		TeamBName:   "Baylor",
		TeamBAbbrev: "BAY",
		Status:      models.StatusFinal,
		Spread:      sql.NullString{String: spread, Valid: spread != ""},
		ResultA:     sql.NullInt32{Int32: resultA, Valid: true},
		ResultB:     sql.NullInt32{Int32: resultB, Valid: true},
	}
}

func TestDidTeamCover_GoldenFixture(t *testing.T) {
	// Kansas favored by 5.5, wins by 4: Kansas fails to cover, Baylor covers.
	game := finalGame("KAN -5.5", 70, 66)

	assert.Equal(t, NotCovered, DidTeamCover(game, "Kansas"))
	assert.Equal(t, Covered, DidTeamCover(game, "Baylor"))
}

func TestDidTeamCover_FavoriteCovers(t *testing.T) {
	game := finalGame("KAN -5.5", 80, 66)

	assert.Equal(t, Covered, DidTeamCover(game, "Kansas"))
	assert.Equal(t, NotCovered, DidTeamCover(game, "Baylor"))
}

func TestDidTeamCover_UnderdogFavoredSide(t *testing.T) {
	// Spread attributed to team B; underdog team A wins outright.
	game := finalGame("BAY -3.5", 71, 70)

	assert.Equal(t, Covered, DidTeamCover(game, "Kansas"))
	assert.Equal(t, NotCovered, DidTeamCover(game, "Baylor"))
}

func TestDidTeamCover_PushIsNotCovered(t *testing.T) {
	// Margin exactly equals the spread: a push is a loss for both wagers,
	// not a distinct state and not Undetermined.
	game := finalGame("KAN -5", 75, 70)

	assert.Equal(t, NotCovered, DidTeamCover(game, "Kansas"))
	assert.Equal(t, NotCovered, DidTeamCover(game, "Baylor"))
}

func TestDidTeamCover_Undetermined(t *testing.T) {
	tests := []struct {
		name string
		game *models.Game
		team string
	}{
		{"nil game", nil, "Kansas"},
		{"not final", func() *models.Game {
			g := finalGame("KAN -5.5", 40, 38)
			g.Status = models.StatusInProgress
			return g
		}(), "Kansas"},
		{"null spread", finalGame("", 70, 66), "Kansas"},
		{"one-token spread", finalGame("-5.5", 70, 66), "Kansas"},
		{"non-numeric spread", finalGame("KAN pick", 70, 66), "Kansas"},
		{"spread abbrev matches neither side", finalGame("DUKE -5.5", 70, 66), "Kansas"},
		{"missing score", func() *models.Game {
			g := finalGame("KAN -5.5", 70, 66)
			g.ResultB = sql.NullInt32{}
			return g
		}(), "Kansas"},
		{"unknown team name", finalGame("KAN -5.5", 70, 66), "Kansas Jayhawks"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, Undetermined, DidTeamCover(tt.game, tt.team))
		})
	}
}
