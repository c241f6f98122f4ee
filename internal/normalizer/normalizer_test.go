package normalizer

import (
	"strings"
	"testing"

	"ncaam_pickem/engine/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(v int) *int          { return &v }
func floatp(v float64) *float64 { return &v }

func scoreboardEvent(odds ...models.SpreadQuotation) models.ScoreboardEvent {
	return models.ScoreboardEvent{
		ID:        "401700001",
		StartTime: "2026-02-10T19:00:00-05:00",
		Status:    "pre",
		Competitors: []models.Competitor{
			{
				HomeAway:     "away",
				Name:         "Kansas Jayhawks",
				Abbreviation: "KAN",
				ConferenceID: "8",
				Rank:         intp(4),
				Record:       "18-3",
			},
			{
				HomeAway:     "home",
				Name:         "Baylor Bears",
				Abbreviation: "BAY",
				ConferenceID: "8",
				Rank:         intp(99),
				Record:       "15-6",
			},
		},
		Odds: odds,
	}
}

func TestNormalizeDay_BasicFields(t *testing.T) {
	games := NormalizeDay([]models.ScoreboardEvent{scoreboardEvent()}, nil)
	require.Len(t, games, 1)

	g := games[0]
	assert.Equal(t, "401700001", g.ExternalID)
	assert.Equal(t, "Kansas Jayhawks", g.TeamAName, "team_a is the away side")
	assert.Equal(t, "KAN", g.TeamAAbbrev)
	assert.Equal(t, "Baylor Bears", g.TeamBName)
	assert.Equal(t, models.StatusScheduled, g.Status)
	assert.Equal(t, "2026-02-10", g.GameDate, "civil date keeps the feed's timezone")
	assert.False(t, g.Spread.Valid, "no quotation means null spread")
	assert.False(t, g.ResultA.Valid)

	assert.True(t, g.TeamARank.Valid)
	assert.Equal(t, int32(4), g.TeamARank.Int32)
	assert.False(t, g.TeamBRank.Valid, "sentinel rank above 25 is unranked")
	assert.Equal(t, "18-3", g.TeamARecord.String)
}

func TestNormalizeDay_LateGameCrossesUTCMidnight(t *testing.T) {
	ev := scoreboardEvent()
	// 23:00 Eastern is already past midnight UTC; the grouping date must
	// stay on the source-timezone day.
	ev.StartTime = "2026-02-10T23:00:00-05:00"
	games := NormalizeDay([]models.ScoreboardEvent{ev}, nil)
	require.Len(t, games, 1)
	assert.Equal(t, "2026-02-10", games[0].GameDate)
}

func TestNormalizeDay_SkipsMalformedEvents(t *testing.T) {
	missingHome := scoreboardEvent()
	missingHome.Competitors = missingHome.Competitors[:1]

	badStatus := scoreboardEvent()
	badStatus.Status = "halftime"

	badTime := scoreboardEvent()
	badTime.StartTime = "tomorrow"

	good := scoreboardEvent()
	good.ID = "401700002"

	games := NormalizeDay([]models.ScoreboardEvent{missingHome, badStatus, badTime, good}, nil)
	require.Len(t, games, 1, "malformed events are skipped, not fatal")
	assert.Equal(t, "401700002", games[0].ExternalID)
}

func TestNormalizeDay_InProgressScores(t *testing.T) {
	ev := scoreboardEvent()
	ev.Status = "in"
	ev.Competitors[0].Score = intp(41)
	ev.Competitors[1].Score = intp(38)

	games := NormalizeDay([]models.ScoreboardEvent{ev}, nil)
	require.Len(t, games, 1)
	assert.Equal(t, models.StatusInProgress, games[0].Status)
	assert.Equal(t, int32(41), games[0].ResultA.Int32)
	assert.Equal(t, int32(38), games[0].ResultB.Int32)
}

func TestResolveSpread_FavoriteQuotation(t *testing.T) {
	ev := scoreboardEvent(models.SpreadQuotation{Details: "KAN -5.5", Spread: floatp(-5.5)})
	games := NormalizeDay([]models.ScoreboardEvent{ev}, nil)
	require.Len(t, games, 1)
	require.True(t, games[0].Spread.Valid)
	assert.Equal(t, "KAN -5.5", games[0].Spread.String)
}

func TestResolveSpread_PrefersNegativeQuotation(t *testing.T) {
	ev := scoreboardEvent(
		models.SpreadQuotation{Details: "BAY 5.5", Spread: floatp(5.5)},
		models.SpreadQuotation{Details: "KAN -5.5", Spread: floatp(-5.5)},
	)
	games := NormalizeDay([]models.ScoreboardEvent{ev}, nil)
	require.True(t, games[0].Spread.Valid)
	assert.Equal(t, "KAN -5.5", games[0].Spread.String)
}

func TestResolveSpread_UnderdogQuotationFlips(t *testing.T) {
	// Only the underdog side is quoted: the other team is the favorite at
	// the negated magnitude.
	ev := scoreboardEvent(models.SpreadQuotation{Details: "BAY 5.5", Spread: floatp(5.5)})
	games := NormalizeDay([]models.ScoreboardEvent{ev}, nil)
	require.True(t, games[0].Spread.Valid)
	assert.Equal(t, "KAN -5.5", games[0].Spread.String)
}

func TestResolveSpread_TextOverridesDisagreeingSign(t *testing.T) {
	// Structured field says positive but the free text's trailing number is
	// negative: the text's team reference wins.
	ev := scoreboardEvent(models.SpreadQuotation{Details: "BAY -3.5", Spread: floatp(3.5)})
	games := NormalizeDay([]models.ScoreboardEvent{ev}, nil)
	require.True(t, games[0].Spread.Valid)
	assert.Equal(t, "BAY -3.5", games[0].Spread.String)
}

func TestResolveSpread_AttributionByDisplayNameFirstWord(t *testing.T) {
	ev := scoreboardEvent(models.SpreadQuotation{Details: "Kansas -7", Spread: floatp(-7)})
	games := NormalizeDay([]models.ScoreboardEvent{ev}, nil)
	require.True(t, games[0].Spread.Valid)
	assert.Equal(t, "KAN -7", games[0].Spread.String)
}

func TestResolveSpread_UnattributableIsNull(t *testing.T) {
	// "Gonzaga" matches neither abbreviation nor either display name.
	ev := scoreboardEvent(models.SpreadQuotation{Details: "Gonzaga -4.5", Spread: floatp(-4.5)})
	games := NormalizeDay([]models.ScoreboardEvent{ev}, nil)
	require.Len(t, games, 1)
	assert.False(t, games[0].Spread.Valid, "never guess a side")
}

func TestResolveSpread_SecondaryFeedConsensusWins(t *testing.T) {
	// Scoreboard quotes -5.5 but three of four books agree on 6.5 with
	// Kansas negative; the consensus overrides the scoreboard quotation.
	ev := scoreboardEvent(models.SpreadQuotation{Details: "KAN -5.5", Spread: floatp(-5.5)})
	oddsEvents := []models.OddsEvent{{
		AwayTeam: "Kansas",
		HomeTeam: "Baylor",
		Bookmakers: []models.Bookmaker{
			spreadBook("Kansas", -6.5, "Baylor", 6.5),
			spreadBook("Kansas", -6.5, "Baylor", 6.5),
			spreadBook("Kansas", -6.5, "Baylor", 6.5),
			spreadBook("Kansas", -7, "Baylor", 7),
		},
	}}

	games := NormalizeDay([]models.ScoreboardEvent{ev}, oddsEvents)
	require.True(t, games[0].Spread.Valid)
	assert.Equal(t, "KAN -6.5", games[0].Spread.String)
}

func TestResolveSpread_SecondaryFeedVocabularyMatched(t *testing.T) {
	// The odds feed spells teams differently; the identity matcher bridges
	// the two vocabularies.
	ev := models.ScoreboardEvent{
		ID:        "401700009",
		StartTime: "2026-02-10T19:00:00-05:00",
		Status:    "pre",
		Competitors: []models.Competitor{
			{HomeAway: "away", Name: "UConn", Abbreviation: "CONN"},
			{HomeAway: "home", Name: "Villanova Wildcats", Abbreviation: "VILL"},
		},
	}
	oddsEvents := []models.OddsEvent{{
		AwayTeam: "Connecticut Huskies",
		HomeTeam: "Villanova",
		Bookmakers: []models.Bookmaker{
			spreadBook("Connecticut Huskies", -2.5, "Villanova", 2.5),
			spreadBook("Connecticut Huskies", -2.5, "Villanova", 2.5),
		},
	}}

	games := NormalizeDay([]models.ScoreboardEvent{ev}, oddsEvents)
	require.Len(t, games, 1)
	require.True(t, games[0].Spread.Valid)
	assert.Equal(t, "CONN -2.5", games[0].Spread.String)
}

func TestNormalizeDay_SpreadLeadingTokenInvariant(t *testing.T) {
	events := []models.ScoreboardEvent{
		scoreboardEvent(models.SpreadQuotation{Details: "KAN -5.5", Spread: floatp(-5.5)}),
		scoreboardEvent(models.SpreadQuotation{Details: "BAY 5.5", Spread: floatp(5.5)}),
		scoreboardEvent(models.SpreadQuotation{Details: "Kansas -7", Spread: floatp(-7)}),
		scoreboardEvent(models.SpreadQuotation{Details: "Gonzaga -4.5", Spread: floatp(-4.5)}),
		scoreboardEvent(),
	}

	for _, g := range NormalizeDay(events, nil) {
		if !g.Spread.Valid {
			continue
		}
		lead := strings.Fields(g.Spread.String)[0]
		assert.Contains(t, []string{g.TeamAAbbrev, g.TeamBAbbrev}, lead,
			"emitted spread %q must lead with a stored abbreviation", g.Spread.String)
	}
}

func spreadBook(teamA string, pointA float64, teamB string, pointB float64) models.Bookmaker {
	return models.Bookmaker{
		Key: "book",
		Markets: []models.Market{{
			Key: models.MarketSpreads,
			Outcomes: []models.Outcome{
				{Name: teamA, Point: pointA},
				{Name: teamB, Point: pointB},
			},
		}},
	}
}
