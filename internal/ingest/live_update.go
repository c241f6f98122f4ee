package ingest

import (
	"github.com/rs/zerolog/log"

	"ncaam_pickem/engine/internal/models"
)

// ApplyLiveUpdate diffs a freshly normalized game against its stored row and
// returns the update to persist, or nil when nothing observable changed.
//
// The stored a/b team ordering is authoritative. If the feed has swapped its
// home/away orientation since first import, the fresh game's per-side fields
// are remapped onto the stored ordering before comparison. The spread string
// is side-agnostic (it names a team abbreviation) so it never needs remapping.
func ApplyLiveUpdate(stored, fresh *models.Game) *models.GameUpdate {
	switch {
	case fresh.TeamAAbbrev == stored.TeamAAbbrev && fresh.TeamBAbbrev == stored.TeamBAbbrev:
		// orientation unchanged
	case fresh.TeamAAbbrev == stored.TeamBAbbrev && fresh.TeamBAbbrev == stored.TeamAAbbrev:
		swapSides(fresh)
	default:
		log.Warn().
			Str("external_id", stored.ExternalID).
			Str("stored_teams", stored.TeamAAbbrev+"/"+stored.TeamBAbbrev).
			Str("fresh_teams", fresh.TeamAAbbrev+"/"+fresh.TeamBAbbrev).
			Msg("Live update references different teams, skipping")
		return nil
	}

	changed := stored.Status != fresh.Status ||
		stored.ResultA != fresh.ResultA ||
		stored.ResultB != fresh.ResultB ||
		stored.Spread != fresh.Spread ||
		stored.TeamARank != fresh.TeamARank ||
		stored.TeamBRank != fresh.TeamBRank ||
		stored.TeamARecord != fresh.TeamARecord ||
		stored.TeamBRecord != fresh.TeamBRecord
	if !changed {
		return nil
	}

	return &models.GameUpdate{
		ExternalID:   stored.ExternalID,
		Status:       fresh.Status,
		ResultA:      fresh.ResultA,
		ResultB:      fresh.ResultB,
		Spread:       fresh.Spread,
		TeamARank:    fresh.TeamARank,
		TeamBRank:    fresh.TeamBRank,
		TeamARecord:  fresh.TeamARecord,
		TeamBRecord:  fresh.TeamBRecord,
		JustFinished: !stored.IsFinal() && fresh.Status == models.StatusFinal,
	}
}

func swapSides(g *models.Game) {
	g.TeamAName, g.TeamBName = g.TeamBName, g.TeamAName
	g.TeamAAbbrev, g.TeamBAbbrev = g.TeamBAbbrev, g.TeamAAbbrev
	g.TeamAConference, g.TeamBConference = g.TeamBConference, g.TeamAConference
	g.ResultA, g.ResultB = g.ResultB, g.ResultA
	g.TeamARank, g.TeamBRank = g.TeamBRank, g.TeamARank
	g.TeamARecord, g.TeamBRecord = g.TeamBRecord, g.TeamARecord
}
