package gamelogic

import (
	"sort"
	"time"

	"ncaam_pickem/engine/internal/models"
)

// WindowKind selects the standings time range.
type WindowKind int

const (
	WindowDay WindowKind = iota
	WindowWeek
	WindowSeason
)

// Window is an inclusive civil-date range over which standings are computed.
// Start/End are unused for the season window, which reads the profiles'
// stored cumulative counters instead of recomputing from picks.
type Window struct {
	Kind  WindowKind
	Start string
	End   string
}

// DayWindow covers a single civil date.
func DayWindow(date string) Window {
	return Window{Kind: WindowDay, Start: date, End: date}
}

// WeekWindowContaining covers the Monday..Sunday week holding t.
func WeekWindowContaining(t time.Time) Window {
	daysPastMonday := (int(t.Weekday()) + 6) % 7
	start := t.AddDate(0, 0, -daysPastMonday)
	return Window{
		Kind:  WindowWeek,
		Start: models.CivilDate(start),
		End:   models.CivilDate(start.AddDate(0, 0, 6)),
	}
}

// SeasonWindow selects the stored season-to-date counters.
func SeasonWindow() Window {
	return Window{Kind: WindowSeason}
}

// Contains reports whether a civil date falls inside the window. Civil dates
// sort lexically, so plain string comparison suffices.
func (w Window) Contains(date string) bool {
	return date >= w.Start && date <= w.End
}

// Entry is one participant's ranked standings row.
type Entry struct {
	UserID      string
	DisplayName string
	Wins        int
	Losses      int
	Points      int
}

// ComputeStandings ranks every supplied profile over the window.
//
// Season windows copy each profile's stored counters verbatim. Day and week
// windows tally cover results over finished games whose GameDate falls in the
// range; Undetermined picks count as neither a win nor a loss, so a row's
// win+loss total can be less than the participant's pick count when spread
// data was missing.
//
// Order is descending wins, then ascending losses; entries tied on both keep
// the relative order the profiles were supplied in.
func ComputeStandings(profiles []*models.Profile, games []*models.Game, picks []*models.Pick, window Window) []Entry {
	entries := make([]Entry, 0, len(profiles))

	if window.Kind == WindowSeason {
		for _, p := range profiles {
			entries = append(entries, Entry{
				UserID:      p.UserID,
				DisplayName: p.DisplayName,
				Wins:        p.TotalWins,
				Losses:      p.TotalLosses,
				Points:      p.TotalPoints,
			})
		}
		rank(entries)
		return entries
	}

	inWindow := make(map[int]*models.Game)
	for _, g := range games {
		if g.IsFinal() && window.Contains(g.GameDate) {
			inWindow[g.ID] = g
		}
	}

	type tally struct{ wins, losses int }
	tallies := make(map[string]*tally)

	for _, pick := range picks {
		game, ok := inWindow[pick.GameID]
		if !ok {
			continue
		}
		t := tallies[pick.UserID]
		if t == nil {
			t = &tally{}
			tallies[pick.UserID] = t
		}
		switch DidTeamCover(game, pick.TeamName) {
		case Covered:
			t.wins++
		case NotCovered:
			t.losses++
		}
	}

	for _, p := range profiles {
		e := Entry{UserID: p.UserID, DisplayName: p.DisplayName}
		if t := tallies[p.UserID]; t != nil {
			e.Wins = t.wins
			e.Losses = t.losses
			e.Points = t.wins
		}
		entries = append(entries, e)
	}
	rank(entries)
	return entries
}

// rank sorts in place: wins descending, losses ascending, ties stable.
func rank(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Wins != entries[j].Wins {
			return entries[i].Wins > entries[j].Wins
		}
		return entries[i].Losses < entries[j].Losses
	})
}

// WeeklyChampion picks the single winner of a finalized week: strictly most
// wins, ties broken by fewest losses, a tie on both keeping the first
// candidate encountered. That last rule is input-order dependent; it is
// inherited pool behavior and deliberately left as is. Returns nil when the
// best win count is zero.
func WeeklyChampion(entries []Entry) *Entry {
	var champ *Entry
	for i := range entries {
		e := &entries[i]
		if champ == nil || e.Wins > champ.Wins ||
			(e.Wins == champ.Wins && e.Losses < champ.Losses) {
			champ = e
		}
	}
	if champ == nil || champ.Wins == 0 {
		return nil
	}
	return champ
}
