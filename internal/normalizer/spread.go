package normalizer

import (
	"math"
	"strconv"
	"strings"

	"ncaam_pickem/engine/internal/models"
	"ncaam_pickem/engine/internal/teams"

	"github.com/rs/zerolog/log"
)

// ResolveSpread decides the single spread stored on a game, trying an ordered
// list of strategies and taking the first that succeeds:
//
//  1. consensus of the secondary odds feed, when an entry matches this game
//  2. a scoreboard quotation that explicitly states a favorite (negative
//     structured value)
//  3. an underdog-only scoreboard quotation, flipped onto the other team,
//     unless its free text disagrees with the structured sign, in which case
//     the text wins
//
// The result is always reconstructed from the resolved side's own stored
// abbreviation, never passed through from source text. When no strategy can
// attribute a spread to either side, ok is false and the game stores null;
// a missing spread is preferred over a guessed one.
func ResolveSpread(ev *models.ScoreboardEvent, away, home *models.Competitor, oddsEvents []models.OddsEvent) (models.Spread, bool) {
	strategies := []func() (models.Spread, bool){
		func() (models.Spread, bool) { return fromSecondaryFeed(ev, away, home, oddsEvents) },
		func() (models.Spread, bool) { return fromFavoriteQuotation(ev.Odds, away, home) },
		func() (models.Spread, bool) { return fromUnderdogQuotation(ev.Odds, away, home) },
	}
	for _, strategy := range strategies {
		if spread, ok := strategy(); ok {
			return spread, true
		}
	}
	return models.Spread{}, false
}

// fromSecondaryFeed prefers the odds feed's consensus over anything the
// scoreboard quotes, whenever an odds entry matches both participants.
func fromSecondaryFeed(ev *models.ScoreboardEvent, away, home *models.Competitor, oddsEvents []models.OddsEvent) (models.Spread, bool) {
	for i := range oddsEvents {
		oe := &oddsEvents[i]
		straight := teams.Match(oe.AwayTeam, away.Name) && teams.Match(oe.HomeTeam, home.Name)
		flipped := teams.Match(oe.AwayTeam, home.Name) && teams.Match(oe.HomeTeam, away.Name)
		if !straight && !flipped {
			continue
		}

		favName, magnitude, ok := consensusSpread(oe)
		if !ok {
			continue
		}

		var abbrev string
		switch {
		case teams.Match(favName, away.Name):
			abbrev = away.Abbreviation
		case teams.Match(favName, home.Name):
			abbrev = home.Abbreviation
		default:
			log.Debug().
				Str("external_id", ev.ID).
				Str("favorite", favName).
				Msg("Odds feed favorite matched neither side")
			continue
		}
		return models.Spread{Abbrev: abbrev, Value: -magnitude}, true
	}
	return models.Spread{}, false
}

// consensusSpread merges all bookmaker spread quotes of one odds event:
// (team, point) pairs are bucketed by absolute point value, the bucket with
// the most contributing quotes is the consensus, and within it the team
// quoted at the negative point is the favorite. Equal bucket sizes keep the
// first bucket encountered.
func consensusSpread(oe *models.OddsEvent) (favName string, magnitude float64, ok bool) {
	type bucket struct {
		count   int
		favName string
	}
	buckets := make(map[float64]*bucket)
	var order []float64

	for _, book := range oe.Bookmakers {
		for _, market := range book.Markets {
			if market.Key != models.MarketSpreads {
				continue
			}
			for _, outcome := range market.Outcomes {
				key := math.Abs(outcome.Point)
				b := buckets[key]
				if b == nil {
					b = &bucket{}
					buckets[key] = b
					order = append(order, key)
				}
				b.count++
				if outcome.Point < 0 && b.favName == "" {
					b.favName = outcome.Name
				}
			}
		}
	}

	var best *bucket
	var bestKey float64
	for _, key := range order {
		if best == nil || buckets[key].count > best.count {
			best = buckets[key]
			bestKey = key
		}
	}

	if best == nil || best.favName == "" || bestKey == 0 {
		return "", 0, false
	}
	return best.favName, bestKey, true
}

// fromFavoriteQuotation picks the first scoreboard quotation whose structured
// value explicitly states a favorite (negative) and attributes it to a side.
func fromFavoriteQuotation(quotes []models.SpreadQuotation, away, home *models.Competitor) (models.Spread, bool) {
	for _, q := range quotes {
		if q.Spread == nil || *q.Spread >= 0 {
			continue
		}
		abbrev, ok := attributeQuotation(q.Details, away, home)
		if !ok {
			continue
		}
		return models.Spread{Abbrev: abbrev, Value: *q.Spread}, true
	}
	return models.Spread{}, false
}

// fromUnderdogQuotation handles the case where only a positive (underdog)
// structured value exists. The quotation's free text is re-checked first: a
// negative trailing token means the text and the structured field disagree,
// and the text's team reference wins. Otherwise the quoted team really is the
// underdog and the other side becomes the favorite at the negated magnitude.
func fromUnderdogQuotation(quotes []models.SpreadQuotation, away, home *models.Competitor) (models.Spread, bool) {
	for _, q := range quotes {
		if q.Spread == nil || *q.Spread <= 0 {
			continue
		}

		abbrev, ok := attributeQuotation(q.Details, away, home)
		if !ok {
			continue
		}

		if tail, tailOK := trailingNumber(q.Details); tailOK && tail < 0 {
			return models.Spread{Abbrev: abbrev, Value: tail}, true
		}

		other := home.Abbreviation
		if abbrev == home.Abbreviation {
			other = away.Abbreviation
		}
		return models.Spread{Abbrev: other, Value: -*q.Spread}, true
	}
	return models.Spread{}, false
}

// attributeQuotation maps a quotation's leading team reference onto one of
// the two sides. Methods in order: the full identifier (text minus trailing
// number) against either abbreviation, the first whitespace token against
// either abbreviation, then the first word of either display name when that
// word is at least 3 characters (short words false-positive too easily).
// No method succeeding means the quotation is unusable.
func attributeQuotation(details string, away, home *models.Competitor) (string, bool) {
	tokens := strings.Fields(details)
	if len(tokens) == 0 {
		return "", false
	}

	identifier := details
	if _, ok := parseNumber(tokens[len(tokens)-1]); ok {
		identifier = strings.Join(tokens[:len(tokens)-1], " ")
	}

	if strings.EqualFold(identifier, away.Abbreviation) {
		return away.Abbreviation, true
	}
	if strings.EqualFold(identifier, home.Abbreviation) {
		return home.Abbreviation, true
	}

	if strings.EqualFold(tokens[0], away.Abbreviation) {
		return away.Abbreviation, true
	}
	if strings.EqualFold(tokens[0], home.Abbreviation) {
		return home.Abbreviation, true
	}

	if w := firstWord(away.Name); len(w) >= 3 && strings.EqualFold(tokens[0], w) {
		return away.Abbreviation, true
	}
	if w := firstWord(home.Name); len(w) >= 3 && strings.EqualFold(tokens[0], w) {
		return home.Abbreviation, true
	}

	return "", false
}

// trailingNumber parses the last whitespace token of a details string.
func trailingNumber(details string) (float64, bool) {
	tokens := strings.Fields(details)
	if len(tokens) == 0 {
		return 0, false
	}
	return parseNumber(tokens[len(tokens)-1])
}

func parseNumber(token string) (float64, bool) {
	v, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func firstWord(name string) string {
	if i := strings.IndexByte(name, ' '); i >= 0 {
		return name[:i]
	}
	return name
}
