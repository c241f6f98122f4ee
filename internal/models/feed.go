package models

// Raw feed input records. These mirror what the upstream providers send and
// are only ever consumed by the normalizer; nothing downstream of it should
// touch these shapes.

// ScoreboardEvent is one game as reported by the scoreboard provider.
type ScoreboardEvent struct {
	ID          string            `json:"external_id"`
	StartTime   string            `json:"start_time"` // ISO-8601
	Status      string            `json:"status"`     // "pre" | "in" | "post"
	Competitors []Competitor      `json:"competitors"`
	Odds        []SpreadQuotation `json:"odds"`
}

// Competitor is one side of a scoreboard event.
type Competitor struct {
	HomeAway     string `json:"home_away"` // "home" | "away"
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	ConferenceID string `json:"conference_id"`
	Score        *int   `json:"score,omitempty"`
	Rank         *int   `json:"rank,omitempty"` // AP rank; >25 means unranked
	Record       string `json:"record,omitempty"`
}

// SpreadQuotation is one odds line attached to a scoreboard event. Details is
// free text ("<ABBREV or NAME> <signed number>"); Spread is the provider's
// structured value where negative means the quoted team is favored. The two
// have been observed to disagree.
type SpreadQuotation struct {
	Details string   `json:"details"`
	Spread  *float64 `json:"spread,omitempty"`
}

// OddsEvent is one game from the secondary odds provider, quoting possibly
// many bookmakers. Team names here use the odds provider's own vocabulary and
// must be matched to scoreboard teams through the identity matcher.
type OddsEvent struct {
	AwayTeam   string      `json:"away_team"`
	HomeTeam   string      `json:"home_team"`
	Bookmakers []Bookmaker `json:"bookmakers"`
}

// Bookmaker is one book's quoted markets for an odds event.
type Bookmaker struct {
	Key     string   `json:"key"`
	Markets []Market `json:"markets"`
}

// Market is one market kind ("spreads" is the only one the engine reads).
type Market struct {
	Key      string    `json:"key"`
	Outcomes []Outcome `json:"outcomes"`
}

// Outcome is one quoted side of a market.
type Outcome struct {
	Name  string  `json:"name"`
	Point float64 `json:"point"`
}

// MarketSpreads is the only market key the normalizer consumes.
const MarketSpreads = "spreads"
