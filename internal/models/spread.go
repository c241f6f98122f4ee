package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Spread is a resolved point spread: the favorite's abbreviation plus the
// signed handicap it is giving. Value is always <= 0.
type Spread struct {
	Abbrev string
	Value  float64
}

// String renders the canonical stored form, e.g. "KAN -5.5".
// The leading token is always the favorite's own abbreviation so downstream
// consumers can compare it against a game's stored abbreviations exactly.
func (s Spread) String() string {
	return fmt.Sprintf("%s %s", s.Abbrev, strconv.FormatFloat(s.Value, 'f', -1, 64))
}

// ParseSpread parses a stored spread string back into its parts.
// It requires at least two whitespace-separated tokens with a numeric tail;
// everything else is an error, never a guess.
func ParseSpread(raw string) (Spread, error) {
	fields := strings.Fields(raw)
	if len(fields) < 2 {
		return Spread{}, fmt.Errorf("malformed spread %q: need abbreviation and value", raw)
	}

	value, err := strconv.ParseFloat(fields[len(fields)-1], 64)
	if err != nil {
		return Spread{}, fmt.Errorf("malformed spread %q: %w", raw, err)
	}

	return Spread{Abbrev: fields[0], Value: value}, nil
}
