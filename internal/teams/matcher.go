// Package teams decides whether two differently-spelled team references from
// the scoreboard and odds feeds denote the same school.
package teams

import (
	"regexp"
	"strings"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9 ]+`)
var multiSpace = regexp.MustCompile(`\s+`)

// Normalize lowercases a team reference, strips everything outside
// [a-z0-9 ], collapses whitespace and trims.
func Normalize(name string) string {
	n := strings.ToLower(name)
	n = nonAlnum.ReplaceAllString(n, "")
	n = multiSpace.ReplaceAllString(n, " ")
	return strings.TrimSpace(n)
}

// Match reports whether two team references denote the same team. Pure and
// symmetric: Match(a, b) == Match(b, a). Heuristics run in order, first hit
// wins:
//
//  1. normalized exact equality
//  2. mascot-stripped school names equal (both >= 4 chars)
//  3. alias lookup in either direction
//  4. first two tokens identical
//  5. shorter name (>= 4 chars) is a prefix of the longer followed by a
//     space; the trailing space is required so "duke" never matches
//     "duquesne"
func Match(nameA, nameB string) bool {
	na, nb := Normalize(nameA), Normalize(nameB)
	if na == "" || nb == "" {
		return false
	}
	if na == nb {
		return true
	}

	sa, sb := StripMascot(na), StripMascot(nb)
	if len(sa) >= 4 && len(sb) >= 4 && sa == sb {
		return true
	}

	if aliasesContain(na, nb, sb) || aliasesContain(sa, nb, sb) ||
		aliasesContain(nb, na, sa) || aliasesContain(sb, na, sa) {
		return true
	}

	if twoTokenPrefixEqual(na, nb) {
		return true
	}

	return spacedPrefix(na, nb) || spacedPrefix(nb, na)
}

// twoTokenPrefixEqual handles "texas tech" vs "texas tech red raiders":
// both names carry at least two tokens and agree on the first two.
func twoTokenPrefixEqual(a, b string) bool {
	ta := strings.SplitN(a, " ", 3)
	tb := strings.SplitN(b, " ", 3)
	if len(ta) < 2 || len(tb) < 2 {
		return false
	}
	return ta[0] == tb[0] && ta[1] == tb[1]
}

// spacedPrefix reports whether short is a word-boundary prefix of long.
func spacedPrefix(short, long string) bool {
	return len(short) >= 4 && strings.HasPrefix(long, short+" ")
}
