package teams

import (
	"regexp"
	"sort"
	"strings"
)

// mascotWords is the lexicon of mascot suffixes seen across the two feeds.
// Multi-word mascots must be listed in full so the suffix regex can take the
// longest match ("red raiders", not just "raiders").
var mascotWords = []string{
	"aggies",
	"aztecs",
	"badgers",
	"bearcats",
	"bears",
	"beavers",
	"billikens",
	"black bears",
	"blazers",
	"blue demons",
	"blue devils",
	"blue hens",
	"blue jays",
	"blue raiders",
	"bluejays",
	"bobcats",
	"boilermakers",
	"bonnies",
	"broncos",
	"bruins",
	"buccaneers",
	"buckeyes",
	"buffaloes",
	"bulldogs",
	"bulls",
	"cardinal",
	"cardinals",
	"catamounts",
	"cavaliers",
	"colonials",
	"commodores",
	"cornhuskers",
	"cougars",
	"cowboys",
	"crimson tide",
	"crusaders",
	"cyclones",
	"demon deacons",
	"dons",
	"ducks",
	"eagles",
	"explorers",
	"fighting illini",
	"fighting irish",
	"flames",
	"flyers",
	"friars",
	"gaels",
	"gamecocks",
	"gators",
	"golden bears",
	"golden eagles",
	"golden flashes",
	"golden gophers",
	"golden grizzlies",
	"governors",
	"great danes",
	"greyhounds",
	"hawkeyes",
	"hilltoppers",
	"hokies",
	"hoosiers",
	"horned frogs",
	"hoyas",
	"hurricanes",
	"huskies",
	"jaspers",
	"jayhawks",
	"lobos",
	"longhorns",
	"midshipmen",
	"minutemen",
	"mocs",
	"monarchs",
	"mountaineers",
	"musketeers",
	"nittany lions",
	"norse",
	"orange",
	"owls",
	"paladins",
	"panthers",
	"penguins",
	"phoenix",
	"pirates",
	"purple aces",
	"quakers",
	"racers",
	"rams",
	"razorbacks",
	"rebels",
	"red raiders",
	"red storm",
	"redbirds",
	"retrievers",
	"salukis",
	"scarlet knights",
	"seminoles",
	"shockers",
	"sooners",
	"spartans",
	"spiders",
	"sun devils",
	"sycamores",
	"tar heels",
	"terrapins",
	"terriers",
	"tigers",
	"trojans",
	"utes",
	"vikings",
	"volunteers",
	"waves",
	"wildcats",
	"wolfpack",
	"wolverines",
	"zips",
}

// mascotSuffix matches a single trailing mascot phrase on a normalized name.
// Alternatives are ordered longest-first so "texas tech red raiders" strips
// "red raiders" rather than stopping at a shorter alternative.
var mascotSuffix = buildMascotSuffix()

func buildMascotSuffix() *regexp.Regexp {
	words := make([]string, len(mascotWords))
	copy(words, mascotWords)
	sort.Slice(words, func(i, j int) bool { return len(words[i]) > len(words[j]) })

	for i, w := range words {
		words[i] = regexp.QuoteMeta(w)
	}
	return regexp.MustCompile(` (?:` + strings.Join(words, "|") + `)$`)
}

// StripMascot removes one trailing mascot phrase from an already-normalized
// name, yielding the bare school name. Names without a known mascot come back
// unchanged.
func StripMascot(normalized string) string {
	return mascotSuffix.ReplaceAllString(normalized, "")
}
