package teams

// aliases maps a normalized name or school name to its known equivalent
// spellings in the other feed's vocabulary. Lookups are tried from both sides
// of a comparison, so each entry only needs to be listed once per direction
// that actually occurs in the feeds.
var aliases = map[string][]string{
	"uconn":            {"connecticut"},
	"connecticut":      {"uconn"},
	"ole miss":         {"mississippi"},
	"mississippi":      {"ole miss"},
	"pitt":             {"pittsburgh"},
	"pittsburgh":       {"pitt"},
	"nc state":         {"north carolina state"},
	"north carolina state": {"nc state"},
	"unc":              {"north carolina"},
	"north carolina":   {"unc"},
	"usc":              {"southern california"},
	"southern california": {"usc"},
	"smu":              {"southern methodist"},
	"southern methodist": {"smu"},
	"tcu":              {"texas christian"},
	"texas christian":  {"tcu"},
	"byu":              {"brigham young"},
	"brigham young":    {"byu"},
	"lsu":              {"louisiana state"},
	"louisiana state":  {"lsu"},
	"vcu":              {"virginia commonwealth"},
	"virginia commonwealth": {"vcu"},
	"ucf":              {"central florida"},
	"central florida":  {"ucf"},
	"umass":            {"massachusetts"},
	"massachusetts":    {"umass"},
	"st johns":         {"saint johns"},
	"saint johns":      {"st johns"},
	"saint marys":      {"st marys"},
	"st marys":         {"saint marys"},
	"uc santa barbara": {"ucsb"},
	"ucsb":             {"uc santa barbara"},
	"unlv":             {"nevada las vegas"},
	"nevada las vegas": {"unlv"},
	"utep":             {"texas el paso"},
	"texas el paso":    {"utep"},
	"miami":            {"miami fl"},
	"miami fl":         {"miami"},
}

// aliasesContain reports whether any alias registered for key equals one of
// the candidate forms.
func aliasesContain(key string, candidates ...string) bool {
	list, ok := aliases[key]
	if !ok {
		return false
	}
	for _, alias := range list {
		for _, cand := range candidates {
			if alias == cand {
				return true
			}
		}
	}
	return false
}
