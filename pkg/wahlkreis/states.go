package wahlkreis

import "strings"

// stateCodes maps normalized state names to their two-letter codes.
// Keys are produced by normalizeKey, so umlaut and hyphen/space variants of
// the same name collapse to one entry.
var stateCodes = map[string]string{
	"badenwuerttemberg":     "BW",
	"bayern":                "BY",
	"berlin":                "BE",
	"brandenburg":           "BB",
	"bremen":                "HB",
	"hamburg":               "HH",
	"hessen":                "HE",
	"mecklenburgvorpommern": "MV",
	"niedersachsen":         "NI",
	"nordrheinwestfalen":    "NW",
	"rheinlandpfalz":        "RP",
	"saarland":              "SL",
	"sachsen":               "SN",
	"sachsenanhalt":         "ST",
	"schleswigholstein":     "SH",
	"thueringen":            "TH",
}

// codeToName maps state codes back to their canonical names.
var codeToName = map[string]string{
	"BW": "Baden-Württemberg",
	"BY": "Bayern",
	"BE": "Berlin",
	"BB": "Brandenburg",
	"HB": "Bremen",
	"HH": "Hamburg",
	"HE": "Hessen",
	"MV": "Mecklenburg-Vorpommern",
	"NI": "Niedersachsen",
	"NW": "Nordrhein-Westfalen",
	"RP": "Rheinland-Pfalz",
	"SL": "Saarland",
	"SN": "Sachsen",
	"ST": "Sachsen-Anhalt",
	"SH": "Schleswig-Holstein",
	"TH": "Thüringen",
}

var umlauts = strings.NewReplacer(
	"ä", "ae", "ö", "oe", "ü", "ue", "ß", "ss",
)

func normalizeKey(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = umlauts.Replace(s)
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, " ", "")
	return s
}

// StateCode returns the two-letter code for a state name, tolerating umlaut
// transliterations and hyphen/space variants.
func StateCode(name string) (string, bool) {
	code, ok := stateCodes[normalizeKey(name)]
	return code, ok
}

// StateName returns the canonical name for a two-letter state code.
func StateName(code string) (string, bool) {
	name, ok := codeToName[strings.ToUpper(code)]
	return name, ok
}

// StateCodes returns all supported two-letter state codes.
func StateCodes() []string {
	codes := make([]string, 0, len(codeToName))
	for c := range codeToName {
		codes = append(codes, c)
	}
	return codes
}

// SameState reports whether two state names refer to the same state,
// comparing their normalized forms.
func SameState(a, b string) bool {
	return a != "" && normalizeKey(a) == normalizeKey(b)
}
