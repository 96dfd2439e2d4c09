package normalize

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	squashedTerm = regexp.MustCompile(`^(F|FA|FALL|S|SP|SPR|SPRING|SU|SUM|SUMMER|W|WIN|WINTER)(\d{2,4})$`)
	spacedTerm   = regexp.MustCompile(`^([A-Za-z]+)\s+(\d{2,4})$`)

	titleCaser = cases.Title(language.English)
)

// Term canonicalizes season/year forms like "f20", "Fall 20", or
// "SPRING 2024" into "{Season} {4-digit-year}". Unrecognized forms pass
// through unchanged as free text.
func Term(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	squashed := strings.ToUpper(trimmed)
	for _, r := range []string{".", "-", "_", " "} {
		squashed = strings.ReplaceAll(squashed, r, "")
	}

	var code, year string
	if m := squashedTerm.FindStringSubmatch(squashed); m != nil {
		code, year = m[1], m[2]
	} else if m := spacedTerm.FindStringSubmatch(trimmed); m != nil {
		code, year = strings.ToUpper(m[1]), m[2]
	} else {
		return trimmed
	}

	season := seasonName(code)
	if season == "" {
		return trimmed
	}

	y, err := strconv.Atoi(year)
	if err != nil {
		return trimmed
	}
	if len(year) == 2 {
		y += 2000
	}
	return season + " " + strconv.Itoa(y)
}

func seasonName(code string) string {
	var season string
	switch {
	case strings.HasPrefix(code, "SU"):
		season = "summer"
	case strings.HasPrefix(code, "F"):
		season = "fall"
	case strings.HasPrefix(code, "S"):
		season = "spring"
	case strings.HasPrefix(code, "W"):
		season = "winter"
	default:
		return ""
	}
	return titleCaser.String(season)
}
