package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var months = map[string]time.Month{
	"JAN": time.January, "FEB": time.February, "MAR": time.March,
	"APR": time.April, "MAY": time.May, "JUN": time.June,
	"JUL": time.July, "AUG": time.August, "SEP": time.September,
	"OCT": time.October, "NOV": time.November, "DEC": time.December,
}

var (
	ordinalSuffix = regexp.MustCompile(`(\d)(st|nd|rd|th)\b`)
	isoDate       = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	slashDate     = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{2,4})$`)
	monthDayYear  = regexp.MustCompile(`^([A-Za-z]{3,12})\s+(\d{1,2})(?:,\s*(\d{4}))?$`)
	dayMonthYear  = regexp.MustCompile(`^(\d{1,2})\s+([A-Za-z]{3,12})(?:\s*(\d{4}))?$`)
	fourDigitYear = regexp.MustCompile(`(19|20)\d{2}`)
)

// parseDate attempts the ordered date-format ladder and returns the parsed
// calendar date. Forms lacking a year borrow fallbackYear; when that is also
// empty the form fails. The first matching pattern wins.
func parseDate(text, fallbackYear string) (time.Time, bool) {
	s := strings.TrimSpace(text)
	if s == "" {
		return time.Time{}, false
	}
	s = ordinalSuffix.ReplaceAllString(s, "$1")

	if m := isoDate.FindStringSubmatch(s); m != nil {
		return makeDate(atoi(m[1]), atoi(m[2]), atoi(m[3]))
	}
	if m := slashDate.FindStringSubmatch(s); m != nil {
		year := atoi(m[3])
		if len(m[3]) == 2 {
			year += 2000
		}
		return makeDate(year, atoi(m[1]), atoi(m[2]))
	}
	if m := monthDayYear.FindStringSubmatch(s); m != nil {
		month, ok := monthByName(m[1])
		if !ok {
			return time.Time{}, false
		}
		year := m[3]
		if year == "" {
			year = fallbackYear
		}
		if year == "" {
			return time.Time{}, false
		}
		return makeDate(atoi(year), int(month), atoi(m[2]))
	}
	if m := dayMonthYear.FindStringSubmatch(s); m != nil {
		month, ok := monthByName(m[2])
		if !ok {
			return time.Time{}, false
		}
		year := m[3]
		if year == "" {
			year = fallbackYear
		}
		if year == "" {
			return time.Time{}, false
		}
		return makeDate(atoi(year), int(month), atoi(m[1]))
	}
	return time.Time{}, false
}

// makeDate builds a UTC date and rejects impossible calendar combinations
// (time.Date would silently normalize Feb 30 into March).
func makeDate(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 || year < 1000 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

func monthByName(name string) (time.Month, bool) {
	key := strings.ToUpper(name)
	if len(key) > 3 {
		key = key[:3]
	}
	month, ok := months[key]
	return month, ok
}

// yearHint returns the first 4-digit year found in any of the given raw
// fields, used as the borrowed year for month/day date forms.
func yearHint(fields ...string) string {
	for _, field := range fields {
		if m := fourDigitYear.FindString(field); m != "" {
			return m
		}
	}
	return ""
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
