package normalize

import (
	"regexp"
	"strconv"
	"strings"
)

var numberPattern = regexp.MustCompile(`[-+]?\d+(?:\.\d+)?`)

// metricRange is one inclusive plausibility window for a score field.
type metricRange struct {
	lo, hi float64
}

// GRE totals span three scoring eras: per-section subscores (130-170), the
// post-2011 combined total (260-340), and the pre-2011 total (200-800). The
// union is deliberately the only heuristic; no cross-field disambiguation.
var (
	greRanges   = []metricRange{{130, 170}, {260, 340}, {200, 800}}
	greVRanges  = []metricRange{{130, 170}}
	greAWRanges = []metricRange{{0, 6}}
	gpaRanges   = []metricRange{{0, 10}}
)

// parseMetric extracts the first numeric substring from free text (e.g.
// "GPA 3.76") and accepts it only when it falls inside one of the given
// ranges. The second return distinguishes "absent, nothing supplied" (false)
// from "supplied but rejected" (true with nil value).
func parseMetric(text string, ranges []metricRange) (value *float64, supplied bool) {
	s := strings.TrimSpace(text)
	if s == "" {
		return nil, false
	}
	match := numberPattern.FindString(strings.ReplaceAll(s, ",", "."))
	if match == "" {
		return nil, true
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return nil, true
	}
	for _, r := range ranges {
		if v >= r.lo && v <= r.hi {
			return &v, true
		}
	}
	return nil, true
}
