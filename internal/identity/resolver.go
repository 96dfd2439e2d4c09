// Package identity derives the stable integer key that deduplicates an
// admissions result across pipeline runs.
package identity

import (
	"regexp"
	"strconv"
	"strings"

	"gradetl/internal/records"
)

// Result URLs embed the stable id as the digits after /result/.
var idFromURL = regexp.MustCompile(`/result/(\d+)`)

// Resolve extracts the stable identity of a raw record. It first searches
// the record URL for a /result/<digits> segment, then falls back to the
// explicit id field when that field is numeric. The first URL match wins;
// no other disambiguation is attempted. The boolean is false when the
// record carries no resolvable identity.
func Resolve(raw records.Raw) (int64, bool) {
	if m := idFromURL.FindStringSubmatch(raw.URL); m != nil {
		if id, err := strconv.ParseInt(m[1], 10, 64); err == nil && id > 0 {
			return id, true
		}
	}
	explicit := strings.TrimSpace(raw.ExplicitID)
	if explicit != "" {
		if id, err := strconv.ParseInt(explicit, 10, 64); err == nil && id > 0 {
			return id, true
		}
	}
	return 0, false
}
