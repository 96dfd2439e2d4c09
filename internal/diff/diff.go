// Package diff partitions fetched raw records into those already persisted
// and those the pipeline has not seen, so the expensive standardization
// collaborator only runs on the delta.
package diff

import (
	"gradetl/internal/identity"
	"gradetl/internal/records"
)

// Partition splits raws into records whose resolved identity is in known and
// records that are new. A record with no resolvable identity cannot be in
// the known bucket and is returned as new; downstream it is only ever
// counted as skipped.
func Partition(raws []records.Raw, known map[int64]struct{}) (seen, fresh []records.Raw) {
	for _, raw := range raws {
		id, ok := identity.Resolve(raw)
		if ok {
			if _, exists := known[id]; exists {
				seen = append(seen, raw)
				continue
			}
		}
		fresh = append(fresh, raw)
	}
	return seen, fresh
}
