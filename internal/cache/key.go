package cache

import (
	"sort"
	"strings"
)

// Key derives the canonical cache key for an analysis over a set of
// documents. Document ids are sorted lexicographically before joining,
// so the key is independent of the order the caller listed them in.
func Key(docIDs []string, analysisType string) string {
	sorted := SortedIDs(docIDs)
	return analysisType + ":" + strings.Join(sorted, ",")
}

// SortedIDs returns a defensive sorted copy of the given ids with
// empty entries dropped.
func SortedIDs(docIDs []string) []string {
	sorted := make([]string, 0, len(docIDs))
	for _, id := range docIDs {
		if id != "" {
			sorted = append(sorted, id)
		}
	}
	sort.Strings(sorted)
	return sorted
}
