package search

import "strings"

// Matches reports whether normalizedQuery occurs anywhere in the canonical
// form of candidate. The query must already have been through Normalize;
// it is compared as-is. An empty query matches every candidate.
func Matches(candidate, normalizedQuery string) bool {
	if normalizedQuery == "" {
		return true
	}
	return strings.Contains(Normalize(candidate), normalizedQuery)
}
