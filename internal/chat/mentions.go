package chat

import (
	"sort"
	"strings"

	"archsandbox/internal/catalog"
)

// ExtractMentions scans text for catalog components referenced by id or by
// display name and returns the deduplicated ids, sorted for determinism.
// Matching is case-insensitive substring matching without word-boundary
// checks; a component name that happens to be a substring of an unrelated
// word will false-positive. That trade-off favors recall and is kept on
// purpose.
func ExtractMentions(lib *catalog.Library, text string) []string {
	lower := strings.ToLower(text)
	seen := make(map[string]struct{})
	for _, comp := range lib.Components() {
		if strings.Contains(lower, strings.ToLower(comp.ID)) ||
			strings.Contains(lower, strings.ToLower(comp.Name)) {
			seen[comp.ID] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
