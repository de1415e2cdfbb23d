package graph

import (
	"fmt"
	"strings"
	"unicode"
)

// idAllocator hands out unique node and edge ids within one graph.
// Ids have the shape "<slug>-<n>" where n is a per-slug counter, so the
// output is deterministic for a given sequence of requests.
type idAllocator struct {
	used    map[string]struct{}
	counter map[string]int
}

// newIDAllocator creates an allocator with the given ids pre-reserved.
func newIDAllocator(existing ...string) *idAllocator {
	a := &idAllocator{
		used:    make(map[string]struct{}, len(existing)+8),
		counter: make(map[string]int, len(existing)+8),
	}
	for _, id := range existing {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		a.used[id] = struct{}{}
	}
	return a
}

// next returns a fresh unique id derived from base.
func (a *idAllocator) next(base string) string {
	slug := slugify(base)
	if slug == "" {
		slug = "node"
	}
	n := a.counter[slug]
	for {
		n++
		candidate := fmt.Sprintf("%s-%d", slug, n)
		if _, taken := a.used[candidate]; taken {
			continue
		}
		a.used[candidate] = struct{}{}
		a.counter[slug] = n
		return candidate
	}
}

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	lastDash := false
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}
