package catalog

import (
	"fmt"
	"strings"
)

// Component is a single catalog entry. Immutable after load.
type Component struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	BaseCost float64 `json:"baseCost"`
	Icon     string  `json:"icon"`
	Color    string  `json:"color"`
}

// Category groups components for display and adjacency rules.
type Category struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Components []Component `json:"components"`
}

// Library is the read-only component catalog.
type Library struct {
	categories []Category
	byID       map[string]Component
}

// NewLibrary builds a library from the given categories.
// Component ids must be unique across the whole catalog.
func NewLibrary(categories []Category) (*Library, error) {
	byID := make(map[string]Component)
	for _, cat := range categories {
		for _, comp := range cat.Components {
			id := strings.TrimSpace(comp.ID)
			if id == "" {
				return nil, fmt.Errorf("catalog: empty component id in category %q", cat.ID)
			}
			if _, exists := byID[id]; exists {
				return nil, fmt.Errorf("catalog: duplicate component id %q", id)
			}
			comp.ID = id
			comp.Category = cat.ID
			byID[id] = comp
		}
	}
	return &Library{categories: categories, byID: byID}, nil
}

// Default returns the built-in catalog. Panics only on a malformed
// built-in table, which is a programming error.
func Default() *Library {
	lib, err := NewLibrary(defaultCategories())
	if err != nil {
		panic(err)
	}
	return lib
}

// ByID looks up a component by its catalog id.
func (l *Library) ByID(id string) (Component, bool) {
	c, ok := l.byID[strings.TrimSpace(id)]
	return c, ok
}

// Categories returns the catalog grouped by category, in declaration order.
func (l *Library) Categories() []Category {
	return l.categories
}

// Components returns every component in declaration order.
func (l *Library) Components() []Component {
	var out []Component
	for _, cat := range l.categories {
		out = append(out, cat.Components...)
	}
	return out
}

// PromptText renders the catalog the way the completion prompt expects it:
// category headers with id, then one line per component with id and cost.
func (l *Library) PromptText() string {
	var b strings.Builder
	b.WriteString("Available Component Library:")
	for _, cat := range l.categories {
		fmt.Fprintf(&b, "\n\n%s (%s):", cat.Name, cat.ID)
		for _, comp := range cat.Components {
			cost := "Free"
			if comp.BaseCost > 0 {
				cost = fmt.Sprintf("$%g/mo", comp.BaseCost)
			}
			fmt.Fprintf(&b, "\n  - %s (ID: %s) - %s", comp.Name, comp.ID, cost)
		}
	}
	return b.String()
}
