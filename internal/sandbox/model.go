package sandbox

import (
	"sort"
	"time"

	"archsandbox/internal/graph"
)

// Sandbox is one published, shareable architecture snapshot.
type Sandbox struct {
	ID           string      `json:"sandboxId"`
	ProjectName  string      `json:"projectName"`
	Description  string      `json:"description,omitempty"`
	Architecture graph.Graph `json:"architectureJson"`
	TechStack    []string    `json:"techStack"`
	TotalCost    float64     `json:"totalCost"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
	IsPublic     bool        `json:"isPublic"`
	Views        int         `json:"views"`
}

// ListItem is the list-view projection of a sandbox, without the graph body.
type ListItem struct {
	ID          string    `json:"sandboxId"`
	ProjectName string    `json:"projectName"`
	Description string    `json:"description,omitempty"`
	TechStack   []string  `json:"techStack"`
	TotalCost   float64   `json:"totalCost"`
	CreatedAt   time.Time `json:"createdAt"`
	Views       int       `json:"views"`
}

// Filters narrows List results. Zero values mean "no constraint".
type Filters struct {
	Search  string   // case-insensitive substring on project name
	Tags    []string // set membership on tech stack
	MinCost *float64
	MaxCost *float64
	Limit   int
	Offset  int
}

// DefaultListLimit bounds list pages when the caller does not set one.
const DefaultListLimit = 20

// TechStackOf derives the sorted, de-duplicated component labels of a graph.
func TechStackOf(g graph.Graph) []string {
	seen := make(map[string]struct{})
	for _, n := range g.Nodes {
		if n.Label != "" {
			seen[n.Label] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for label := range seen {
		out = append(out, label)
	}
	sort.Strings(out)
	return out
}

func (s Sandbox) listItem() ListItem {
	return ListItem{
		ID:          s.ID,
		ProjectName: s.ProjectName,
		Description: s.Description,
		TechStack:   s.TechStack,
		TotalCost:   s.TotalCost,
		CreatedAt:   s.CreatedAt,
		Views:       s.Views,
	}
}
