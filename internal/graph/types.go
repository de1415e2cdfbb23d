package graph

// Position is an on-canvas coordinate.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node is one placed component instance. The same catalog component may
// appear several times, each with a distinct node id.
type Node struct {
	ID          string   `json:"id"`
	ComponentID string   `json:"componentId"`
	Category    string   `json:"category"`
	Label       string   `json:"label"`
	Icon        string   `json:"icon,omitempty"`
	Color       string   `json:"color,omitempty"`
	Position    Position `json:"position"`
}

// Edge is a directed connection between two nodes of the same graph.
type Edge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// Scope holds the sizing parameters driving cost estimation.
type Scope struct {
	Users        int     `json:"users"`
	TrafficLevel int     `json:"trafficLevel"`
	DataVolumeGB float64 `json:"dataVolumeGB"`
	Regions      int     `json:"regions"`
	Availability float64 `json:"availability"`
}

// DefaultScope returns the minimal scope every graph starts with.
func DefaultScope() Scope {
	return Scope{
		Users:        100,
		TrafficLevel: 1,
		DataVolumeGB: 10,
		Regions:      1,
		Availability: 99.9,
	}
}

// ScopeUpdate is a partial scope; nil fields mean "leave unchanged".
type ScopeUpdate struct {
	Users        *int     `json:"users,omitempty"`
	TrafficLevel *int     `json:"trafficLevel,omitempty"`
	DataVolumeGB *float64 `json:"dataVolumeGB,omitempty"`
	Regions      *int     `json:"regions,omitempty"`
	Availability *float64 `json:"availability,omitempty"`
}

// IsZero reports whether the update carries no fields.
func (u ScopeUpdate) IsZero() bool {
	return u.Users == nil && u.TrafficLevel == nil && u.DataVolumeGB == nil &&
		u.Regions == nil && u.Availability == nil
}

// Apply merges the update into s and returns the result.
func (u ScopeUpdate) Apply(s Scope) Scope {
	if u.Users != nil {
		s.Users = *u.Users
	}
	if u.TrafficLevel != nil {
		s.TrafficLevel = *u.TrafficLevel
	}
	if u.DataVolumeGB != nil {
		s.DataVolumeGB = *u.DataVolumeGB
	}
	if u.Regions != nil {
		s.Regions = *u.Regions
	}
	if u.Availability != nil {
		s.Availability = *u.Availability
	}
	return s
}

// Graph is the node/edge/scope structure representing a designed system.
// Nodes keep insertion order.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
	Scope Scope  `json:"scope"`
}

// Empty returns a graph with no nodes and the default scope.
func Empty() Graph {
	return Graph{Scope: DefaultScope()}
}

// NodeByID returns the node with the given id, if present.
func (g Graph) NodeByID(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Validate checks the graph invariants: unique node ids and no edge whose
// endpoint is missing from the node set.
func (g Graph) Validate() error {
	seen := make(map[string]struct{}, len(g.Nodes))
	for _, n := range g.Nodes {
		if _, dup := seen[n.ID]; dup {
			return &InvariantError{Kind: "duplicate node id", ID: n.ID}
		}
		seen[n.ID] = struct{}{}
	}
	for _, e := range g.Edges {
		if _, ok := seen[e.Source]; !ok {
			return &InvariantError{Kind: "dangling edge source", ID: e.Source}
		}
		if _, ok := seen[e.Target]; !ok {
			return &InvariantError{Kind: "dangling edge target", ID: e.Target}
		}
	}
	return nil
}

// InvariantError reports a violated graph invariant.
type InvariantError struct {
	Kind string
	ID   string
}

func (e *InvariantError) Error() string {
	return "graph: " + e.Kind + ": " + e.ID
}
