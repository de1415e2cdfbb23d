package graph

// CategoryPair is a directed (source, target) category adjacency.
type CategoryPair struct {
	Source string
	Target string
}

// wiringOrder is the fixed, ordered list of category pairs the synthesizer
// walks when auto-wiring a graph. Order matters: it defines the total order
// over produced edges.
var wiringOrder = []CategoryPair{
	{"frontend", "backend"},
	{"backend", "database"},
	{"backend", "cache"},
	{"backend", "auth"},
	{"auth", "database"},
}

// Validator answers whether a directed category pair may be connected.
type Validator struct {
	allowed map[CategoryPair]struct{}
}

// NewValidator returns a validator over the default adjacency table plus any
// extra pairs.
func NewValidator(extra ...CategoryPair) *Validator {
	v := &Validator{allowed: make(map[CategoryPair]struct{})}
	for _, p := range wiringOrder {
		v.allowed[p] = struct{}{}
	}
	for _, p := range defaultExtraPairs {
		v.allowed[p] = struct{}{}
	}
	for _, p := range extra {
		v.allowed[p] = struct{}{}
	}
	return v
}

// defaultExtraPairs are permitted connections beyond the auto-wiring walk.
// They only come into play for incremental AddComponent connections.
var defaultExtraPairs = []CategoryPair{
	{"frontend", "auth"},
	{"frontend", "cache"},
	{"backend", "hosting"},
	{"frontend", "hosting"},
	{"backend", "monitoring"},
}

// Allowed reports whether a directed edge from source category to target
// category is permitted.
func (v *Validator) Allowed(source, target string) bool {
	_, ok := v.allowed[CategoryPair{Source: source, Target: target}]
	return ok
}
