package graph

import (
	"archsandbox/internal/catalog"
)

// Synthesizer builds and mutates architecture graphs from catalog component
// ids. Unknown ids are skipped; the graph is built best-effort from whatever
// resolves.
type Synthesizer struct {
	lib       *catalog.Library
	validator *Validator
	layout    LayoutFunc
}

// NewSynthesizer wires a synthesizer over the given catalog and adjacency
// validator. A nil layout falls back to GridLayout.
func NewSynthesizer(lib *catalog.Library, validator *Validator, layout LayoutFunc) *Synthesizer {
	if layout == nil {
		layout = GridLayout
	}
	return &Synthesizer{lib: lib, validator: validator, layout: layout}
}

// categoryColumn returns the catalog declaration index of a category, used as
// the layout column.
func (s *Synthesizer) categoryColumn(category string) int {
	for i, cat := range s.lib.Categories() {
		if cat.ID == category {
			return i
		}
	}
	return len(s.lib.Categories())
}

func (s *Synthesizer) newNode(alloc *idAllocator, comp catalog.Component, row int) Node {
	return Node{
		ID:          alloc.next(comp.ID),
		ComponentID: comp.ID,
		Category:    comp.Category,
		Label:       comp.Name,
		Icon:        comp.Icon,
		Color:       comp.Color,
		Position:    s.layout(s.categoryColumn(comp.Category), row),
	}
}

// Synthesize builds a graph from the given component ids and scope.
// Edges are auto-wired along the fixed category-pair walk: for each pair,
// every source-category node connects to every target-category node, subject
// to the validator. Wiring order follows the pair list, then node insertion
// order within each category.
func (s *Synthesizer) Synthesize(componentIDs []string, scope Scope) Graph {
	g := Graph{Scope: scope}
	alloc := newIDAllocator()

	byCategory := make(map[string][]Node)
	rows := make(map[string]int)
	for _, id := range componentIDs {
		comp, ok := s.lib.ByID(id)
		if !ok {
			continue
		}
		node := s.newNode(alloc, comp, rows[comp.Category])
		rows[comp.Category]++
		g.Nodes = append(g.Nodes, node)
		byCategory[comp.Category] = append(byCategory[comp.Category], node)
	}

	for _, pair := range wiringOrder {
		sources := byCategory[pair.Source]
		targets := byCategory[pair.Target]
		if len(sources) == 0 || len(targets) == 0 {
			continue
		}
		if !s.validator.Allowed(pair.Source, pair.Target) {
			continue
		}
		for _, src := range sources {
			for _, tgt := range targets {
				g.Edges = append(g.Edges, Edge{
					ID:     alloc.next("e"),
					Source: src.ID,
					Target: tgt.ID,
				})
			}
		}
	}
	return g
}

// AddComponent adds one node for componentID to the graph. When connectTo
// names an existing node whose category pairs validly with the new node's
// category, a single edge from that node to the new one is added as well.
// An unknown component id leaves the graph unchanged.
func (s *Synthesizer) AddComponent(g Graph, componentID, connectTo string) Graph {
	comp, ok := s.lib.ByID(componentID)
	if !ok {
		return g
	}
	existing := make([]string, 0, len(g.Nodes)+len(g.Edges))
	row := 0
	for _, n := range g.Nodes {
		existing = append(existing, n.ID)
		if n.Category == comp.Category {
			row++
		}
	}
	for _, e := range g.Edges {
		existing = append(existing, e.ID)
	}
	alloc := newIDAllocator(existing...)

	node := s.newNode(alloc, comp, row)
	g.Nodes = append(g.Nodes, node)

	if connectTo != "" {
		if src, ok := g.NodeByID(connectTo); ok && s.validator.Allowed(src.Category, node.Category) {
			g.Edges = append(g.Edges, Edge{
				ID:     alloc.next("e"),
				Source: src.ID,
				Target: node.ID,
			})
		}
	}
	return g
}

// RemoveComponent removes the node with the given id together with every
// edge touching it. Removing an unknown node id is a no-op.
func (s *Synthesizer) RemoveComponent(g Graph, nodeID string) Graph {
	nodes := g.Nodes[:0:0]
	for _, n := range g.Nodes {
		if n.ID != nodeID {
			nodes = append(nodes, n)
		}
	}
	edges := g.Edges[:0:0]
	for _, e := range g.Edges {
		if e.Source != nodeID && e.Target != nodeID {
			edges = append(edges, e)
		}
	}
	g.Nodes = nodes
	g.Edges = edges
	return g
}
