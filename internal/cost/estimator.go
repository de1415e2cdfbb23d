// Package cost turns a set of placed components and a scope into a monthly
// cost estimate. The estimate is a pure function of its inputs and is
// monotonic non-decreasing in every scope dimension.
package cost

import (
	"math"

	"archsandbox/internal/catalog"
	"archsandbox/internal/graph"
)

// Item is one node's share of the estimate.
type Item struct {
	NodeID      string  `json:"nodeId"`
	ComponentID string  `json:"componentId"`
	Label       string  `json:"label"`
	BaseCost    float64 `json:"baseCost"`
	Monthly     float64 `json:"monthly"`
}

// Estimate is the total plus the per-node breakdown.
type Estimate struct {
	Total     float64 `json:"total"`
	Breakdown []Item  `json:"breakdown"`
}

// Estimator prices graphs against the component catalog.
type Estimator struct {
	lib *catalog.Library
}

func NewEstimator(lib *catalog.Library) *Estimator {
	return &Estimator{lib: lib}
}

// Estimate sums each node's base cost scaled by the scope multiplier.
// Nodes whose component id is unknown contribute nothing. At the minimal
// default scope the multiplier is exactly 1, so the total equals the sum of
// base costs.
func (e *Estimator) Estimate(nodes []graph.Node, scope graph.Scope) Estimate {
	mult := Multiplier(scope)
	out := Estimate{Breakdown: make([]Item, 0, len(nodes))}
	for _, n := range nodes {
		comp, ok := e.lib.ByID(n.ComponentID)
		if !ok {
			continue
		}
		monthly := round2(comp.BaseCost * mult)
		out.Breakdown = append(out.Breakdown, Item{
			NodeID:      n.ID,
			ComponentID: comp.ID,
			Label:       comp.Name,
			BaseCost:    comp.BaseCost,
			Monthly:     monthly,
		})
		out.Total += monthly
	}
	out.Total = round2(out.Total)
	return out
}

// Multiplier maps a scope onto a single scaling factor. Each dimension
// contributes a step (or, for regions, linear) factor that is 1 at the
// minimal default and never decreases as the dimension grows.
func Multiplier(s graph.Scope) float64 {
	return usersFactor(s.Users) *
		trafficFactor(s.TrafficLevel) *
		dataFactor(s.DataVolumeGB) *
		regionsFactor(s.Regions) *
		availabilityFactor(s.Availability)
}

func usersFactor(users int) float64 {
	switch {
	case users <= 1000:
		return 1.0
	case users <= 10000:
		return 1.2
	case users <= 100000:
		return 1.5
	default:
		return 2.0
	}
}

func trafficFactor(level int) float64 {
	switch {
	case level <= 1:
		return 1.0
	case level == 2:
		return 1.25
	case level == 3:
		return 1.5
	case level == 4:
		return 2.0
	default:
		return 3.0
	}
}

func dataFactor(gb float64) float64 {
	switch {
	case gb <= 50:
		return 1.0
	case gb <= 500:
		return 1.15
	case gb <= 5000:
		return 1.4
	default:
		return 1.8
	}
}

func regionsFactor(regions int) float64 {
	if regions <= 1 {
		return 1.0
	}
	// Each extra region replicates roughly half the footprint.
	return 1.0 + 0.5*float64(regions-1)
}

func availabilityFactor(pct float64) float64 {
	switch {
	case pct <= 99.9:
		return 1.0
	case pct <= 99.95:
		return 1.1
	default:
		return 1.25
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
