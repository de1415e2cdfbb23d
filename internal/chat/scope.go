package chat

import (
	"encoding/json"
	"math"
	"regexp"
	"strings"

	"archsandbox/internal/graph"
)

// fencedJSON locates a ```json fenced block carrying a single object.
// Only the first match is ever considered.
var fencedJSON = regexp.MustCompile("(?s)```json\\s*(\\{.*?\\})\\s*```")

type scopeAnalysis struct {
	Users        *float64 `json:"users"`
	TrafficLevel *float64 `json:"trafficLevel"`
	DataVolumeGB *float64 `json:"dataVolumeGB"`
	Regions      *float64 `json:"regions"`
	Availability *float64 `json:"availability"`
	// estimatedCost and any other keys are ignored: the model's cost hint is
	// not part of the scope.
}

type scopeEnvelope struct {
	ScopeAnalysis *scopeAnalysis `json:"scope_analysis"`
}

// ReconcileScope extracts the scope_analysis block the prompt contract asks
// the model to emit. It is a total function: on any malformed or missing
// block it returns the reply unchanged and no update. When a block parses,
// the exact matched substring is removed from the reply and the surrounding
// whitespace trimmed.
func ReconcileScope(reply string) (string, *graph.ScopeUpdate) {
	m := fencedJSON.FindStringSubmatchIndex(reply)
	if m == nil {
		return reply, nil
	}
	block := reply[m[0]:m[1]]
	body := reply[m[2]:m[3]]

	var env scopeEnvelope
	if err := json.Unmarshal([]byte(body), &env); err != nil || env.ScopeAnalysis == nil {
		return reply, nil
	}

	a := env.ScopeAnalysis
	update := &graph.ScopeUpdate{
		Users:        toInt(a.Users),
		TrafficLevel: toInt(a.TrafficLevel),
		DataVolumeGB: a.DataVolumeGB,
		Regions:      toInt(a.Regions),
		Availability: a.Availability,
	}

	cleaned := strings.TrimSpace(strings.Replace(reply, block, "", 1))
	return cleaned, update
}

func toInt(v *float64) *int {
	if v == nil {
		return nil
	}
	n := int(math.Round(*v))
	return &n
}
