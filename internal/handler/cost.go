package handler

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"archsandbox/internal/cost"
	"archsandbox/internal/graph"
)

// CostHandler prices architecture graphs on demand.
type CostHandler struct {
	estimator *cost.Estimator
	logger    *zap.Logger
}

func NewCostHandler(estimator *cost.Estimator, logger *zap.Logger) *CostHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CostHandler{estimator: estimator, logger: logger}
}

type costRequest struct {
	Architecture graph.Graph `json:"architecture"`
}

type costResponse struct {
	Estimate   cost.Estimate `json:"estimate"`
	Multiplier float64       `json:"multiplier"`
	Scope      graph.Scope   `json:"scope"`
}

// HandleEstimate handles POST /api/architecture/cost. A zero scope on the
// submitted graph is priced at the default scope.
func (h *CostHandler) HandleEstimate(w http.ResponseWriter, r *http.Request) {
	var req costRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if err := req.Architecture.Validate(); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "invalid architecture", err)
		return
	}

	scope := req.Architecture.Scope
	if scope == (graph.Scope{}) {
		scope = graph.DefaultScope()
	}

	respondJSON(w, http.StatusOK, costResponse{
		Estimate:   h.estimator.Estimate(req.Architecture.Nodes, scope),
		Multiplier: cost.Multiplier(scope),
		Scope:      scope,
	})
}
