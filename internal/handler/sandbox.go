package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"archsandbox/internal/cost"
	"archsandbox/internal/graph"
	"archsandbox/internal/sandbox"
)

// SandboxHandler publishes and serves shared architecture snapshots.
type SandboxHandler struct {
	store     *sandbox.Store
	estimator *cost.Estimator
	validate  *validator.Validate
	logger    *zap.Logger
}

func NewSandboxHandler(store *sandbox.Store, estimator *cost.Estimator, validate *validator.Validate, logger *zap.Logger) *SandboxHandler {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SandboxHandler{store: store, estimator: estimator, validate: validate, logger: logger}
}

type publishRequest struct {
	ProjectName  string      `json:"projectName" validate:"required,max=120"`
	Description  string      `json:"description" validate:"max=2000"`
	Architecture graph.Graph `json:"architectureJson"`
}

// HandlePublish handles POST /api/sandboxes. Total cost is computed
// server-side from the submitted graph and its scope.
func (h *SandboxHandler) HandlePublish(w http.ResponseWriter, r *http.Request) {
	var req publishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "invalid request", err)
		return
	}
	if err := req.Architecture.Validate(); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "invalid architecture", err)
		return
	}
	if len(req.Architecture.Nodes) == 0 {
		respondError(w, h.logger, http.StatusBadRequest, "architecture has no components", nil)
		return
	}

	scope := req.Architecture.Scope
	if scope == (graph.Scope{}) {
		scope = graph.DefaultScope()
		req.Architecture.Scope = scope
	}

	sb, err := h.store.Publish(r.Context(), sandbox.Sandbox{
		ProjectName:  strings.TrimSpace(req.ProjectName),
		Description:  strings.TrimSpace(req.Description),
		Architecture: req.Architecture,
		TotalCost:    h.estimator.Estimate(req.Architecture.Nodes, scope).Total,
	})
	if err != nil {
		respondError(w, h.logger, http.StatusInternalServerError, "publish failed", err)
		return
	}

	h.logger.Info("sandbox published",
		zap.String("sandbox_id", sb.ID),
		zap.Int("nodes", len(sb.Architecture.Nodes)),
		zap.Float64("total_cost", sb.TotalCost))
	respondJSON(w, http.StatusCreated, sb)
}

// HandleGet handles GET /api/sandboxes/{sandboxID}. Each hit counts a view.
func (h *SandboxHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "sandboxID"))
	sb, err := h.store.Get(r.Context(), id)
	if errors.Is(err, sandbox.ErrNotFound) {
		respondError(w, h.logger, http.StatusNotFound, "sandbox not found", nil)
		return
	}
	if err != nil {
		respondError(w, h.logger, http.StatusInternalServerError, "lookup failed", err)
		return
	}
	respondJSON(w, http.StatusOK, sb)
}

type listResponse struct {
	Sandboxes []sandbox.ListItem `json:"sandboxes"`
	Limit     int                `json:"limit"`
	Offset    int                `json:"offset"`
}

// HandleList handles GET /api/sandboxes with search, tags, cost range, and
// pagination query parameters.
func (h *SandboxHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := sandbox.Filters{
		Search: strings.TrimSpace(q.Get("search")),
		Limit:  queryInt(q.Get("limit"), sandbox.DefaultListLimit),
		Offset: queryInt(q.Get("offset"), 0),
	}
	if raw := strings.TrimSpace(q.Get("tags")); raw != "" {
		for _, tag := range strings.Split(raw, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				f.Tags = append(f.Tags, tag)
			}
		}
	}
	if v, err := strconv.ParseFloat(q.Get("min_cost"), 64); err == nil {
		f.MinCost = &v
	}
	if v, err := strconv.ParseFloat(q.Get("max_cost"), 64); err == nil {
		f.MaxCost = &v
	}

	items, err := h.store.List(r.Context(), f)
	if err != nil {
		respondError(w, h.logger, http.StatusInternalServerError, "list failed", err)
		return
	}
	if items == nil {
		items = []sandbox.ListItem{}
	}
	respondJSON(w, http.StatusOK, listResponse{Sandboxes: items, Limit: f.Limit, Offset: f.Offset})
}

func queryInt(raw string, fallback int) int {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || v < 0 {
		return fallback
	}
	return v
}
