package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"archsandbox/internal/chat"
	"archsandbox/internal/graph"
	"archsandbox/internal/session"
)

// ChatHandler serves the chat pipeline over HTTP: one POST per turn plus
// session history and delete endpoints.
type ChatHandler struct {
	pipeline *chat.Pipeline
	validate *validator.Validate
	logger   *zap.Logger
}

func NewChatHandler(pipeline *chat.Pipeline, validate *validator.Validate, logger *zap.Logger) *ChatHandler {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChatHandler{pipeline: pipeline, validate: validate, logger: logger}
}

type chatRequest struct {
	Message   string       `json:"message" validate:"required,max=4000"`
	SessionID string       `json:"sessionId"`
	Graph     *graph.Graph `json:"currentArchitecture"`
	ChatWidth int          `json:"chatWidth" validate:"gte=0"`
}

type chatResponse struct {
	Reply        string             `json:"reply"`
	SessionID    string             `json:"sessionId"`
	CanvasAction chat.CanvasAction  `json:"canvasAction"`
	UpdatedGraph *graph.Graph       `json:"updatedArchitecture,omitempty"`
	UpdatedScope *graph.ScopeUpdate `json:"updatedScope,omitempty"`
}

// HandleChat handles POST /api/chat.
func (h *ChatHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "invalid request", err)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		respondError(w, h.logger, http.StatusBadRequest, "message is required", nil)
		return
	}

	in := chat.Request{
		Message:   req.Message,
		SessionID: strings.TrimSpace(req.SessionID),
		ChatWidth: req.ChatWidth,
	}
	if req.Graph != nil {
		if err := req.Graph.Validate(); err != nil {
			respondError(w, h.logger, http.StatusBadRequest, "invalid architecture", err)
			return
		}
		in.Graph = *req.Graph
	}

	out, err := h.pipeline.Run(r.Context(), in)
	if err != nil {
		respondError(w, h.logger, http.StatusBadGateway, "chat completion failed", err)
		return
	}

	respondJSON(w, http.StatusOK, chatResponse{
		Reply:        out.Reply,
		SessionID:    out.SessionID,
		CanvasAction: out.CanvasAction,
		UpdatedGraph: out.UpdatedGraph,
		UpdatedScope: out.UpdatedScope,
	})
}

type historyResponse struct {
	SessionID string            `json:"sessionId"`
	Messages  []session.Message `json:"messages"`
}

// HandleHistory handles GET /api/chat/sessions/{sessionID}.
func (h *ChatHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "sessionID"))
	msgs := h.pipeline.Sessions().History(id)
	if msgs == nil {
		respondError(w, h.logger, http.StatusNotFound, "session not found", nil)
		return
	}
	respondJSON(w, http.StatusOK, historyResponse{SessionID: id, Messages: msgs})
}

// HandleDeleteSession handles DELETE /api/chat/sessions/{sessionID}.
// Deleting an unknown session is a no-op.
func (h *ChatHandler) HandleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "sessionID"))
	h.pipeline.Sessions().Delete(id)
	w.WriteHeader(http.StatusNoContent)
}
