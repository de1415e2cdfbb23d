// Package chat implements the conversational architecture synthesis
// pipeline: one request-handling cycle that turns a chat message plus
// retrieved knowledge into a reply, an optional architecture graph, and an
// optional reconciled scope.
package chat

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"archsandbox/internal/catalog"
	"archsandbox/internal/graph"
	"archsandbox/internal/llm"
	"archsandbox/internal/session"
)

// CanvasAction tells the consuming UI what to do with the diagram.
type CanvasAction string

const (
	CanvasUpdate CanvasAction = "update"
	CanvasClear  CanvasAction = "clear"
	CanvasNone   CanvasAction = "none"
)

// ContextRetriever is the retrieval collaborator. It must not fail in a way
// that aborts a request; unavailability reads as empty context.
type ContextRetriever interface {
	Retrieve(query string, k int) string
}

// Request is one pipeline input.
type Request struct {
	Message   string
	SessionID string
	Graph     graph.Graph
	ChatWidth int
}

// Response is the assembled pipeline output.
type Response struct {
	Reply        string
	SessionID    string
	CanvasAction CanvasAction
	UpdatedGraph *graph.Graph
	UpdatedScope *graph.ScopeUpdate
}

// Pipeline composes the catalog, retriever, completion client, session
// store, and graph synthesizer into one request cycle. It never retains
// graphs across requests; the caller owns persistence.
type Pipeline struct {
	lib       *catalog.Library
	retriever ContextRetriever
	client    llm.Client
	sessions  *session.Store
	synth     *graph.Synthesizer
	composer  *PromptComposer
	logger    *zap.Logger
	topK      int
}

func NewPipeline(
	lib *catalog.Library,
	retriever ContextRetriever,
	client llm.Client,
	sessions *session.Store,
	synth *graph.Synthesizer,
	logger *zap.Logger,
) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		lib:       lib,
		retriever: retriever,
		client:    client,
		sessions:  sessions,
		synth:     synth,
		composer:  NewPromptComposer(lib),
		logger:    logger,
		topK:      0, // retriever default
	}
}

// Run executes one request cycle. Exactly one completion call is made; if it
// fails the whole request fails and no session history is committed.
func (p *Pipeline) Run(ctx context.Context, req Request) (Response, error) {
	sessionID := p.sessions.GetOrCreate(req.SessionID)

	retrieved := p.retriever.Retrieve(req.Message, p.topK)

	scope := req.Graph.Scope
	if scope == (graph.Scope{}) {
		scope = graph.DefaultScope()
	}

	history := p.sessions.History(sessionID)
	turns := make([]llm.Turn, len(history))
	for i, m := range history {
		turns[i] = llm.Turn{Role: m.Role, Content: m.Content}
	}

	systemPrompt := p.composer.Compose(retrieved, scope, req.ChatWidth)

	reply, err := p.client.Complete(ctx, systemPrompt, turns, req.Message)
	if err != nil {
		return Response{}, fmt.Errorf("chat: completion failed: %w", err)
	}

	cleaned, scopeUpdate := ReconcileScope(reply)
	if scopeUpdate != nil {
		scope = scopeUpdate.Apply(scope)
	}

	resp := Response{
		Reply:        cleaned,
		SessionID:    sessionID,
		CanvasAction: CanvasNone,
		UpdatedScope: scopeUpdate,
	}

	switch {
	case WantsClear(req.Message):
		cleared := graph.Graph{Scope: scope}
		resp.CanvasAction = CanvasClear
		resp.UpdatedGraph = &cleared
	case WantsCanvas(req.Message):
		mentions := ExtractMentions(p.lib, req.Message+" "+cleaned)
		if len(mentions) > 0 {
			g := p.synth.Synthesize(mentions, scope)
			resp.CanvasAction = CanvasUpdate
			resp.UpdatedGraph = &g
			p.logger.Debug("canvas updated",
				zap.String("session_id", sessionID),
				zap.Int("nodes", len(g.Nodes)),
				zap.Int("edges", len(g.Edges)))
		}
	}

	p.sessions.AppendExchange(sessionID, req.Message, cleaned)

	p.logger.Info("chat turn",
		zap.String("session_id", sessionID),
		zap.String("model", p.client.Name()),
		zap.String("canvas_action", string(resp.CanvasAction)),
		zap.Bool("scope_updated", scopeUpdate != nil),
		zap.Int("context_bytes", len(retrieved)))

	return resp, nil
}

// Sessions exposes the session store for the transport layer's history and
// delete endpoints.
func (p *Pipeline) Sessions() *session.Store { return p.sessions }
