package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"archsandbox/internal/catalog"
	"archsandbox/internal/graph"
	"archsandbox/internal/knowledge"
	"archsandbox/internal/llm"
	"archsandbox/internal/session"
)

func newTestPipeline(client llm.Client) *Pipeline {
	lib := catalog.Default()
	return NewPipeline(
		lib,
		knowledge.NewDefaultRetriever(),
		client,
		session.NewStore(),
		graph.NewSynthesizer(lib, graph.NewValidator(), graph.GridLayout),
		zap.NewNop(),
	)
}

func TestRun_PlainReplyNoCanvas(t *testing.T) {
	fake := llm.NewFakeClient("Use PostgreSQL for relational data.")
	p := newTestPipeline(fake)

	resp, err := p.Run(context.Background(), Request{Message: "hello", Graph: graph.Empty()})
	require.NoError(t, err)

	assert.Equal(t, CanvasNone, resp.CanvasAction)
	assert.Nil(t, resp.UpdatedGraph)
	assert.Nil(t, resp.UpdatedScope)
	assert.NotEmpty(t, resp.SessionID)
	assert.Equal(t, 1, fake.Calls(), "exactly one completion call per turn")

	h := p.Sessions().History(resp.SessionID)
	require.Len(t, h, 2)
	assert.Equal(t, "user", h[0].Role)
	assert.Equal(t, "assistant", h[1].Role)
}

func TestRun_CanvasIntentWithMentionsSynthesizesGraph(t *testing.T) {
	fake := llm.NewFakeClient("Suggested stack: `react` + `fastapi` + `postgres`.")
	p := newTestPipeline(fake)

	resp, err := p.Run(context.Background(), Request{
		Message: "design a simple web architecture please",
		Graph:   graph.Empty(),
	})
	require.NoError(t, err)

	assert.Equal(t, CanvasUpdate, resp.CanvasAction)
	require.NotNil(t, resp.UpdatedGraph)
	assert.Len(t, resp.UpdatedGraph.Nodes, 3)
	assert.Len(t, resp.UpdatedGraph.Edges, 2)
	require.NoError(t, resp.UpdatedGraph.Validate())
}

func TestRun_CanvasIntentWithoutMentionsIsNone(t *testing.T) {
	fake := llm.NewFakeClient("What scale are you targeting?")
	p := newTestPipeline(fake)

	resp, err := p.Run(context.Background(), Request{
		Message: "draw my dream infrastructure",
		Graph:   graph.Empty(),
	})
	require.NoError(t, err)
	assert.Equal(t, CanvasNone, resp.CanvasAction)
	assert.Nil(t, resp.UpdatedGraph)
}

func TestRun_ScopeBlockStrippedAndApplied(t *testing.T) {
	fake := llm.NewFakeClient("Scope noted.\n```json\n{\"scope_analysis\": {\"users\": 5000, \"trafficLevel\": 3}}\n```")
	p := newTestPipeline(fake)

	resp, err := p.Run(context.Background(), Request{Message: "we expect 5000 users", Graph: graph.Empty()})
	require.NoError(t, err)

	assert.Equal(t, "Scope noted.", resp.Reply)
	require.NotNil(t, resp.UpdatedScope)
	assert.Equal(t, 5000, *resp.UpdatedScope.Users)

	// The stripped reply, not the raw one, lands in history.
	h := p.Sessions().History(resp.SessionID)
	require.Len(t, h, 2)
	assert.Equal(t, "Scope noted.", h[1].Content)
}

func TestRun_ScopeFlowsIntoSynthesizedGraph(t *testing.T) {
	fake := llm.NewFakeClient("Here you go: `react` `fastapi`.\n```json\n{\"scope_analysis\": {\"users\": 20000}}\n```")
	p := newTestPipeline(fake)

	resp, err := p.Run(context.Background(), Request{
		Message: "build the architecture diagram",
		Graph:   graph.Empty(),
	})
	require.NoError(t, err)
	require.NotNil(t, resp.UpdatedGraph)
	assert.Equal(t, 20000, resp.UpdatedGraph.Scope.Users)
	// Unspecified fields keep their previous values.
	assert.Equal(t, 1, resp.UpdatedGraph.Scope.Regions)
}

func TestRun_ClearIntent(t *testing.T) {
	fake := llm.NewFakeClient("Canvas cleared.")
	p := newTestPipeline(fake)

	resp, err := p.Run(context.Background(), Request{
		Message: "clear the canvas",
		Graph:   graph.Empty(),
	})
	require.NoError(t, err)
	assert.Equal(t, CanvasClear, resp.CanvasAction)
	require.NotNil(t, resp.UpdatedGraph)
	assert.Empty(t, resp.UpdatedGraph.Nodes)
}

func TestRun_CompletionFailureCommitsNothing(t *testing.T) {
	fake := llm.NewFakeClient()
	fake.Err = errors.New("provider timeout")
	p := newTestPipeline(fake)

	sid := p.Sessions().GetOrCreate("")
	_, err := p.Run(context.Background(), Request{Message: "hi", SessionID: sid, Graph: graph.Empty()})
	require.Error(t, err)
	assert.Empty(t, p.Sessions().History(sid), "history must not be appended on failure")
}

func TestRun_ReusesKnownSession(t *testing.T) {
	fake := llm.NewFakeClient("first", "second")
	p := newTestPipeline(fake)

	resp1, err := p.Run(context.Background(), Request{Message: "one", Graph: graph.Empty()})
	require.NoError(t, err)
	resp2, err := p.Run(context.Background(), Request{Message: "two", SessionID: resp1.SessionID, Graph: graph.Empty()})
	require.NoError(t, err)

	assert.Equal(t, resp1.SessionID, resp2.SessionID)
	assert.Len(t, p.Sessions().History(resp1.SessionID), 4)
	// The second call saw the first exchange as history.
	require.Len(t, fake.LastHistory, 2)
	assert.Equal(t, "one", fake.LastHistory[0].Content)
}

func TestRun_PromptCarriesCatalogAndContext(t *testing.T) {
	fake := llm.NewFakeClient("ok")
	p := newTestPipeline(fake)

	_, err := p.Run(context.Background(), Request{Message: "which database for relational data?", Graph: graph.Empty()})
	require.NoError(t, err)

	assert.Contains(t, fake.LastSystemPrompt, "Available Component Library:")
	assert.Contains(t, fake.LastSystemPrompt, "scope_analysis")
	assert.Contains(t, fake.LastSystemPrompt, "Relevant Knowledge Base Context:")
}
