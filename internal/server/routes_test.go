package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"archsandbox/internal/catalog"
	"archsandbox/internal/chat"
	"archsandbox/internal/cost"
	"archsandbox/internal/graph"
	"archsandbox/internal/handler"
	"archsandbox/internal/knowledge"
	"archsandbox/internal/llm"
	"archsandbox/internal/sandbox"
	"archsandbox/internal/session"
)

func newTestServer(t *testing.T, client llm.Client) *httptest.Server {
	t.Helper()

	lib := catalog.Default()
	pipeline := chat.NewPipeline(
		lib,
		knowledge.NewDefaultRetriever(),
		client,
		session.NewStore(),
		graph.NewSynthesizer(lib, graph.NewValidator(), nil),
		zap.NewNop(),
	)
	estimator := cost.NewEstimator(lib)
	v := validator.New()

	router := NewRouter(
		handler.NewChatHandler(pipeline, v, zap.NewNop()),
		handler.NewCostHandler(estimator, zap.NewNop()),
		handler.NewSandboxHandler(sandbox.New(), estimator, v, zap.NewNop()),
	)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, llm.NewFakeClient())
	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[map[string]string](t, resp)
	assert.Equal(t, "ok", body["status"])
}

func TestChat_PlainReply(t *testing.T) {
	srv := newTestServer(t, llm.NewFakeClient("Hello! How can I help?"))

	resp := postJSON(t, srv.URL+"/api/chat", map[string]any{"message": "hello"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[map[string]any](t, resp)
	assert.Equal(t, "Hello! How can I help?", body["reply"])
	assert.Equal(t, "none", body["canvasAction"])
	assert.NotEmpty(t, body["sessionId"])
	assert.Nil(t, body["updatedArchitecture"])
}

func TestChat_CanvasUpdate(t *testing.T) {
	srv := newTestServer(t, llm.NewFakeClient("Use `react` with `fastapi` and `postgres`."))

	resp := postJSON(t, srv.URL+"/api/chat", map[string]any{
		"message": "Design a system architecture for my app",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[struct {
		CanvasAction string       `json:"canvasAction"`
		UpdatedGraph *graph.Graph `json:"updatedArchitecture"`
	}](t, resp)
	assert.Equal(t, "update", body.CanvasAction)
	require.NotNil(t, body.UpdatedGraph)
	assert.Len(t, body.UpdatedGraph.Nodes, 3)
	assert.Len(t, body.UpdatedGraph.Edges, 2)
	require.NoError(t, body.UpdatedGraph.Validate())
}

func TestChat_ValidationErrors(t *testing.T) {
	srv := newTestServer(t, llm.NewFakeClient())

	resp := postJSON(t, srv.URL+"/api/chat", map[string]any{"message": ""})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp, err := http.Post(srv.URL+"/api/chat", "application/json", bytes.NewReader([]byte("{not json")))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestChat_CompletionFailure(t *testing.T) {
	fake := llm.NewFakeClient()
	fake.Err = fmt.Errorf("upstream unavailable")
	srv := newTestServer(t, fake)

	resp := postJSON(t, srv.URL+"/api/chat", map[string]any{"message": "hello"})
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	resp.Body.Close()
}

func TestChat_SessionHistoryAndDelete(t *testing.T) {
	srv := newTestServer(t, llm.NewFakeClient("first", "second"))

	resp := postJSON(t, srv.URL+"/api/chat", map[string]any{"message": "one"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	first := decode[map[string]any](t, resp)
	sessionID := first["sessionId"].(string)

	resp = postJSON(t, srv.URL+"/api/chat", map[string]any{"message": "two", "sessionId": sessionID})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	second := decode[map[string]any](t, resp)
	assert.Equal(t, sessionID, second["sessionId"])

	resp, err := http.Get(srv.URL + "/api/chat/sessions/" + sessionID)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	hist := decode[struct {
		SessionID string            `json:"sessionId"`
		Messages  []session.Message `json:"messages"`
	}](t, resp)
	require.Len(t, hist.Messages, 4)
	assert.Equal(t, "user", hist.Messages[0].Role)
	assert.Equal(t, "one", hist.Messages[0].Content)
	assert.Equal(t, "assistant", hist.Messages[3].Role)
	assert.Equal(t, "second", hist.Messages[3].Content)

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/api/chat/sessions/"+sessionID, nil)
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp, err = http.Get(srv.URL + "/api/chat/sessions/" + sessionID)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestCostEstimate(t *testing.T) {
	srv := newTestServer(t, llm.NewFakeClient())

	arch := graph.Graph{
		Nodes: []graph.Node{
			{ID: "n1", ComponentID: "fastapi"},
			{ID: "n2", ComponentID: "postgres"},
		},
		Scope: graph.DefaultScope(),
	}
	resp := postJSON(t, srv.URL+"/api/architecture/cost", map[string]any{"architecture": arch})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[struct {
		Estimate   cost.Estimate `json:"estimate"`
		Multiplier float64       `json:"multiplier"`
	}](t, resp)
	assert.Equal(t, 1.0, body.Multiplier)
	assert.Equal(t, 40.0, body.Estimate.Total)
	assert.Len(t, body.Estimate.Breakdown, 2)
}

func TestCostEstimate_RejectsDanglingEdge(t *testing.T) {
	srv := newTestServer(t, llm.NewFakeClient())

	arch := graph.Graph{
		Nodes: []graph.Node{{ID: "n1", ComponentID: "fastapi"}},
		Edges: []graph.Edge{{ID: "e1", Source: "n1", Target: "missing"}},
	}
	resp := postJSON(t, srv.URL+"/api/architecture/cost", map[string]any{"architecture": arch})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestSandbox_PublishGetList(t *testing.T) {
	srv := newTestServer(t, llm.NewFakeClient())

	arch := graph.Graph{
		Nodes: []graph.Node{
			{ID: "n1", ComponentID: "react", Label: "React"},
			{ID: "n2", ComponentID: "fastapi", Label: "FastAPI"},
		},
		Edges: []graph.Edge{{ID: "e1", Source: "n1", Target: "n2"}},
		Scope: graph.DefaultScope(),
	}

	resp := postJSON(t, srv.URL+"/api/sandboxes", map[string]any{
		"projectName":      "demo",
		"description":      "a demo stack",
		"architectureJson": arch,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	published := decode[sandbox.Sandbox](t, resp)
	require.Len(t, published.ID, 8)
	assert.Equal(t, []string{"FastAPI", "React"}, published.TechStack)
	assert.Equal(t, 15.0, published.TotalCost)
	assert.Equal(t, 0, published.Views)

	resp, err := http.Get(srv.URL + "/api/sandboxes/" + published.ID)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[sandbox.Sandbox](t, resp)
	assert.Equal(t, 1, got.Views)
	assert.Len(t, got.Architecture.Nodes, 2)

	resp, err = http.Get(srv.URL + "/api/sandboxes?tags=react&search=de")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[struct {
		Sandboxes []sandbox.ListItem `json:"sandboxes"`
	}](t, resp)
	require.Len(t, list.Sandboxes, 1)
	assert.Equal(t, published.ID, list.Sandboxes[0].ID)
}

func TestSandbox_GetUnknown(t *testing.T) {
	srv := newTestServer(t, llm.NewFakeClient())
	resp, err := http.Get(srv.URL + "/api/sandboxes/deadbeef")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestSandbox_PublishRequiresNodes(t *testing.T) {
	srv := newTestServer(t, llm.NewFakeClient())
	resp := postJSON(t, srv.URL+"/api/sandboxes", map[string]any{
		"projectName":      "empty",
		"architectureJson": graph.Empty(),
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}
