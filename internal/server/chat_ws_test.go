package server

import (
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"archsandbox/internal/llm"
)

func dialChatWS(t *testing.T, srv string, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv, "http") + "/api/chat/ws" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	return conn
}

type wsFrame struct {
	Type      string `json:"type"`
	SessionID string `json:"sessionId"`
	Reply     string `json:"reply"`
	Code      string `json:"code"`
	Message   string `json:"message"`
}

func readFrame(t *testing.T, conn *websocket.Conn) wsFrame {
	t.Helper()
	var f wsFrame
	require.NoError(t, conn.ReadJSON(&f))
	return f
}

func TestChatWS_SendReceivesReply(t *testing.T) {
	srv := newTestServer(t, llm.NewFakeClient("ws reply"))
	conn := dialChatWS(t, srv.URL, "")

	connected := readFrame(t, conn)
	require.Equal(t, "connected", connected.Type)
	require.NotEmpty(t, connected.SessionID)

	require.NoError(t, conn.WriteJSON(map[string]any{"type": "send", "message": "hello"}))
	reply := readFrame(t, conn)
	assert.Equal(t, "reply", reply.Type)
	assert.Equal(t, connected.SessionID, reply.SessionID)
	assert.Equal(t, "ws reply", reply.Reply)
}

func TestChatWS_ReusesQuerySession(t *testing.T) {
	srv := newTestServer(t, llm.NewFakeClient("first", "second"))

	conn := dialChatWS(t, srv.URL, "")
	connected := readFrame(t, conn)
	require.NoError(t, conn.WriteJSON(map[string]any{"type": "send", "message": "one"}))
	readFrame(t, conn)
	conn.Close()

	conn2 := dialChatWS(t, srv.URL, "?session_id="+connected.SessionID)
	reconnected := readFrame(t, conn2)
	assert.Equal(t, connected.SessionID, reconnected.SessionID)
}

func TestChatWS_Errors(t *testing.T) {
	srv := newTestServer(t, llm.NewFakeClient())
	conn := dialChatWS(t, srv.URL, "")
	readFrame(t, conn)

	require.NoError(t, conn.WriteJSON(map[string]any{"type": "send", "message": "  "}))
	errFrame := readFrame(t, conn)
	assert.Equal(t, "error", errFrame.Type)
	assert.Equal(t, "invalid_argument", errFrame.Code)

	require.NoError(t, conn.WriteJSON(map[string]any{"type": "bogus"}))
	errFrame = readFrame(t, conn)
	assert.Equal(t, "error", errFrame.Type)

	require.NoError(t, conn.WriteJSON(map[string]any{"type": "ping"}))
	pong := readFrame(t, conn)
	assert.Equal(t, "pong", pong.Type)
}
