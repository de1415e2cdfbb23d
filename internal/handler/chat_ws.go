package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"archsandbox/internal/chat"
	"archsandbox/internal/graph"
)

const (
	chatWSWriteWait = 10 * time.Second
	chatWSPongWait  = 60 * time.Second
	chatWSPingEvery = (chatWSPongWait * 9) / 10
)

var chatWSUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

type chatWSInbound struct {
	Type      string       `json:"type"`
	Message   string       `json:"message,omitempty"`
	Graph     *graph.Graph `json:"currentArchitecture,omitempty"`
	ChatWidth int          `json:"chatWidth,omitempty"`
}

type chatWSOutbound struct {
	Type         string             `json:"type"`
	SessionID    string             `json:"sessionId,omitempty"`
	Reply        string             `json:"reply,omitempty"`
	CanvasAction chat.CanvasAction  `json:"canvasAction,omitempty"`
	UpdatedGraph *graph.Graph       `json:"updatedArchitecture,omitempty"`
	UpdatedScope *graph.ScopeUpdate `json:"updatedScope,omitempty"`
	Code         string             `json:"code,omitempty"`
	Message      string             `json:"message,omitempty"`
}

// HandleChatWS serves GET /api/chat/ws. One connection binds one session:
// the session id comes from the query or is created on upgrade, and every
// "send" on the connection runs a full pipeline cycle against it.
func (h *ChatHandler) HandleChatWS(w http.ResponseWriter, r *http.Request) {
	sessionID := h.pipeline.Sessions().GetOrCreate(strings.TrimSpace(r.URL.Query().Get("session_id")))

	conn, err := chatWSUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	if err := conn.SetReadDeadline(time.Now().Add(chatWSPongWait)); err != nil {
		h.logger.Debug("chat ws set read deadline failed", zap.Error(err))
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(chatWSPongWait))
	})

	writeCh := make(chan chatWSOutbound, 32)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		ticker := time.NewTicker(chatWSPingEvery)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case out := <-writeCh:
				if err := conn.SetWriteDeadline(time.Now().Add(chatWSWriteWait)); err != nil {
					return
				}
				if err := conn.WriteJSON(out); err != nil {
					return
				}
			case <-ticker.C:
				if err := conn.SetWriteDeadline(time.Now().Add(chatWSWriteWait)); err != nil {
					return
				}
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()

	pushChatWS(writeCh, chatWSOutbound{Type: "connected", SessionID: sessionID})

	for {
		var in chatWSInbound
		if err := conn.ReadJSON(&in); err != nil {
			cancel()
			<-writerDone
			return
		}
		switch strings.ToLower(strings.TrimSpace(in.Type)) {
		case "ping":
			pushChatWS(writeCh, chatWSOutbound{Type: "pong"})
		case "send":
			if strings.TrimSpace(in.Message) == "" {
				pushChatWS(writeCh, chatWSOutbound{
					Type:    "error",
					Code:    "invalid_argument",
					Message: "message is required",
				})
				continue
			}
			req := chat.Request{
				Message:   in.Message,
				SessionID: sessionID,
				ChatWidth: in.ChatWidth,
			}
			if in.Graph != nil {
				req.Graph = *in.Graph
			}
			out, runErr := h.pipeline.Run(ctx, req)
			if runErr != nil {
				pushChatWS(writeCh, chatWSOutbound{
					Type:    "error",
					Code:    "internal",
					Message: runErr.Error(),
				})
				continue
			}
			pushChatWS(writeCh, chatWSOutbound{
				Type:         "reply",
				SessionID:    out.SessionID,
				Reply:        out.Reply,
				CanvasAction: out.CanvasAction,
				UpdatedGraph: out.UpdatedGraph,
				UpdatedScope: out.UpdatedScope,
			})
		default:
			pushChatWS(writeCh, chatWSOutbound{
				Type:    "error",
				Code:    "invalid_argument",
				Message: "unsupported type: " + in.Type,
			})
		}
	}
}

// pushChatWS enqueues without blocking; when the buffer is full the oldest
// pending frame is dropped in favor of the new one.
func pushChatWS(writeCh chan chatWSOutbound, out chatWSOutbound) {
	select {
	case writeCh <- out:
		return
	default:
	}
	select {
	case <-writeCh:
	default:
	}
	select {
	case writeCh <- out:
	default:
	}
}
