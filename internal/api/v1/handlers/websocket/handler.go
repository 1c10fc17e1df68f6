package websocket

import (
	"io"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/paddockai/paddock/internal/services/chat"
	"github.com/paddockai/paddock/internal/services/chat/models"
	"github.com/paddockai/paddock/pkg/datastream"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// TODO: restrict origins once the frontend's allowed-origin list is finalised
		return true
	},
}

// HandleChatSocket streams a chat answer over a WebSocket connection.
// The client sends one JSON chat request; the server replies with the
// same text-delta frames the HTTP transport emits, one frame per
// message, then closes.
func HandleChatSocket(chatService chat.Service, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	var req models.ChatRequest
	if err := conn.ReadJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Client sent malformed WebSocket chat request")
		closeWith(conn, websocket.ClosePolicyViolation, "No user message provided.")
		return
	}

	if len(req.Messages) == 0 || strings.TrimSpace(req.Messages[len(req.Messages)-1].Text()) == "" {
		closeWith(conn, websocket.ClosePolicyViolation, "No user message provided.")
		return
	}

	if !chatService.Ready() {
		closeWith(conn, websocket.ClosePolicyViolation, "No generation provider configured.")
		return
	}

	stream := chatService.ProcessChat(r.Context(), req.Messages)
	emitted := 0

	for {
		delta, err := stream.Recv()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Warn().Err(err).Int("frames", emitted).Msg("Answer stream failed mid-flight")
			break
		}
		if delta == "" {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, []byte(datastream.Frame(delta))); err != nil {
			return
		}
		emitted++
	}

	if emitted == 0 {
		for _, chunk := range datastream.Split(chat.FallbackResponse, datastream.DefaultChunkSize) {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(datastream.Frame(chunk))); err != nil {
				return
			}
		}
	}

	closeWith(conn, websocket.CloseNormalClosure, "")
}

func closeWith(conn *websocket.Conn, code int, reason string) {
	msg := websocket.FormatCloseMessage(code, reason)
	if err := conn.WriteMessage(websocket.CloseMessage, msg); err != nil {
		log.Debug().Err(err).Msg("Failed to write close frame")
	}
}
