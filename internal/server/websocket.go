package server

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/thenvoi/mcp-server/internal/protocol"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
}

// handleWebSocket serves GET /ws: the duplex binding carried over a
// WebSocket, one envelope per message, no session id on the wire.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	log := s.log.Sub("ws")

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	conn.SetReadLimit(maxFrameSize)

	sess := s.sessions.Register()
	defer s.sessions.Deregister(sess.ID)

	log.Debug().Str("sessionId", sess.ID).Str("remote", r.RemoteAddr).Msg("connection opened")

	// One read loop per connection: envelopes are handled and answered
	// strictly in arrival order, like the stdio binding.
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug().Str("sessionId", sess.ID).Msg("client closed connection")
			} else {
				log.Warn().Err(err).Str("sessionId", sess.ID).Msg("read error")
			}
			return
		}

		var resp *protocol.Response
		var req protocol.Request
		if err := json.Unmarshal(msg, &req); err != nil {
			e := protocol.NewError(nil, protocol.CodeParseError, "Parse error", err.Error())
			resp = &e
		} else {
			resp = s.Handle(r.Context(), sess, req)
		}

		if resp == nil {
			continue
		}
		if err := conn.WriteJSON(resp); err != nil {
			log.Warn().Err(err).Str("sessionId", sess.ID).Msg("write error")
			return
		}
	}
}
