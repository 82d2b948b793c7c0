package server

import (
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenvoi/mcp-server/internal/protocol"
)

func dialWS(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	wsURL := strings.Replace(url, "http://", "ws://", 1) + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestWebSocketRoundTrip(t *testing.T) {
	srv := testServer(t, "tv_agent_x", "http://localhost")
	ts := newTestHTTPServer(t, srv)
	conn := dialWS(t, ts.URL)

	require.NoError(t, conn.WriteJSON(protocol.Request{
		JSONRPC: "2.0", ID: "init-1", Method: protocol.MethodInitialize,
	}))

	var resp protocol.Response
	require.NoError(t, conn.ReadJSON(&resp))
	assert.Equal(t, "init-1", resp.ID)
	assert.Nil(t, resp.Error)
}

func TestWebSocketParseError(t *testing.T) {
	srv := testServer(t, "tv_agent_x", "http://localhost")
	ts := newTestHTTPServer(t, srv)
	conn := dialWS(t, ts.URL)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))

	var resp protocol.Response
	require.NoError(t, conn.ReadJSON(&resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, protocol.CodeParseError, resp.Error.Code)

	// the connection survives the bad frame
	require.NoError(t, conn.WriteJSON(protocol.Request{JSONRPC: "2.0", ID: "p", Method: protocol.MethodPing}))
	resp = protocol.Response{}
	require.NoError(t, conn.ReadJSON(&resp))
	assert.Nil(t, resp.Error)
}

func TestWebSocketNotificationNoReply(t *testing.T) {
	srv := testServer(t, "tv_agent_x", "http://localhost")
	ts := newTestHTTPServer(t, srv)
	conn := dialWS(t, ts.URL)

	require.NoError(t, conn.WriteJSON(protocol.Request{JSONRPC: "2.0", Method: protocol.MethodInitialized}))
	require.NoError(t, conn.WriteJSON(protocol.Request{JSONRPC: "2.0", ID: "p", Method: protocol.MethodPing}))

	// the only frame that comes back is the ping response
	var resp protocol.Response
	require.NoError(t, conn.ReadJSON(&resp))
	assert.Equal(t, "p", resp.ID)
}

func TestWebSocketSessionCleanup(t *testing.T) {
	srv := testServer(t, "tv_agent_x", "http://localhost")
	ts := newTestHTTPServer(t, srv)
	conn := dialWS(t, ts.URL)

	require.Eventually(t, func() bool {
		return srv.Sessions().Count() == 1
	}, 2*time.Second, 10*time.Millisecond)

	conn.Close()
	require.Eventually(t, func() bool {
		return srv.Sessions().Count() == 0
	}, 2*time.Second, 10*time.Millisecond)
}
