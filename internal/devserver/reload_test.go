package devserver

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func dialHub(t *testing.T, hub *Hub) *websocket.Conn {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(hub.HandleWebSocket))
	t.Cleanup(server.Close)

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	ws, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { ws.Close() })

	// Wait for the server side to register the connection.
	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		return len(hub.clients) == 1
	}, time.Second, 10*time.Millisecond)

	return ws
}

func TestHubBroadcastReload(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	hub.Start()

	ws := dialHub(t, hub)
	hub.BroadcastReload()

	require.NoError(t, ws.SetReadDeadline(time.Now().Add(time.Second)))
	var msg Message
	require.NoError(t, ws.ReadJSON(&msg))
	require.Equal(t, MsgTypeReload, msg.Type)
}

func TestHubBroadcastError(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	hub.Start()

	ws := dialHub(t, hub)
	hub.BroadcastError("esbuild failed with errors")

	require.NoError(t, ws.SetReadDeadline(time.Now().Add(time.Second)))
	var msg Message
	require.NoError(t, ws.ReadJSON(&msg))
	require.Equal(t, MsgTypeError, msg.Type)
	require.Equal(t, "esbuild failed with errors", msg.Text)
}
