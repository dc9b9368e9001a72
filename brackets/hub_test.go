package brackets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventRoom(t *testing.T) {
	assert.Equal(t, "event_42", EventRoom(42))
}

func TestHubBroadcastToRoom(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(nil)
	go hub.Run(ctx)

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		client := NewClient(hub, conn, r.URL.Query().Get("room"))
		if !hub.RegisterClient(client) {
			conn.Close()
			return
		}
		go client.WritePump()
		go client.ReadPump()
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "?room=" + RoomStandings
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.ClientCount(RoomStandings) == 1 }, time.Second, 10*time.Millisecond)

	hub.BroadcastToRoom(RoomEvents, WebSocketMessage{Type: "IGNORED"})
	hub.BroadcastToRoom(RoomStandings, WebSocketMessage{Type: "STANDINGS_UPDATED", RoomID: RoomStandings})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg WebSocketMessage
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, "STANDINGS_UPDATED", msg.Type)
	assert.Equal(t, RoomStandings, msg.RoomID)

	conn.Close()
	require.Eventually(t, func() bool { return hub.ClientCount(RoomStandings) == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHubStoppedDoesNotBlockClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(nil)
	go hub.Run(ctx)

	cancel()
	select {
	case <-hub.Done():
	case <-time.After(time.Second):
		t.Fatal("hub did not stop")
	}

	client := &Client{Hub: hub, Send: make(chan []byte, 1), Room: RoomEvents}
	finished := make(chan bool, 1)
	go func() {
		registered := hub.RegisterClient(client)
		hub.UnregisterClient(client)
		finished <- registered
	}()

	select {
	case registered := <-finished:
		assert.False(t, registered)
	case <-time.After(time.Second):
		t.Fatal("register or unregister blocked after shutdown")
	}
	assert.Zero(t, hub.ClientCount(RoomEvents))
}
