package server

import (
	"image"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ranjeetds/gestify/internal/gesture"
)

func dialHub(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("failed to dial hub: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForClients(t *testing.T, hub *Hub, want int) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() != want {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d clients, got %d", want, hub.ClientCount())
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestHub_BroadcastReachesClient(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn := dialHub(t, srv)
	waitForClients(t, hub, 1)

	sent := gesture.Event{
		Gesture:  gesture.Click,
		Hand:     "Right",
		Position: image.Point{X: 100, Y: 200},
		At:       time.Now().UTC(),
	}
	hub.Broadcast(sent)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var received gesture.Event
	if err := conn.ReadJSON(&received); err != nil {
		t.Fatalf("failed to read broadcast: %v", err)
	}

	if received.Gesture != gesture.Click {
		t.Errorf("expected Click, got %v", received.Gesture)
	}
	if received.Position != sent.Position {
		t.Errorf("expected position %v, got %v", sent.Position, received.Position)
	}
}

func TestHub_DisconnectedClientIsRemoved(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn := dialHub(t, srv)
	waitForClients(t, hub, 1)

	conn.Close()
	waitForClients(t, hub, 0)

	// Broadcasting with no clients is a no-op.
	hub.Broadcast(gesture.Event{Gesture: gesture.Pause})
}

func TestHub_MultipleClients(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(hub)
	defer srv.Close()

	first := dialHub(t, srv)
	second := dialHub(t, srv)
	waitForClients(t, hub, 2)

	hub.Broadcast(gesture.Event{Gesture: gesture.ZoomIn})

	for i, conn := range []*websocket.Conn{first, second} {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var received gesture.Event
		if err := conn.ReadJSON(&received); err != nil {
			t.Fatalf("client %d failed to read broadcast: %v", i, err)
		}
		if received.Gesture != gesture.ZoomIn {
			t.Errorf("client %d: expected ZoomIn, got %v", i, received.Gesture)
		}
	}
}
