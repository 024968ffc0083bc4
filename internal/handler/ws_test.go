package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"tradegate/internal/domain"

	"github.com/gorilla/websocket"
)

// dialHub upgrades one server-side connection into the hub and returns the
// client side of the socket.
func dialHub(t *testing.T, hub *DecisionHub) *websocket.Conn {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.add(conn)
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url+"/ws/decisions", nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestDecisionHubDeliversToClient(t *testing.T) {
	hub := NewDecisionHub()
	conn := dialHub(t, hub)

	if hub.ClientCount() != 1 {
		t.Fatalf("expected 1 client, got %d", hub.ClientCount())
	}

	decision := domain.Decision{Accepted: true, Symbol: "SPC", Direction: domain.DirectionBuy}
	if err := hub.NotifyDecision(context.Background(), decision); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got domain.Decision
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if got.Symbol != "SPC" || !got.Accepted {
		t.Fatalf("unexpected decision: %+v", got)
	}
}

func TestDecisionHubConcurrentNotifications(t *testing.T) {
	hub := NewDecisionHub()
	conn := dialHub(t, hub)

	const writers = 16
	const perWriter = 25

	received := make(chan struct{}, writers*perWriter)
	go func() {
		for {
			var d domain.Decision
			_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
			if err := conn.ReadJSON(&d); err != nil {
				return
			}
			received <- struct{}{}
		}
	}()

	var wg sync.WaitGroup
	decision := domain.Decision{Accepted: true, Symbol: "ES", Direction: domain.DirectionSell}
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWriter; j++ {
				_ = hub.NotifyDecision(context.Background(), decision)
			}
		}()
	}
	wg.Wait()

	deadline := time.After(5 * time.Second)
	for i := 0; i < writers*perWriter; i++ {
		select {
		case <-received:
		case <-deadline:
			t.Fatalf("received %d of %d messages", i, writers*perWriter)
		}
	}

	if hub.ClientCount() != 1 {
		t.Fatalf("client must survive concurrent fan-out, got %d", hub.ClientCount())
	}
}

func TestDecisionHubDropsFailedClient(t *testing.T) {
	hub := NewDecisionHub()
	conn := dialHub(t, hub)
	_ = conn.Close()

	// The write may need a round trip to observe the close.
	decision := domain.Decision{Accepted: true, Symbol: "SPC"}
	for i := 0; i < 10 && hub.ClientCount() > 0; i++ {
		_ = hub.NotifyDecision(context.Background(), decision)
		time.Sleep(50 * time.Millisecond)
	}

	if hub.ClientCount() != 0 {
		t.Fatalf("expected failed client removed, got %d", hub.ClientCount())
	}
}

func TestNotifyDecisionNilHub(t *testing.T) {
	var hub *DecisionHub
	if err := hub.NotifyDecision(context.Background(), domain.Decision{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
