package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// dialTestClient upgrades one connection through an httptest server and
// registers the server side with the manager.
func dialTestClient(t *testing.T, mgr *Manager, clientID string) *websocket.Conn {
	t.Helper()

	upgrader := websocket.Upgrader{}
	registered := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		mgr.Register(clientID, conn)
		close(registered)
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	<-registered

	return client
}

func TestRegisterUnregister(t *testing.T) {
	mgr := NewManager()
	dialTestClient(t, mgr, "client-1")

	if mgr.Count() != 1 {
		t.Fatalf("expected 1 client, got %d", mgr.Count())
	}
	if ids := mgr.List(); len(ids) != 1 || ids[0] != "client-1" {
		t.Errorf("expected [client-1], got %v", ids)
	}

	mgr.Unregister("client-1")
	if mgr.Count() != 0 {
		t.Errorf("expected 0 clients after unregister, got %d", mgr.Count())
	}
}

func TestBroadcastDelivers(t *testing.T) {
	mgr := NewManager()
	client := dialTestClient(t, mgr, "client-1")

	mgr.Broadcast([]byte(`{"type":"meter_reading","meter_id":"meter_001"}`))

	_, msg, err := client.ReadMessage()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if !strings.Contains(string(msg), "meter_001") {
		t.Errorf("unexpected broadcast payload: %s", msg)
	}
}

// Concurrent ingestions broadcast to the same connection at the same time;
// the fan-out must serialize writes. Run under -race.
func TestBroadcastConcurrentSenders(t *testing.T) {
	mgr := NewManager()
	client := dialTestClient(t, mgr, "client-1")

	// drain the client side so broadcasts never block on a full buffer
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		for {
			if _, _, err := client.ReadMessage(); err != nil {
				return
			}
		}
	}()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				mgr.Broadcast([]byte(`{"type":"meter_reading"}`))
			}
		}()
	}
	wg.Wait()

	if mgr.Count() != 1 {
		t.Errorf("healthy connection must survive the fan-out, got %d clients", mgr.Count())
	}

	mgr.Unregister("client-1")
	<-drained
}

func TestBroadcastDropsDeadConnections(t *testing.T) {
	mgr := NewManager()
	client := dialTestClient(t, mgr, "client-1")

	// kill the client end; the next writes must evict the server side
	_ = client.Close()
	for i := 0; i < 20 && mgr.Count() > 0; i++ {
		time.Sleep(10 * time.Millisecond)
		mgr.Broadcast([]byte(`{"type":"meter_reading"}`))
	}

	if mgr.Count() != 0 {
		t.Errorf("expected dead connection to be dropped, got %d clients", mgr.Count())
	}
}
