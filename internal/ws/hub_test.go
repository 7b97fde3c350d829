package ws

import (
	"encoding/json"
	"testing"
	"time"
)

// mockClient creates a client for testing without a real WebSocket connection
func mockClient(hub *Hub) *Client {
	return &Client{
		hub:  hub,
		send: make(chan []byte, 256),
	}
}

func TestHubRegistration(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := mockClient(hub)
	hub.register <- client

	// Give hub time to process
	time.Sleep(10 * time.Millisecond)

	hub.mu.Lock()
	defer hub.mu.Unlock()

	if !hub.clients[client] {
		t.Fatal("client not registered")
	}
}

func TestHubUnregistration(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := mockClient(hub)
	hub.register <- client
	time.Sleep(10 * time.Millisecond)

	hub.unregister <- client
	time.Sleep(10 * time.Millisecond)

	hub.mu.Lock()
	defer hub.mu.Unlock()

	if hub.clients[client] {
		t.Fatal("client still registered after unregister")
	}

	// The send channel must be closed so WritePump exits.
	select {
	case _, ok := <-client.send:
		if ok {
			t.Fatal("expected closed send channel")
		}
	default:
		t.Fatal("send channel not closed")
	}
}

func TestBroadcastReachesAllClients(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client1 := mockClient(hub)
	client2 := mockClient(hub)
	client3 := mockClient(hub)

	hub.register <- client1
	hub.register <- client2
	hub.register <- client3
	time.Sleep(10 * time.Millisecond)

	testPayload := json.RawMessage(`{"id":101,"status":"PENDING"}`)
	hub.Broadcast(Event{Type: EventOrderCreated, Payload: testPayload})

	clients := []*Client{client1, client2, client3}
	for i, client := range clients {
		select {
		case msg := <-client.send:
			var received Event
			if err := json.Unmarshal(msg, &received); err != nil {
				t.Fatalf("client%d: failed to unmarshal: %v", i+1, err)
			}
			if received.Type != EventOrderCreated {
				t.Errorf("client%d: expected type %q, got %q", i+1, EventOrderCreated, received.Type)
			}
			if string(received.Payload) != string(testPayload) {
				t.Errorf("client%d: expected payload %s, got %s", i+1, testPayload, received.Payload)
			}
		case <-time.After(100 * time.Millisecond):
			t.Fatalf("client%d did not receive message", i+1)
		}
	}
}

func TestBroadcastSkipsUnregisteredClient(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	stays := mockClient(hub)
	leaves := mockClient(hub)

	hub.register <- stays
	hub.register <- leaves
	time.Sleep(10 * time.Millisecond)

	hub.unregister <- leaves
	time.Sleep(10 * time.Millisecond)

	hub.Broadcast(Event{Type: EventOrderStatusUpdated, Payload: json.RawMessage(`{"id":101}`)})

	select {
	case msg, ok := <-stays.send:
		if !ok {
			t.Fatal("registered client's channel closed unexpectedly")
		}
		var received Event
		if err := json.Unmarshal(msg, &received); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if received.Type != EventOrderStatusUpdated {
			t.Errorf("expected type %q, got %q", EventOrderStatusUpdated, received.Type)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("registered client did not receive message")
	}
}

func TestSlowClientIsDropped(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	// A client whose buffer is already full cannot accept the broadcast.
	slow := &Client{hub: hub, send: make(chan []byte)}
	hub.register <- slow
	time.Sleep(10 * time.Millisecond)

	hub.Broadcast(Event{Type: EventOrderCreated, Payload: json.RawMessage(`{}`)})
	time.Sleep(10 * time.Millisecond)

	hub.mu.Lock()
	defer hub.mu.Unlock()
	if hub.clients[slow] {
		t.Fatal("slow client not dropped after failed send")
	}
}

func TestEventSerialization(t *testing.T) {
	testCases := []struct {
		name  string
		event Event
	}{
		{
			name: "order created event",
			event: Event{
				Type:    EventOrderCreated,
				Payload: json.RawMessage(`{"id":101,"total":"48.00"}`),
			},
		},
		{
			name: "order status updated event",
			event: Event{
				Type:    EventOrderStatusUpdated,
				Payload: json.RawMessage(`{"id":101,"status":"IN_PREPARATION"}`),
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			data, err := json.Marshal(tc.event)
			if err != nil {
				t.Fatalf("Marshal error: %v", err)
			}

			var decoded Event
			if err := json.Unmarshal(data, &decoded); err != nil {
				t.Fatalf("Unmarshal error: %v", err)
			}

			if decoded.Type != tc.event.Type {
				t.Errorf("Type mismatch: got %s, want %s", decoded.Type, tc.event.Type)
			}
			if string(decoded.Payload) != string(tc.event.Payload) {
				t.Errorf("Payload mismatch: got %s, want %s", decoded.Payload, tc.event.Payload)
			}
		})
	}
}
