package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdullah-binmadhi/Car-Sales-Dashboard/internal/config"
	"github.com/abdullah-binmadhi/Car-Sales-Dashboard/pkg/contracts/events"
)

// mockConn is an in-memory Connection.
type mockConn struct {
	mu      sync.Mutex
	written [][]byte
	types   []int
	closed  bool
	reads   chan []byte
}

func newMockConn() *mockConn {
	return &mockConn{reads: make(chan []byte)}
}

func (m *mockConn) WriteMessage(messageType int, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return errors.New("closed")
	}
	m.types = append(m.types, messageType)
	m.written = append(m.written, append([]byte(nil), data...))
	return nil
}

func (m *mockConn) ReadMessage() (int, []byte, error) {
	data, ok := <-m.reads
	if !ok {
		return 0, nil, io.EOF
	}
	return 1, data, nil
}

func (m *mockConn) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.closed {
		m.closed = true
		close(m.reads)
	}
	return nil
}

func (m *mockConn) SetReadDeadline(time.Time) error   { return nil }
func (m *mockConn) SetWriteDeadline(time.Time) error  { return nil }
func (m *mockConn) SetReadLimit(int64)                {}
func (m *mockConn) SetPongHandler(func(string) error) {}
func (m *mockConn) RemoteAddr() string                { return "127.0.0.1:5000" }

func (m *mockConn) isClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func startHub(t *testing.T) (*Hub, context.CancelFunc) {
	t.Helper()
	hub := NewHub(config.Default().WebSocket, nil, testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = hub.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return hub, cancel
}

func receive(t *testing.T, c *Client) events.Message {
	t.Helper()
	select {
	case data, ok := <-c.send:
		require.True(t, ok, "send channel closed")
		var msg events.Message
		require.NoError(t, json.Unmarshal(data, &msg))
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
		return events.Message{}
	}
}

func TestHub_RegisterSendsConnectionMessage(t *testing.T) {
	hub, _ := startHub(t)
	client := NewClient(hub, newMockConn(), "trace-1")

	require.True(t, hub.Register(client))
	msg := receive(t, client)

	assert.Equal(t, events.MessageTypeConnection, msg.Type)
	data, ok := msg.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "connected", data["status"])
	assert.Equal(t, client.ID(), data["client_id"])
	assert.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)
}

func TestHub_Greeting(t *testing.T) {
	tests := []struct {
		name      string
		greeting  Greeting
		wantGreet bool
	}{
		{
			name: "greeting sent after connection message",
			greeting: func() (events.Message, bool) {
				return events.Message{Type: "hello", Timestamp: time.Now()}, true
			},
			wantGreet: true,
		},
		{
			name:     "greeting declined",
			greeting: func() (events.Message, bool) { return events.Message{}, false },
		},
		{
			name: "no greeting",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hub, _ := startHub(t)
			hub.SetGreeting(tt.greeting)
			client := NewClient(hub, newMockConn(), "")

			require.True(t, hub.Register(client))
			assert.Equal(t, events.MessageTypeConnection, receive(t, client).Type)

			if tt.wantGreet {
				assert.Equal(t, events.MessageType("hello"), receive(t, client).Type)
				return
			}
			select {
			case <-client.send:
				t.Fatal("unexpected greeting")
			case <-time.After(50 * time.Millisecond):
			}
		})
	}
}

func TestHub_Broadcast(t *testing.T) {
	hub, _ := startHub(t)
	clients := []*Client{
		NewClient(hub, newMockConn(), ""),
		NewClient(hub, newMockConn(), ""),
	}
	for _, c := range clients {
		require.True(t, hub.Register(c))
		receive(t, c)
	}

	hub.Broadcast("test:event", map[string]int{"n": 7})

	for _, c := range clients {
		msg := receive(t, c)
		assert.Equal(t, events.MessageType("test:event"), msg.Type)
		assert.Equal(t, map[string]interface{}{"n": float64(7)}, msg.Data)
		assert.False(t, msg.Timestamp.IsZero())
	}
}

func TestHub_UnregisterClosesSend(t *testing.T) {
	hub, _ := startHub(t)
	client := NewClient(hub, newMockConn(), "")
	require.True(t, hub.Register(client))
	receive(t, client)

	hub.Unregister(client)

	select {
	case _, ok := <-client.send:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("send channel not closed")
	}
	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 10*time.Millisecond)

	// A second unregister is harmless.
	hub.Unregister(client)
}

func TestHub_DropsSlowClient(t *testing.T) {
	hub, _ := startHub(t)
	slow := NewClient(hub, newMockConn(), "")
	require.True(t, hub.Register(slow))

	// Nothing drains slow.send, so it overflows.
	for i := 0; i < sendBufferSize+2; i++ {
		hub.Broadcast("tick", i)
	}

	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 10*time.Millisecond)
}

func TestHub_StopClosesClientsAndRejectsRegistration(t *testing.T) {
	hub, cancel := startHub(t)
	client := NewClient(hub, newMockConn(), "")
	require.True(t, hub.Register(client))
	receive(t, client)

	cancel()

	assert.Eventually(t, func() bool {
		select {
		case _, ok := <-client.send:
			return !ok
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)

	<-hub.done
	assert.False(t, hub.Register(NewClient(hub, newMockConn(), "")))
	hub.Unregister(client)
	hub.Broadcast("ignored", nil)
}

func TestClient_Pumps(t *testing.T) {
	hub, _ := startHub(t)
	conn := newMockConn()
	client := NewClient(hub, conn, "")
	require.True(t, hub.Register(client))

	go client.WritePump()
	go client.ReadPump()

	hub.Broadcast("test:event", "payload")

	assert.Eventually(t, func() bool {
		conn.mu.Lock()
		defer conn.mu.Unlock()
		return len(conn.written) >= 2
	}, time.Second, 10*time.Millisecond)

	// Closing the connection ends the read pump, which unregisters the client.
	_ = conn.Close()
	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 10*time.Millisecond)
	assert.True(t, conn.isClosed())
}

func TestNewHub_NormalizesKeepalive(t *testing.T) {
	hub := NewHub(config.WebSocketConfig{PongWait: 10 * time.Second, PingPeriod: 20 * time.Second}, nil, nil)
	assert.Equal(t, 9*time.Second, hub.config.PingPeriod)

	hub = NewHub(config.WebSocketConfig{}, nil, nil)
	assert.Equal(t, config.WebSocketPongWait, hub.config.PongWait)
	assert.Less(t, hub.config.PingPeriod, hub.config.PongWait)
}
