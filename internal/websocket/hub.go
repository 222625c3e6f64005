package websocket

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/abdullah-binmadhi/Car-Sales-Dashboard/internal/config"
	"github.com/abdullah-binmadhi/Car-Sales-Dashboard/pkg/contracts/events"
)

// Greeting builds the message sent to a client right after it connects.
// ok is false when there is nothing to send.
type Greeting func() (msg events.Message, ok bool)

// Hub tracks connected clients and fans messages out to them. All client
// map changes happen on the Run goroutine.
type Hub struct {
	config  config.WebSocketConfig
	logger  *slog.Logger
	metrics *Metrics

	clients    map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte

	greetMu  sync.RWMutex
	greeting Greeting

	countMu sync.RWMutex
	count   int

	done     chan struct{}
	doneOnce sync.Once
}

// NewHub creates a hub. metrics may be nil.
func NewHub(cfg config.WebSocketConfig, metrics *Metrics, logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.PongWait <= 0 {
		cfg.PongWait = config.WebSocketPongWait
	}
	if cfg.PingPeriod <= 0 || cfg.PingPeriod >= cfg.PongWait {
		cfg.PingPeriod = cfg.PongWait * 9 / 10
	}

	return &Hub{
		config:     cfg,
		logger:     logger.With(slog.String("component", "websocket.hub")),
		metrics:    metrics,
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 16),
		done:       make(chan struct{}),
	}
}

// SetGreeting installs the per-connection greeting.
func (h *Hub) SetGreeting(g Greeting) {
	h.greetMu.Lock()
	h.greeting = g
	h.greetMu.Unlock()
}

// Run serves registrations and broadcasts until ctx is done. On exit every
// client's send channel is closed, which makes its write pump send a close
// frame.
func (h *Hub) Run(ctx context.Context) error {
	defer h.doneOnce.Do(func() { close(h.done) })
	h.logger.InfoContext(ctx, "WebSocket hub started")

	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				h.drop(client)
			}
			h.logger.Info("WebSocket hub stopped")
			return nil

		case client := <-h.register:
			h.clients[client] = struct{}{}
			h.setCount(len(h.clients))
			h.metrics.connected()

			h.logger.InfoContext(client.context(), "Client registered",
				slog.Int("total_clients", len(h.clients)),
				slog.String("client_id", client.id),
				slog.String("remote_addr", client.remoteAddr))

			h.deliver(client, h.encode(events.Message{
				Type:      events.MessageTypeConnection,
				Data:      events.ConnectionData{Status: "connected", ClientID: client.id},
				Timestamp: time.Now(),
			}))
			if msg, ok := h.greet(); ok {
				h.deliver(client, h.encode(msg))
			}

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				h.drop(client)
				h.logger.InfoContext(client.context(), "Client unregistered",
					slog.Int("total_clients", len(h.clients)),
					slog.String("client_id", client.id),
					slog.Duration("connection_duration", time.Since(client.connectedAt)))
			}

		case message := <-h.broadcast:
			for client := range h.clients {
				h.deliver(client, message)
			}
			h.logger.Debug("Broadcast delivered",
				slog.Int("client_count", len(h.clients)),
				slog.Int("message_size", len(message)))
		}
	}
}

// deliver queues message for client, disconnecting clients whose buffer is
// full.
func (h *Hub) deliver(client *Client, message []byte) {
	if message == nil {
		return
	}
	if _, ok := h.clients[client]; !ok {
		return
	}
	select {
	case client.send <- message:
	default:
		h.logger.WarnContext(client.context(), "Client send buffer full, disconnecting",
			slog.String("client_id", client.id))
		h.metrics.slowClientDropped()
		h.drop(client)
	}
}

func (h *Hub) drop(client *Client) {
	delete(h.clients, client)
	close(client.send)
	h.setCount(len(h.clients))
	h.metrics.disconnected(time.Since(client.connectedAt))
}

func (h *Hub) greet() (events.Message, bool) {
	h.greetMu.RLock()
	g := h.greeting
	h.greetMu.RUnlock()
	if g == nil {
		return events.Message{}, false
	}
	return g()
}

func (h *Hub) encode(msg events.Message) []byte {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("Error marshaling message",
			slog.String("error", err.Error()),
			slog.String("message_type", string(msg.Type)))
		return nil
	}
	return data
}

func (h *Hub) setCount(n int) {
	h.countMu.Lock()
	h.count = n
	h.countMu.Unlock()
}

// Register adds a client. It reports false when the hub has stopped.
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

// Unregister removes a client. It is a no-op once the hub has stopped.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Broadcast sends a typed message to every connected client.
func (h *Hub) Broadcast(messageType events.MessageType, data interface{}) {
	message := h.encode(events.Message{Type: messageType, Data: data, Timestamp: time.Now()})
	if message == nil {
		return
	}
	select {
	case h.broadcast <- message:
	case <-h.done:
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.countMu.RLock()
	defer h.countMu.RUnlock()
	return h.count
}
