package websocket

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// Metrics records live-update connection activity. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	active       metric.Int64UpDownCounter
	connections  metric.Int64Counter
	duration     metric.Float64Histogram
	messagesSent metric.Int64Counter
	bytesSent    metric.Int64Counter
	dropped      metric.Int64Counter
}

// NewMetrics creates the websocket instruments on meter. A nil meter uses
// a no-op provider.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	if meter == nil {
		meter = noop.NewMeterProvider().Meter("websocket")
	}

	active, err := meter.Int64UpDownCounter("websocket_connections_active",
		metric.WithDescription("Currently connected dashboard clients"))
	if err != nil {
		return nil, err
	}
	connections, err := meter.Int64Counter("websocket_connections_total",
		metric.WithDescription("Dashboard clients accepted"))
	if err != nil {
		return nil, err
	}
	duration, err := meter.Float64Histogram("websocket_connection_duration_seconds",
		metric.WithDescription("Lifetime of dashboard client connections"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}
	messagesSent, err := meter.Int64Counter("websocket_messages_sent_total",
		metric.WithDescription("Frames written to dashboard clients"))
	if err != nil {
		return nil, err
	}
	bytesSent, err := meter.Int64Counter("websocket_bytes_sent_total",
		metric.WithDescription("Payload bytes written to dashboard clients"),
		metric.WithUnit("By"))
	if err != nil {
		return nil, err
	}
	dropped, err := meter.Int64Counter("websocket_slow_clients_dropped_total",
		metric.WithDescription("Clients disconnected because their send buffer was full"))
	if err != nil {
		return nil, err
	}

	return &Metrics{
		active:       active,
		connections:  connections,
		duration:     duration,
		messagesSent: messagesSent,
		bytesSent:    bytesSent,
		dropped:      dropped,
	}, nil
}

func (m *Metrics) connected() {
	if m == nil {
		return
	}
	ctx := context.Background()
	m.active.Add(ctx, 1)
	m.connections.Add(ctx, 1)
}

func (m *Metrics) disconnected(lifetime time.Duration) {
	if m == nil {
		return
	}
	ctx := context.Background()
	m.active.Add(ctx, -1)
	m.duration.Record(ctx, lifetime.Seconds())
}

func (m *Metrics) messageSent(size int) {
	if m == nil {
		return
	}
	ctx := context.Background()
	m.messagesSent.Add(ctx, 1)
	m.bytesSent.Add(ctx, int64(size))
}

func (m *Metrics) slowClientDropped() {
	if m == nil {
		return
	}
	m.dropped.Add(context.Background(), 1)
}
