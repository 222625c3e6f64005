package websocket

import (
	"time"

	"github.com/abdullah-binmadhi/Car-Sales-Dashboard/internal/services"
	"github.com/abdullah-binmadhi/Car-Sales-Dashboard/pkg/contracts/domain"
)

// Connection is the part of a gorilla connection the client pumps use.
type Connection interface {
	WriteMessage(messageType int, data []byte) error
	ReadMessage() (messageType int, p []byte, err error)
	Close() error
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
	SetReadLimit(limit int64)
	SetPongHandler(h func(string) error)
	RemoteAddr() string
}

// SnapshotSource publishes dashboard snapshots.
type SnapshotSource interface {
	Subscribe(h services.SnapshotHandler) (cancel func())
	Snapshot() (domain.DashboardSnapshot, error)
}
