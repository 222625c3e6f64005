package websocket

import (
	"time"

	"github.com/abdullah-binmadhi/Car-Sales-Dashboard/pkg/contracts/domain"
	"github.com/abdullah-binmadhi/Car-Sales-Dashboard/pkg/contracts/events"
)

// ConnectDashboard forwards every snapshot published by source to the
// hub's clients, and greets new clients with the current snapshot once the
// dataset is ready. The returned func stops forwarding.
func ConnectDashboard(hub *Hub, source SnapshotSource) (cancel func()) {
	hub.SetGreeting(func() (events.Message, bool) {
		snap, err := source.Snapshot()
		if err != nil {
			return events.Message{}, false
		}
		return snapshotMessage(snap), true
	})

	return source.Subscribe(func(snap domain.DashboardSnapshot) {
		hub.BroadcastSnapshot(snap)
	})
}

// BroadcastSnapshot sends snap to every client. Clients order snapshots by
// their generation.
func (h *Hub) BroadcastSnapshot(snap domain.DashboardSnapshot) {
	h.Broadcast(events.MessageTypeDashboardSnapshot, snap)
}

func snapshotMessage(snap domain.DashboardSnapshot) events.Message {
	return events.Message{Type: events.MessageTypeDashboardSnapshot, Data: snap, Timestamp: time.Now()}
}
