// Package websocket pushes dashboard snapshots to browser clients.
//
// A Hub owns the set of connected clients and runs on a single goroutine.
// Each Client has a read pump, which only services control frames, and a
// write pump that drains the client's send buffer and keeps the connection
// alive with pings. Clients that fall behind are disconnected rather than
// slowing down the broadcast.
//
// ConnectDashboard subscribes a hub to a SnapshotSource so every published
// snapshot reaches all clients. Each snapshot carries a generation number;
// clients discard any snapshot older than the last one they applied.
package websocket
