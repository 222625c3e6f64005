// Package events contains the message contracts of the dashboard WebSocket
// feed.
package events

import (
	"time"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	// MessageTypeConnection is sent once, right after a client connects.
	MessageTypeConnection MessageType = "connection"

	// MessageTypeDashboardSnapshot carries a domain.DashboardSnapshot
	// whenever the active filter settles.
	MessageTypeDashboardSnapshot MessageType = "dashboard:snapshot"
)

// Message is the envelope of every server-to-client frame
type Message struct {
	Type      MessageType `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// ConnectionData is the payload of a connection message
type ConnectionData struct {
	Status   string `json:"status"`
	ClientID string `json:"client_id"`
}
