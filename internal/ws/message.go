// Package ws streams freshly ranked parlays to dashboard clients over
// WebSocket.
package ws

import (
	"time"
)

// Message types exchanged with clients.
const (
	MessageTypeParlay      = "parlay"
	MessageTypeSubscribe   = "subscribe"
	MessageTypeUnsubscribe = "unsubscribe"
	MessageTypeHeartbeat   = "heartbeat"
	MessageTypeError       = "error"
)

// ServerMessage is the envelope for everything the hub pushes.
type ServerMessage struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// ClientMessage is the envelope for client requests.
type ClientMessage struct {
	Type    string                 `json:"type"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

// SubscriptionFilter selects which parlays a client receives. A zero
// filter receives everything.
type SubscriptionFilter struct {
	Sports   []string `json:"sports,omitempty"`
	MinScore float64  `json:"min_score,omitempty"`
	MinLegs  int      `json:"min_legs,omitempty"`
	MaxLegs  int      `json:"max_legs,omitempty"`
	SameGame *bool    `json:"same_game,omitempty"`
}

// ErrorMessage is the payload of error frames.
type ErrorMessage struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ConnectionStats reports per-client connection health.
type ConnectionStats struct {
	ClientID          string    `json:"client_id"`
	ConnectedAt       time.Time `json:"connected_at"`
	MessagesSent      int64     `json:"messages_sent"`
	MessagesReceived  int64     `json:"messages_received"`
	LastMessageAt     time.Time `json:"last_message_at"`
	BufferSize        int       `json:"buffer_size"`
	BufferUtilization float64   `json:"buffer_utilization"`
}
