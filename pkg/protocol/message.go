// Package protocol defines the WebSocket message types exchanged between
// the pluto daemon and its clients (browser dashboard, pluto-ctl).
package protocol

import (
	"encoding/json"
	"fmt"
	"time"
)

// MessageType identifies the type of WebSocket message
type MessageType string

const (
	// Daemon → Client messages
	TypeLog    MessageType = "log_message"   // Transcript/log line
	TypeStatus MessageType = "status_update" // Short status banner text
	TypeState  MessageType = "state"         // Assistant state snapshot

	// Client → Daemon messages
	TypeUserMessage     MessageType = "user_message"     // Typed command text
	TypeToggleListening MessageType = "toggle_listening" // Flip/force the listening flag
	TypeChangeLanguage  MessageType = "change_language"  // Switch response language
	TypeGetStatus       MessageType = "get_status"       // Request a state snapshot

	// Bidirectional
	TypePing MessageType = "ping" // Health check
	TypePong MessageType = "pong" // Health check response
)

// Log entry roles for TypeLog messages.
const (
	RoleUser   = "user"
	RoleAI     = "ai"
	RoleSystem = "system"
)

// Message is the base wrapper for all WebSocket messages
type Message struct {
	Type      MessageType     `json:"type"`
	Timestamp int64           `json:"ts,omitempty"` // Unix milliseconds
	Data      json.RawMessage `json:"data,omitempty"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(msgType MessageType, data interface{}) (*Message, error) {
	var rawData json.RawMessage
	if data != nil {
		var err error
		rawData, err = json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal message data: %w", err)
		}
	}

	return &Message{
		Type:      msgType,
		Timestamp: time.Now().UnixMilli(),
		Data:      rawData,
	}, nil
}

// ParseData unmarshals the message data into the provided struct
func (m *Message) ParseData(v interface{}) error {
	if m.Data == nil {
		return nil
	}
	return json.Unmarshal(m.Data, v)
}

// Bytes returns the JSON-encoded message
func (m *Message) Bytes() ([]byte, error) {
	return json.Marshal(m)
}

// ParseMessage parses a JSON message from bytes
func ParseMessage(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("failed to parse message: %w", err)
	}
	return &msg, nil
}

// =============================================================================
// Daemon → Client Message Types
// =============================================================================

// LogData is one transcript/log line for the dashboard.
type LogData struct {
	ID       string `json:"id,omitempty"` // Entry UUID
	Data     string `json:"data"`         // The spoken/typed text
	Role     string `json:"type"`         // "user", "ai", "system"
	Language string `json:"language,omitempty"`
}

// StatusData is a short status banner shown above the transcript.
type StatusData struct {
	Data string `json:"data"`
}

// StateData is a snapshot of the assistant's externally visible state.
type StateData struct {
	Listening        bool           `json:"listening"`
	Language         string         `json:"language"`
	Online           bool           `json:"online"`
	AvailableModels  []string       `json:"available_models,omitempty"`
	CapabilityCounts map[string]int `json:"capability_counts,omitempty"`
	HasGeneratedCode bool           `json:"has_generated_code"`
}

// =============================================================================
// Client → Daemon Message Types
// =============================================================================

// UserMessageData carries a typed command from the dashboard.
type UserMessageData struct {
	Data string `json:"data"`
}

// ToggleListeningData optionally forces the listening flag; when Enabled
// is nil the daemon flips the current value.
type ToggleListeningData struct {
	Enabled *bool `json:"enabled,omitempty"`
}

// ChangeLanguageData switches the response language ("en" or "ta").
type ChangeLanguageData struct {
	Language string `json:"language"`
}

// =============================================================================
// Bidirectional Message Types
// =============================================================================

// PingData contains ping information
type PingData struct {
	ID        string `json:"id"`
	Timestamp int64  `json:"ts"`
}

// PongData contains pong response
type PongData struct {
	ID        string `json:"id"`
	PingTS    int64  `json:"ping_ts"`
	PongTS    int64  `json:"pong_ts"`
	LatencyMs int64  `json:"latency_ms"`
}
