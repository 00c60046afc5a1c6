package server

import (
	"encoding/json"
	"time"
)

// MessageType identifies the kind of WebSocket message
type MessageType string

const (
	// Client → Server
	MessageTypeSelect MessageType = "select"

	// Server → Client
	MessageTypeResult MessageType = "result"
	MessageTypeError  MessageType = "error"
)

// Message represents the base WebSocket message structure
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(messageType MessageType, data interface{}) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// Client → Server Messages

// SelectData is the client's current card/pot selection. Cards use the
// compact notation ("AsKd"); board may cover zero to five cards. Pot is
// free text from an input field and is coerced server-side, with anything
// unparseable treated as zero.
type SelectData struct {
	Hole  string `json:"hole"`
	Board string `json:"board,omitempty"`
	Pot   string `json:"pot,omitempty"`
}

// Server → Client Messages

// ResultData carries a computed distribution and expected value. Seq
// increases monotonically per connection; clients can ignore anything
// below the highest sequence they have seen, though the server already
// publishes results in order.
type ResultData struct {
	Seq           uint64             `json:"seq"`
	Hole          string             `json:"hole"`
	Board         string             `json:"board,omitempty"`
	Pot           float64            `json:"pot"`
	Probabilities map[string]float64 `json:"probabilities"`
	EV            float64            `json:"ev"`
}

// ErrorData reports a rejected request
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
