package amqp

import (
	"encoding/json"
	"time"
)

// RefreshMessage tells running servers to drop their cached ledger
// snapshot. It carries no data: consumers refetch the source of truth
// themselves.
type RefreshMessage struct {
	Reason    string    `json:"reason"`
	Timestamp time.Time `json:"timestamp"`
}

// NewRefreshMessage creates a refresh message with the given reason.
func NewRefreshMessage(reason string) *RefreshMessage {
	return &RefreshMessage{
		Reason:    reason,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *RefreshMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// RefreshMessageFromJSON creates a message from JSON bytes
func RefreshMessageFromJSON(data []byte) (*RefreshMessage, error) {
	var msg RefreshMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
