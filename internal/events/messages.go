package events

import (
	"encoding/json"
	"time"
)

// ChangeMessage announces that one persisted budget field changed. It names
// the field only; interested consumers read the current value from storage.
type ChangeMessage struct {
	Field     string    `json:"field"`
	Timestamp time.Time `json:"timestamp"`
}

// NewChangeMessage creates a change message for the given field.
func NewChangeMessage(field string) *ChangeMessage {
	return &ChangeMessage{
		Field:     field,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *ChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ChangeMessageFromJSON creates a message from JSON bytes.
func ChangeMessageFromJSON(data []byte) (*ChangeMessage, error) {
	var msg ChangeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
