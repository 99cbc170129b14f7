package amqp

import (
	"encoding/json"
	"time"
)

// TransactionCreatedMessage is the lightweight event published after a
// transaction has been appended. Consumers fetch the full record themselves;
// the message only carries the id.
type TransactionCreatedMessage struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewTransactionCreatedMessage(id int64) *TransactionCreatedMessage {
	return &TransactionCreatedMessage{
		ID:        id,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *TransactionCreatedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// TransactionCreatedMessageFromJSON decodes a message from JSON bytes.
func TransactionCreatedMessageFromJSON(data []byte) (*TransactionCreatedMessage, error) {
	var msg TransactionCreatedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
