package amqp

import (
	"encoding/json"
	"time"
)

const (
	ActionSync   = "sync"
	ActionDelete = "delete"
)

// ContractChangeMessage tells the sync worker that a contract changed.
// It carries only the ID and the action; the worker re-reads everything else
// from storage so a stale message can never overwrite newer data.
type ContractChangeMessage struct {
	ID        int64     `json:"id"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

func NewContractChangeMessage(id int64, action string) *ContractChangeMessage {
	return &ContractChangeMessage{
		ID:        id,
		Action:    action,
		Timestamp: time.Now(),
	}
}

func (m *ContractChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ContractChangeMessageFromJSON(data []byte) (*ContractChangeMessage, error) {
	var msg ContractChangeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
