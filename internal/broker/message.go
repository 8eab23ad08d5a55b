// Package broker relays time-clock events to RabbitMQ and reads them back.
package broker

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/frahmantamala/ponto-eletronico/internal/core/events"
)

// Message is the JSON body written to the queue for every event.
type Message struct {
	ID         string                 `json:"id"`
	Type       string                 `json:"type"`
	Timestamp  time.Time              `json:"occurredAt"`
	Data       map[string]interface{} `json:"data"`
}

func (m Message) EventType() string {
	return m.Type
}

func (m Message) EventID() string {
	return m.ID
}

func (m Message) OccurredAt() time.Time {
	return m.Timestamp
}

func (m Message) Payload() interface{} {
	return m.Data
}

func NewMessage(event events.Event) Message {
	msg := Message{
		ID:         event.EventID(),
		Type:       event.EventType(),
		Timestamp:  event.OccurredAt().UTC(),
	}
	if data, ok := event.Payload().(map[string]interface{}); ok {
		msg.Data = data
	}
	return msg
}

func Encode(event events.Event) ([]byte, error) {
	body, err := json.Marshal(NewMessage(event))
	if err != nil {
		return nil, fmt.Errorf("encode event %s: %w", event.EventType(), err)
	}
	return body, nil
}

func Decode(body []byte) (Message, error) {
	var msg Message
	if err := json.Unmarshal(body, &msg); err != nil {
		return Message{}, fmt.Errorf("decode event: %w", err)
	}
	if msg.Type == "" {
		return Message{}, fmt.Errorf("decode event: missing type")
	}
	return msg, nil
}
