package myevents

import (
	"encoding/json"
	"fmt"
	"time"
)

// Event is a fact a service announces on a topic, like an order that was placed.
type Event interface {
	// EventType is namespaced by topic, e.g. "order.submitted".
	EventType() string
	// AggregateUID identifies the order or request the event is about.
	AggregateUID() string
}

// Envelope carries a serialized Event from the outbox to the pubsub topic.
// Subscribers receive the JSON form; Published and PublishedAt stay in the outbox.
type Envelope struct {
	UID          string    `json:"uid"`
	Topic        string    `json:"topic"`
	EventType    string    `json:"eventType"`
	AggregateUID string    `json:"aggregateUid"`
	Payload      string    `json:"payload" datastore:",noindex"`
	CreatedAt    time.Time `json:"createdAt"`
	Published    bool      `json:"-"`
	PublishedAt  time.Time `json:"-" datastore:",noindex"`
}

func (e Envelope) String() string {
	return e.Topic + "/" + e.EventType + "/" + e.AggregateUID
}

// Decode unmarshals the payload into event when the envelope holds an event of that type.
func (e Envelope) Decode(event Event) error {
	err := json.Unmarshal([]byte(e.Payload), event)
	if err != nil {
		return fmt.Errorf("error decoding payload of %s: %s", e, err)
	}
	if event.EventType() != e.EventType {
		return fmt.Errorf("envelope %s holds %s, not %s", e.UID, e.EventType, event.EventType())
	}
	return nil
}
