package mypublisher

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/MarcGrol/storefront/lib/myevents"
	"github.com/MarcGrol/storefront/lib/mytime"
)

type enveloper struct {
	nower mytime.Nower
}

func newEnveloper(nower mytime.Nower) enveloper {
	return enveloper{
		nower: nower,
	}
}

// seal wraps event in an envelope whose UID is derived from its content, so publishing the
// same event twice (a retried order recording) leaves one envelope in the outbox.
func (e enveloper) seal(topic string, event myevents.Event) (myevents.Envelope, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return myevents.Envelope{}, fmt.Errorf("error serializing %s event: %s", event.EventType(), err)
	}

	return myevents.Envelope{
		UID:          contentUID(topic, event.EventType(), event.AggregateUID(), payload),
		Topic:        topic,
		EventType:    event.EventType(),
		AggregateUID: event.AggregateUID(),
		Payload:      string(payload),
		CreatedAt:    e.nower.Now(),
	}, nil
}

func contentUID(topic string, eventType string, aggregateUID string, payload []byte) string {
	sha2 := sha256.New()
	for _, part := range [][]byte{[]byte(topic), []byte(eventType), []byte(aggregateUID), payload} {
		sha2.Write(part)
		sha2.Write([]byte{0})
	}
	return base64.RawURLEncoding.EncodeToString(sha2.Sum(nil))
}
