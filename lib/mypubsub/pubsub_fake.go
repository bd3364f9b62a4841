package mypubsub

import (
	"context"
	"os"
	"sync"

	"github.com/MarcGrol/storefront/lib/mylog"
)

// fakePubSub only logs what would have been published
type fakePubSub struct {
	sync.Mutex
	logger mylog.Logger
	topics map[string]int
}

func init() {
	if os.Getenv("GOOGLE_CLOUD_PROJECT") == "" {
		New = newFakePubSub
	}
}

func newFakePubSub(c context.Context, logger mylog.Logger) (PubSub, func(), error) {
	return &fakePubSub{
			logger: logger,
			topics: map[string]int{},
		}, func() {
		}, nil
}

func (ps *fakePubSub) CreateTopic(c context.Context, topic string) error {
	ps.Lock()
	defer ps.Unlock()

	if _, exists := ps.topics[topic]; !exists {
		ps.topics[topic] = 0
	}
	return nil
}

func (ps *fakePubSub) Publish(c context.Context, topic string, data string) error {
	ps.Lock()
	defer ps.Unlock()

	ps.topics[topic]++
	ps.logger.Log(c, "", mylog.SeverityInfo, "Published message #%d on topic %s: %s", ps.topics[topic], topic, data)

	return nil
}
