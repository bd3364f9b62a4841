package mypublisher

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/storefront/lib/mycontext"
	"github.com/MarcGrol/storefront/lib/myerrors"
	"github.com/MarcGrol/storefront/lib/myevents"
	"github.com/MarcGrol/storefront/lib/myhttp"
	"github.com/MarcGrol/storefront/lib/mylog"
	"github.com/MarcGrol/storefront/lib/mypubsub"
	"github.com/MarcGrol/storefront/lib/myqueue"
	"github.com/MarcGrol/storefront/lib/mystore"
	"github.com/MarcGrol/storefront/lib/mytime"
)

// TransactionalPublisher stores events in an outbox first and publishes them from a queued trigger,
// so an event is never lost when the pubsub backend is temporarily unavailable.
type TransactionalPublisher struct {
	outbox    mystore.Store[myevents.Envelope]
	queue     myqueue.TaskQueuer
	enveloper enveloper
	pubsub    mypubsub.PubSub
	nower     mytime.Nower
	logger    mylog.Logger
}

func New(c context.Context, pubsub mypubsub.PubSub, queue myqueue.TaskQueuer, nower mytime.Nower, logger mylog.Logger) (*TransactionalPublisher, func(), error) {
	store, storeCleanup, err := mystore.New[myevents.Envelope](c)
	if err != nil {
		return nil, nil, err
	}

	return NewWithOutbox(store, pubsub, queue, nower, logger), storeCleanup, nil
}

func NewWithOutbox(outbox mystore.Store[myevents.Envelope], pubsub mypubsub.PubSub, queue myqueue.TaskQueuer, nower mytime.Nower, logger mylog.Logger) *TransactionalPublisher {
	return &TransactionalPublisher{
		outbox:    outbox,
		queue:     queue,
		enveloper: newEnveloper(nower),
		pubsub:    pubsub,
		nower:     nower,
		logger:    logger,
	}
}

func (p *TransactionalPublisher) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/pubsub/{topic}/{uid}", p.processTriggerPage()).Methods("PUT")
}

func (p *TransactionalPublisher) CreateTopic(c context.Context, topicName string) error {
	return p.pubsub.CreateTopic(c, topicName)
}

func (p *TransactionalPublisher) Publish(c context.Context, topic string, event myevents.Event) error {
	envelope, err := p.enveloper.seal(topic, event)
	if err != nil {
		return fmt.Errorf("error creating envelope: %s", err)
	}
	err = p.outbox.Put(c, envelope.UID, envelope)
	if err != nil {
		return fmt.Errorf("error storing envelope: %s", err)
	}

	err = p.queue.Enqueue(c, myqueue.Task{
		UID:            envelope.UID,
		WebhookURLPath: fmt.Sprintf("/pubsub/%s/%s", envelope.Topic, envelope.UID),
		Payload:        []byte{},
	})
	if err != nil {
		return fmt.Errorf("error queueing publication-trigger %s: %s", envelope.UID, err)
	}

	p.logger.Log(c, envelope.AggregateUID, mylog.SeverityInfo, "Enqueued event %s", envelope)

	return nil
}

// Flush publishes every envelope that is still waiting in the outbox, oldest first.
func (p *TransactionalPublisher) Flush(c context.Context) (int, error) {
	envelopes, err := p.outbox.Query(c, []mystore.Filter{mystore.Equal("Published", false)}, "CreatedAt")
	if err != nil {
		return 0, fmt.Errorf("error fetching unpublished envelopes: %s", err)
	}

	p.logger.Log(c, "", mylog.SeverityInfo, "Found %d unpublished events", len(envelopes))

	for _, envelope := range envelopes {
		err = p.processTrigger(c, envelope.Topic, envelope.UID)
		if err != nil {
			return 0, err
		}
	}

	return len(envelopes), nil
}

func (p *TransactionalPublisher) processTriggerPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(p.logger)

		topicName := mux.Vars(r)["topic"]
		eventUID := mux.Vars(r)["uid"]

		err := p.processTrigger(c, topicName, eventUID)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{
			Message: "Successfully processed trigger",
		})
	}
}

func (p *TransactionalPublisher) processTrigger(c context.Context, topicName string, uid string) error {
	return p.outbox.RunInTransaction(c, func(c context.Context) error {
		envelope, found, err := p.outbox.Get(c, uid)
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error fetching envelope %s: %s", uid, err))
		}
		if !found {
			return myerrors.NewNotFoundError(fmt.Errorf("envelope %s not found", uid))
		}
		if envelope.Topic != topicName {
			return myerrors.NewInvalidInputErrorf("envelope %s belongs to topic %s, not %s", uid, envelope.Topic, topicName)
		}

		// must be idempotent: task queues deliver at least once
		if envelope.Published {
			p.logger.Log(c, envelope.AggregateUID, mylog.SeverityInfo, "Event %s already published", envelope)
			return nil
		}

		jsonBytes, err := json.Marshal(envelope)
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error serializing event: %s", err))
		}

		err = p.pubsub.Publish(c, envelope.Topic, string(jsonBytes))
		if err != nil {
			return myerrors.NewUnavailableError(fmt.Errorf("error publishing event: %s", err))
		}

		envelope.Published = true
		envelope.PublishedAt = p.nower.Now()
		err = p.outbox.Put(c, envelope.UID, envelope)
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error storing envelope: %s", err))
		}

		p.logger.Log(c, envelope.AggregateUID, mylog.SeverityInfo, "Published event %s", envelope)

		return nil
	})
}
