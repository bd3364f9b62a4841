package mypublisher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/storefront/lib/myevents"
	"github.com/MarcGrol/storefront/lib/mylog"
	"github.com/MarcGrol/storefront/lib/mypubsub"
	"github.com/MarcGrol/storefront/lib/myqueue"
	"github.com/MarcGrol/storefront/lib/mystore"
	"github.com/MarcGrol/storefront/lib/mytime"
)

type thingHappened struct {
	ThingUID string
}

func (e thingHappened) EventType() string {
	return "thing.happened"
}

func (e thingHappened) AggregateUID() string {
	return e.ThingUID
}

func setup(ctrl *gomock.Controller) (*TransactionalPublisher, mystore.Store[myevents.Envelope], *mypubsub.MockPubSub, *myqueue.MockTaskQueuer, *mux.Router) {
	outbox, _, _ := mystore.NewInMemoryStore[myevents.Envelope](context.TODO())
	pubsub := mypubsub.NewMockPubSub(ctrl)
	queue := myqueue.NewMockTaskQueuer(ctrl)
	nower := mytime.NewMockNower(ctrl)
	nower.EXPECT().Now().Return(mytime.ExampleTime).AnyTimes()

	sut := NewWithOutbox(outbox, pubsub, queue, nower, mylog.New("test"))

	router := mux.NewRouter()
	sut.RegisterEndpoints(context.TODO(), router)

	return sut, outbox, pubsub, queue, router
}

func trigger(router *mux.Router, path string) *httptest.ResponseRecorder {
	request, _ := http.NewRequest(http.MethodPut, path, nil)
	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)
	return response
}

func TestTransactionalPublisher(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("Publish stores envelope and enqueues trigger", func(t *testing.T) {
		// given
		sut, outbox, _, queue, _ := setup(ctrl)
		var task myqueue.Task
		queue.EXPECT().Enqueue(gomock.Any(), gomock.Any()).DoAndReturn(func(c context.Context, t myqueue.Task) error {
			task = t
			return nil
		})

		// when
		err := sut.Publish(context.TODO(), "thing", thingHappened{ThingUID: "123"})

		// then
		assert.NoError(t, err)
		envelopes, _ := outbox.List(context.TODO())
		assert.Len(t, envelopes, 1)
		assert.Equal(t, "thing", envelopes[0].Topic)
		assert.Equal(t, "123", envelopes[0].AggregateUID)
		assert.Equal(t, "thing.happened", envelopes[0].EventType)
		assert.Equal(t, `{"ThingUID":"123"}`, envelopes[0].Payload)
		assert.Equal(t, mytime.ExampleTime, envelopes[0].CreatedAt)
		assert.False(t, envelopes[0].Published)
		assert.Equal(t, envelopes[0].UID, task.UID)
		assert.Equal(t, "/pubsub/thing/"+envelopes[0].UID, task.WebhookURLPath)
	})

	t.Run("Same event gets same uid", func(t *testing.T) {
		// given
		sut, outbox, _, queue, _ := setup(ctrl)
		queue.EXPECT().Enqueue(gomock.Any(), gomock.Any()).Return(nil).Times(3)

		// when
		sut.Publish(context.TODO(), "thing", thingHappened{ThingUID: "123"})
		sut.Publish(context.TODO(), "thing", thingHappened{ThingUID: "123"})
		sut.Publish(context.TODO(), "other", thingHappened{ThingUID: "123"})

		// then
		envelopes, _ := outbox.List(context.TODO())
		assert.Len(t, envelopes, 2)
	})

	t.Run("Enqueue failure", func(t *testing.T) {
		// given
		sut, _, _, queue, _ := setup(ctrl)
		queue.EXPECT().Enqueue(gomock.Any(), gomock.Any()).Return(errors.New("queue down"))

		// when
		err := sut.Publish(context.TODO(), "thing", thingHappened{ThingUID: "123"})

		// then
		assert.Error(t, err)
	})

	t.Run("Trigger publishes once", func(t *testing.T) {
		// given
		sut, outbox, pubsub, queue, router := setup(ctrl)
		var task myqueue.Task
		queue.EXPECT().Enqueue(gomock.Any(), gomock.Any()).DoAndReturn(func(c context.Context, t myqueue.Task) error {
			task = t
			return nil
		})
		sut.Publish(context.TODO(), "thing", thingHappened{ThingUID: "123"})
		pubsub.EXPECT().Publish(gomock.Any(), "thing", gomock.Any()).DoAndReturn(func(c context.Context, topic string, data string) error {
			assert.JSONEq(t, `{"uid":"`+task.UID+`","topic":"thing","eventType":"thing.happened","aggregateUid":"123","payload":"{\"ThingUID\":\"123\"}","createdAt":"`+mytime.ExampleTime.Format(time.RFC3339Nano)+`"}`, data)
			return nil
		}).Times(1)

		// when
		first := trigger(router, task.WebhookURLPath)
		second := trigger(router, task.WebhookURLPath)

		// then
		assert.Equal(t, http.StatusOK, first.Code)
		assert.Equal(t, http.StatusOK, second.Code)
		envelope, found, _ := outbox.Get(context.TODO(), task.UID)
		assert.True(t, found)
		assert.True(t, envelope.Published)
		assert.Equal(t, mytime.ExampleTime, envelope.PublishedAt)
	})

	t.Run("Trigger for unknown envelope", func(t *testing.T) {
		// given
		_, _, _, _, router := setup(ctrl)

		// when
		response := trigger(router, "/pubsub/thing/unknown")

		// then
		assert.Equal(t, http.StatusNotFound, response.Code)
	})

	t.Run("Trigger with pubsub failure keeps envelope pending", func(t *testing.T) {
		// given
		sut, outbox, pubsub, queue, router := setup(ctrl)
		var task myqueue.Task
		queue.EXPECT().Enqueue(gomock.Any(), gomock.Any()).DoAndReturn(func(c context.Context, t myqueue.Task) error {
			task = t
			return nil
		})
		sut.Publish(context.TODO(), "thing", thingHappened{ThingUID: "123"})
		pubsub.EXPECT().Publish(gomock.Any(), "thing", gomock.Any()).Return(errors.New("pubsub down"))

		// when
		response := trigger(router, task.WebhookURLPath)

		// then
		assert.Equal(t, http.StatusServiceUnavailable, response.Code)
		envelope, _, _ := outbox.Get(context.TODO(), task.UID)
		assert.False(t, envelope.Published)
	})

	t.Run("Flush publishes pending envelopes", func(t *testing.T) {
		// given
		sut, outbox, pubsub, queue, _ := setup(ctrl)
		queue.EXPECT().Enqueue(gomock.Any(), gomock.Any()).Return(nil).Times(2)
		sut.Publish(context.TODO(), "thing", thingHappened{ThingUID: "1"})
		sut.Publish(context.TODO(), "thing", thingHappened{ThingUID: "2"})
		pubsub.EXPECT().Publish(gomock.Any(), "thing", gomock.Any()).Return(nil).Times(2)

		// when
		count, err := sut.Flush(context.TODO())

		// then
		assert.NoError(t, err)
		assert.Equal(t, 2, count)
		pending, _ := outbox.Query(context.TODO(), []mystore.Filter{mystore.Equal("Published", false)}, "")
		assert.Empty(t, pending)
	})
}
