package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/storefront/lib/myerrors"
	"github.com/MarcGrol/storefront/lib/myevents"
	"github.com/MarcGrol/storefront/lib/mylog"
	"github.com/MarcGrol/storefront/lib/mypublisher"
	"github.com/MarcGrol/storefront/lib/mystore"
	"github.com/MarcGrol/storefront/lib/mytime"
	"github.com/MarcGrol/storefront/lib/myuuid"
	"github.com/MarcGrol/storefront/services/basket"
	"github.com/MarcGrol/storefront/services/catalog"
	"github.com/MarcGrol/storefront/services/order/orderevents"
)

var contact = Contact{Name: "Marc", Phone: "+31612345678", Email: "marc@home.nl"}

type mocks struct {
	sender    *MockOrderSender
	publisher *mypublisher.MockPublisher
	uuider    *myuuid.MockUUIDer
	orders    mystore.Store[OrderRecord]
}

func newSUT(ctrl *gomock.Controller) (*Service, mocks) {
	c := context.TODO()
	m := mocks{
		sender:    NewMockOrderSender(ctrl),
		publisher: mypublisher.NewMockPublisher(ctrl),
		uuider:    myuuid.NewMockUUIDer(ctrl),
	}
	m.orders, _, _ = mystore.NewInMemoryStore[OrderRecord](c)
	nower := mytime.NewMockNower(ctrl)
	nower.EXPECT().Now().Return(mytime.ExampleTime).AnyTimes()

	return NewService(m.sender, m.orders, m.publisher, nower, m.uuider, mylog.New("test")), m
}

func filledBasket(ctrl *gomock.Controller) *basket.Store {
	c := context.TODO()
	storage, _, _ := mystore.NewInMemoryStore[basket.StoredBasket](c)
	nower := mytime.NewMockNower(ctrl)
	nower.EXPECT().Now().Return(mytime.ExampleTime).AnyTimes()

	store := basket.NewStore(c, basket.LocalStorageKey, storage, nower, mylog.New("test"))
	store.Add(c, catalog.Product{ID: 1, Price: decimal.NewFromInt(100), DiscontPrice: decimal.NewNullDecimal(decimal.NewFromInt(80))}, 2)
	store.Add(c, catalog.Product{ID: 2, Price: decimal.RequireFromString("12.5")}, 1)
	return store
}

func TestSubmitOrder(t *testing.T) {
	c := context.TODO()

	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		sut, m := newSUT(ctrl)
		keeper := filledBasket(ctrl)
		m.uuider.EXPECT().Create().Return("order-1")
		m.sender.EXPECT().SendOrder(gomock.Any(), gomock.Any()).DoAndReturn(func(c context.Context, order Order) error {
			assert.Equal(t, contact, order.Contact)
			assert.Len(t, order.Items, 2)
			assert.Equal(t, 1, order.Items[0].ID)
			assert.Equal(t, 2, order.Items[0].Quantity)
			assert.Equal(t, "80", order.Items[0].Price.String())
			assert.Equal(t, "12.5", order.Items[1].Price.String())
			assert.Equal(t, "172.5", order.Total.String())
			return nil
		})
		m.publisher.EXPECT().Publish(gomock.Any(), orderevents.TopicName, gomock.Any()).DoAndReturn(func(c context.Context, topic string, event myevents.Event) error {
			assert.Equal(t, orderevents.OrderSubmitted{
				OrderUID:   "order-1",
				ShopperUID: "shopper-1",
				ItemCount:  3,
				Total:      "172.50",
			}, event)
			return nil
		})

		// when
		orderUID, order, err := sut.Submit(c, "shopper-1", contact, keeper)

		// then
		assert.NoError(t, err)
		assert.Equal(t, "order-1", orderUID)
		assert.Equal(t, 3, order.ItemCount())
		assert.Equal(t, "$172.50", order.TotalLabel())
		assert.True(t, keeper.Basket().IsEmpty())

		record, found, err := m.orders.Get(c, "order-1")
		assert.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "shopper-1", record.ShopperUID)
		assert.Equal(t, mytime.ExampleTime, record.CreatedAt)
		assert.Equal(t, "172.50", record.Total)
		assert.Contains(t, record.Payload, `"email":"marc@home.nl"`)
	})

	t.Run("Contact details are trimmed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		sut, m := newSUT(ctrl)
		m.uuider.EXPECT().Create().Return("order-1")
		m.sender.EXPECT().SendOrder(gomock.Any(), gomock.Any()).DoAndReturn(func(c context.Context, order Order) error {
			assert.Equal(t, contact, order.Contact)
			return nil
		})
		m.publisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		// when
		_, _, err := sut.Submit(c, "shopper-1", Contact{Name: " Marc ", Phone: "+31612345678\n", Email: "\tmarc@home.nl"}, filledBasket(ctrl))

		// then
		assert.NoError(t, err)
	})

	t.Run("Invalid contact details", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		sut, _ := newSUT(ctrl)

		for _, tc := range []struct {
			name    string
			contact Contact
			message string
		}{
			{name: "all missing", contact: Contact{}, message: "missing name, phone, email"},
			{name: "blank name", contact: Contact{Name: "  ", Phone: "1", Email: "a@b"}, message: "missing name"},
			{name: "invalid email", contact: Contact{Name: "Marc", Phone: "1", Email: "marc"}, message: "invalid email"},
		} {
			t.Run(tc.name, func(t *testing.T) {
				keeper := filledBasket(ctrl)

				_, _, err := sut.Submit(c, "shopper-1", tc.contact, keeper)

				assert.Error(t, err)
				assert.Equal(t, 400, myerrors.GetHTTPStatus(err))
				assert.Contains(t, err.Error(), tc.message)
				assert.Equal(t, 3, keeper.Basket().Count())
			})
		}
	})

	t.Run("Empty basket", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		sut, _ := newSUT(ctrl)
		keeper := NewMockBasketKeeper(ctrl)
		keeper.EXPECT().Basket().Return(basket.Basket{})

		// when
		_, _, err := sut.Submit(c, "shopper-1", contact, keeper)

		// then
		assert.Error(t, err)
		assert.Equal(t, 400, myerrors.GetHTTPStatus(err))
	})

	t.Run("Remote failure keeps basket", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		sut, m := newSUT(ctrl)
		keeper := filledBasket(ctrl)
		m.uuider.EXPECT().Create().Return("order-1")
		m.sender.EXPECT().SendOrder(gomock.Any(), gomock.Any()).Return(myerrors.NewUnavailableError(errors.New("connection refused")))

		// when
		_, _, err := sut.Submit(c, "shopper-1", contact, keeper)

		// then
		assert.Error(t, err)
		assert.Equal(t, 503, myerrors.GetHTTPStatus(err))
		assert.Equal(t, 3, keeper.Basket().Count())

		_, found, _ := m.orders.Get(c, "order-1")
		assert.False(t, found)
	})

	t.Run("Items added while ordering stay in basket", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		sut, m := newSUT(ctrl)
		keeper := filledBasket(ctrl)
		m.uuider.EXPECT().Create().Return("order-1")
		m.sender.EXPECT().SendOrder(gomock.Any(), gomock.Any()).DoAndReturn(func(c context.Context, order Order) error {
			// the shopper keeps shopping in another tab
			keeper.Add(c, catalog.Product{ID: 1, Price: decimal.NewFromInt(100), DiscontPrice: decimal.NewNullDecimal(decimal.NewFromInt(80))}, 1)
			keeper.Add(c, catalog.Product{ID: 3, Price: decimal.NewFromInt(4)}, 1)
			return nil
		})
		m.publisher.EXPECT().Publish(gomock.Any(), orderevents.TopicName, gomock.Any()).Return(nil)

		// when
		_, order, err := sut.Submit(c, "shopper-1", contact, keeper)

		// then
		assert.NoError(t, err)
		assert.Equal(t, 3, order.ItemCount())

		remaining := map[int]int{}
		for _, item := range keeper.Basket().Items() {
			remaining[item.ID] = item.Quantity
		}
		assert.Equal(t, map[int]int{1: 1, 3: 1}, remaining)
		assert.Equal(t, "84", keeper.Basket().Total().String())
	})

	t.Run("Publication failure still completes order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		sut, m := newSUT(ctrl)
		keeper := filledBasket(ctrl)
		m.uuider.EXPECT().Create().Return("order-1")
		m.sender.EXPECT().SendOrder(gomock.Any(), gomock.Any()).Return(nil)
		m.publisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("queue down"))

		// when
		orderUID, _, err := sut.Submit(c, "shopper-1", contact, keeper)

		// then
		assert.NoError(t, err)
		assert.Equal(t, "order-1", orderUID)
		assert.True(t, keeper.Basket().IsEmpty())
	})
}

func TestListOrders(t *testing.T) {
	c := context.TODO()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// given
	sut, m := newSUT(ctrl)
	m.orders.Put(c, "order-1", OrderRecord{UID: "order-1", ShopperUID: "shopper-1", CreatedAt: mytime.ExampleTime})
	m.orders.Put(c, "order-2", OrderRecord{UID: "order-2", ShopperUID: "shopper-1", CreatedAt: mytime.ExampleTime.Add(time.Hour)})
	m.orders.Put(c, "order-3", OrderRecord{UID: "order-3", ShopperUID: "shopper-2", CreatedAt: mytime.ExampleTime})

	// when
	orders, err := sut.ListOrders(c, "shopper-1")

	// then
	assert.NoError(t, err)
	assert.Len(t, orders, 2)
	assert.Equal(t, "order-2", orders[0].UID)
	assert.Equal(t, "order-1", orders[1].UID)
}

func TestRequestDiscount(t *testing.T) {
	c := context.TODO()

	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		sut, m := newSUT(ctrl)
		m.uuider.EXPECT().Create().Return("request-1")
		m.sender.EXPECT().RequestDiscount(gomock.Any(), contact).Return(nil)
		m.publisher.EXPECT().Publish(gomock.Any(), orderevents.TopicName, orderevents.DiscountRequested{
			RequestUID: "request-1",
			Email:      "marc@home.nl",
		}).Return(nil)

		// when
		err := sut.RequestDiscount(c, contact)

		// then
		assert.NoError(t, err)
	})

	t.Run("Invalid email", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		sut, _ := newSUT(ctrl)

		err := sut.RequestDiscount(c, Contact{Name: "Marc", Phone: "1", Email: "nope"})

		assert.Equal(t, 400, myerrors.GetHTTPStatus(err))
	})

	t.Run("Remote failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		sut, m := newSUT(ctrl)
		m.uuider.EXPECT().Create().Return("request-1")
		m.sender.EXPECT().RequestDiscount(gomock.Any(), contact).Return(myerrors.NewUnavailableError(errors.New("down")))

		// when
		err := sut.RequestDiscount(c, contact)

		// then
		assert.Equal(t, 503, myerrors.GetHTTPStatus(err))
	})
}
