package order

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/MarcGrol/storefront/lib/myerrors"
	"github.com/MarcGrol/storefront/lib/mylog"
	"github.com/MarcGrol/storefront/lib/mystore"
	"github.com/MarcGrol/storefront/services/order/orderevents"
)

// Submit sends the basket as an order and takes the ordered items out of it. Items added while
// the order was underway stay in the basket. When the remote order endpoint fails the basket is
// left as it was.
func (s *Service) Submit(c context.Context, shopperUID string, contact Contact, keeper BasketKeeper) (string, Order, error) {
	contact = contact.normalized()
	err := contact.validate()
	if err != nil {
		return "", Order{}, err
	}

	b := keeper.Basket()
	if b.IsEmpty() {
		return "", Order{}, myerrors.NewInvalidInputErrorf("basket is empty")
	}

	order := newOrder(contact, b)
	orderUID := s.uuider.Create()

	s.logger.Log(c, orderUID, mylog.SeverityInfo, "Submitting order %s with %d items for %s", orderUID, order.ItemCount(), order.TotalLabel())

	err = s.sender.SendOrder(c, order)
	if err != nil {
		return "", Order{}, err
	}

	// the remote side already accepted the order: recording failures are only logged
	err = s.record(c, orderUID, shopperUID, order)
	if err != nil {
		s.logger.Log(c, orderUID, mylog.SeverityError, "Error recording order %s: %s", orderUID, err)
	}

	keeper.Subtract(c, b)

	return orderUID, order, nil
}

func (s *Service) record(c context.Context, orderUID string, shopperUID string, order Order) error {
	payload, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("error serializing order: %s", err)
	}

	record := OrderRecord{
		UID:        orderUID,
		ShopperUID: shopperUID,
		CreatedAt:  s.nower.Now(),
		ItemCount:  order.ItemCount(),
		Total:      order.Total.StringFixed(2),
		Payload:    string(payload),
	}

	return s.orderStore.RunInTransaction(c, func(c context.Context) error {
		err := s.orderStore.Put(c, orderUID, record)
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		err = s.publisher.Publish(c, orderevents.TopicName, orderevents.OrderSubmitted{
			OrderUID:   orderUID,
			ShopperUID: shopperUID,
			ItemCount:  record.ItemCount,
			Total:      record.Total,
		})
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		return nil
	})
}

// ListOrders returns the orders of a shopper, newest first.
func (s *Service) ListOrders(c context.Context, shopperUID string) ([]OrderRecord, error) {
	s.logger.Log(c, shopperUID, mylog.SeverityInfo, "Fetch orders of shopper %s", shopperUID)

	orders, err := s.orderStore.Query(c, []mystore.Filter{mystore.Equal("ShopperUID", shopperUID)}, "CreatedAt")
	if err != nil {
		return nil, myerrors.NewInternalError(err)
	}

	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

// RequestDiscount registers the contact details of a shopper for the first-order discount.
func (s *Service) RequestDiscount(c context.Context, contact Contact) error {
	contact = contact.normalized()
	err := contact.validate()
	if err != nil {
		return err
	}

	requestUID := s.uuider.Create()
	s.logger.Log(c, requestUID, mylog.SeverityInfo, "Requesting discount for %s", contact.Email)

	err = s.sender.RequestDiscount(c, contact)
	if err != nil {
		return err
	}

	err = s.publisher.Publish(c, orderevents.TopicName, orderevents.DiscountRequested{
		RequestUID: requestUID,
		Email:      contact.Email,
	})
	if err != nil {
		s.logger.Log(c, requestUID, mylog.SeverityError, "Error publishing discount request %s: %s", requestUID, err)
	}

	return nil
}
