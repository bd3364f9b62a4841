package order

import (
	"context"

	"github.com/MarcGrol/storefront/services/basket"
)

//go:generate mockgen -source=api.go -package order -destination api_mock.go OrderSender BasketKeeper
type OrderSender interface {
	SendOrder(c context.Context, order Order) error
	RequestDiscount(c context.Context, contact Contact) error
}

// BasketKeeper gives access to the basket being ordered.
type BasketKeeper interface {
	Basket() basket.Basket
	Subtract(c context.Context, ordered basket.Basket) basket.Basket
}
