package catalog

import (
	"context"
)

//go:generate mockgen -source=api.go -package catalog -destination api_mock.go API
type API interface {
	ListCategories(c context.Context) ([]Category, error)
	ListProducts(c context.Context) ([]Product, error)
	GetCategoryProducts(c context.Context, categoryID int) (CategoryProducts, error)
	GetProduct(c context.Context, productID int) (Product, error)
}

// BasketCounter reports how many items the basket of a shopper holds.
type BasketCounter interface {
	ItemCount(c context.Context, shopperUID string) int
}
