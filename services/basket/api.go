package basket

import (
	"context"

	"github.com/MarcGrol/storefront/services/catalog"
)

//go:generate mockgen -source=api.go -package basket -destination api_mock.go ProductFinder
type ProductFinder interface {
	Product(c context.Context, productID int) (catalog.Product, error)
}
