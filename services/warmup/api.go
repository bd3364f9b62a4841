package warmup

import (
	"context"

	"github.com/MarcGrol/storefront/services/catalog"
)

//go:generate mockgen -source=api.go -package warmup -destination api_mock.go OutboxFlusher ProductLister
type OutboxFlusher interface {
	Flush(c context.Context) (int, error)
}

type ProductLister interface {
	Products(c context.Context, filters catalog.Filters, salesOnly bool) ([]catalog.Product, error)
}
