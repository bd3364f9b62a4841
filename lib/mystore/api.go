package mystore

import (
	"context"
	"os"
)

type ctxTransactionKey struct{}

// Filter selects entities whose Field compares to Value. Only "=" is supported by every backend.
type Filter struct {
	Field   string
	Compare string
	Value   any
}

func Equal(field string, value any) Filter {
	return Filter{Field: field, Compare: "=", Value: value}
}

// Store persists values of one kind by uid. Within RunInTransaction, Get and Put must be
// called with the context handed to f.
type Store[T any] interface {
	RunInTransaction(c context.Context, f func(c context.Context) error) error
	Put(c context.Context, uid string, value T) error
	Get(c context.Context, uid string) (T, bool, error)
	List(c context.Context) ([]T, error)
	// Query returns the values matching all filters, ascending by orderByField when it is set.
	Query(c context.Context, filters []Filter, orderByField string) ([]T, error)
}

// New returns a Cloud Datastore store when GOOGLE_CLOUD_PROJECT is set, an in-memory one otherwise.
func New[T any](c context.Context) (Store[T], func(), error) {
	if os.Getenv("GOOGLE_CLOUD_PROJECT") != "" {
		return newGcloudStore[T](c)
	}

	return NewInMemoryStore[T](c)
}
