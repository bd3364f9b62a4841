package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/MarcGrol/storefront/lib/mylog"
	"github.com/MarcGrol/storefront/lib/mytime"
)

const (
	scopeAllProducts = "all"
	homePageSales    = 4
)

type Service struct {
	api    API
	cache  *viewCache
	logger mylog.Logger
}

// Use dependency injection to isolate the infrastructure and ease testing
func NewService(api API, cacheTTL time.Duration, nower mytime.Nower, logger mylog.Logger) *Service {
	return &Service{
		api:    api,
		cache:  newViewCache(cacheTTL, nower),
		logger: logger,
	}
}

func (s *Service) Categories(c context.Context) ([]Category, error) {
	s.logger.Log(c, "", mylog.SeverityInfo, "Fetch all categories")

	return s.api.ListCategories(c)
}

func (s *Service) Products(c context.Context, filters Filters, salesOnly bool) ([]Product, error) {
	s.logger.Log(c, "", mylog.SeverityInfo, "Fetch all products (%+v, sales:%v)", filters, salesOnly)

	view, err := s.fetch(c, scopeAllProducts, func(c context.Context) (CategoryProducts, error) {
		products, err := s.api.ListProducts(c)
		if err != nil {
			return CategoryProducts{}, err
		}
		return CategoryProducts{Products: products}, nil
	})
	if err != nil {
		return nil, err
	}

	return Derive(view.Products, filters, salesOnly), nil
}

func (s *Service) CategoryProducts(c context.Context, categoryID int, filters Filters, salesOnly bool) (CategoryProducts, error) {
	s.logger.Log(c, "", mylog.SeverityInfo, "Fetch products of category %d (%+v)", categoryID, filters)

	view, err := s.fetch(c, fmt.Sprintf("category/%d", categoryID), func(c context.Context) (CategoryProducts, error) {
		return s.api.GetCategoryProducts(c, categoryID)
	})
	if err != nil {
		return CategoryProducts{}, err
	}

	return CategoryProducts{
		Category: view.Category,
		Products: Derive(view.Products, filters, salesOnly),
	}, nil
}

func (s *Service) Product(c context.Context, productID int) (Product, error) {
	s.logger.Log(c, "", mylog.SeverityInfo, "Fetch product %d", productID)

	return s.api.GetProduct(c, productID)
}

func (s *Service) Sales(c context.Context, n int) ([]Product, error) {
	all, err := s.Products(c, DefaultFilters(), true)
	if err != nil {
		return nil, err
	}
	return RandomSales(all, n), nil
}

func (s *Service) fetch(c context.Context, scope string, fetcher func(c context.Context) (CategoryProducts, error)) (CategoryProducts, error) {
	view, found := s.cache.get(scope)
	if found {
		return view, nil
	}

	generation := s.cache.begin()
	view, err := fetcher(c)
	if err != nil {
		return CategoryProducts{}, err
	}

	current, committed := s.cache.commit(scope, generation, view)
	if !committed {
		s.logger.Log(c, "", mylog.SeverityInfo, "Discarded superseded fetch #%d of %s", generation, scope)
	}
	return current, nil
}
