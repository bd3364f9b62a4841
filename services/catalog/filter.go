package catalog

import (
	"math/rand"
	"net/url"
	"sort"
	"strings"

	formcodec "github.com/go-playground/form/v4"
	"github.com/shopspring/decimal"
)

type SortOrder string

const (
	SortDefault      SortOrder = "default"
	SortNewest       SortOrder = "newest"
	SortPriceHighLow SortOrder = "price-high-low"
	SortPriceLowHigh SortOrder = "price-low-high"
)

func (s SortOrder) normalized() SortOrder {
	switch s {
	case SortNewest, SortPriceHighLow, SortPriceLowHigh:
		return s
	default:
		return SortDefault
	}
}

type Filters struct {
	PriceFrom      string    `form:"priceFrom" json:"priceFrom"`
	PriceTo        string    `form:"priceTo" json:"priceTo"`
	DiscountedOnly bool      `form:"discountedOnly" json:"discountedOnly"`
	SortBy         SortOrder `form:"sortBy" json:"sortBy"`
}

func DefaultFilters() Filters {
	return Filters{SortBy: SortDefault}
}

// ParseFilters never fails: fields that cannot be decoded keep their default.
func ParseFilters(values url.Values) Filters {
	filters := DefaultFilters()
	_ = formcodec.NewDecoder().Decode(&filters, values)

	filters.PriceFrom = strings.TrimSpace(filters.PriceFrom)
	filters.PriceTo = strings.TrimSpace(filters.PriceTo)
	filters.SortBy = filters.SortBy.normalized()

	return filters
}

func (f Filters) Values() url.Values {
	values, err := formcodec.NewEncoder().Encode(f)
	if err != nil {
		return url.Values{}
	}
	return values
}

func (f Filters) IsSortedBy(s string) bool {
	return f.SortBy.normalized() == SortOrder(s)
}

// bound returns false for an empty or non-numeric bound: such a bound does not filter.
func bound(value string) (decimal.Decimal, bool) {
	if value == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// Derive returns the products that pass the filters, ordered as requested.
// The input slice is never modified.
func Derive(products []Product, filters Filters, salesOnly bool) []Product {
	from, hasFrom := bound(filters.PriceFrom)
	to, hasTo := bound(filters.PriceTo)
	discountedOnly := salesOnly || filters.DiscountedOnly

	result := make([]Product, 0, len(products))
	for _, p := range products {
		price := p.CurrentPrice()
		if hasFrom && price.LessThan(from) {
			continue
		}
		if hasTo && price.GreaterThan(to) {
			continue
		}
		if discountedOnly && !p.HasDiscount() {
			continue
		}
		result = append(result, p)
	}

	switch filters.SortBy.normalized() {
	case SortNewest:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].createdAtOrEpoch().After(result[j].createdAtOrEpoch())
		})
	case SortPriceHighLow:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].CurrentPrice().GreaterThan(result[j].CurrentPrice())
		})
	case SortPriceLowHigh:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].CurrentPrice().LessThan(result[j].CurrentPrice())
		})
	}

	return result
}

// RandomSales picks at most n discounted products in random order.
func RandomSales(products []Product, n int) []Product {
	sales := Derive(products, DefaultFilters(), true)
	rand.Shuffle(len(sales), func(i, j int) {
		sales[i], sales[j] = sales[j], sales[i]
	})
	if n >= 0 && len(sales) > n {
		sales = sales[:n]
	}
	return sales
}
