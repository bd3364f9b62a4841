package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// prices travel as plain JSON numbers, both to and from the remote API
	decimal.MarshalJSONWithoutQuotes = true
}

var hundred = decimal.NewFromInt(100)

type Category struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Image string `json:"image"`
}

type Product struct {
	ID           int                 `json:"id"`
	Title        string              `json:"title"`
	Price        decimal.Decimal     `json:"price"`
	DiscontPrice decimal.NullDecimal `json:"discont_price"`
	Image        string              `json:"image"`
	Description  string              `json:"description"`
	CategoryID   int                 `json:"categoryId"`
	CreatedAt    Timestamp           `json:"createdAt,omitzero"`
}

// HasDiscount is true only for a discount price that is strictly below the regular price.
func (p Product) HasDiscount() bool {
	return p.DiscontPrice.Valid && p.DiscontPrice.Decimal.LessThan(p.Price)
}

// CurrentPrice is the price the shopper pays.
func (p Product) CurrentPrice() decimal.Decimal {
	if p.HasDiscount() {
		return p.DiscontPrice.Decimal
	}
	return p.Price
}

func (p Product) DiscountPercentage() int64 {
	if !p.HasDiscount() || p.Price.IsZero() {
		return 0
	}
	return p.Price.Sub(p.CurrentPrice()).Div(p.Price).Mul(hundred).Round(0).IntPart()
}

func (p Product) PriceLabel() string {
	return "$" + p.Price.StringFixed(2)
}

func (p Product) CurrentPriceLabel() string {
	return "$" + p.CurrentPrice().StringFixed(2)
}

func (p Product) createdAtOrEpoch() time.Time {
	if p.CreatedAt.IsZero() {
		return time.Unix(0, 0)
	}
	return p.CreatedAt.Time
}

type CategoryProducts struct {
	Category Category  `json:"category"`
	Products []Product `json:"products"`
}

type HomePageInfo struct {
	Categories   []Category
	Sales        []Product
	BasketCount  int
	ImageBaseURL string
}

type CategoryListPageInfo struct {
	Categories   []Category
	BasketCount  int
	ImageBaseURL string
}

type ProductListPageInfo struct {
	Title        string
	Action       string
	SalesOnly    bool
	Filters      Filters
	Products     []Product
	BasketCount  int
	ImageBaseURL string
}

type ProductPageInfo struct {
	Product      Product
	BasketCount  int
	ImageBaseURL string
}

type NotFoundPageInfo struct {
	BasketCount int
}
