package basket

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MarcGrol/storefront/services/catalog"
)

type LineItem struct {
	catalog.Product
	Quantity int `json:"quantity"`
}

func (li LineItem) Subtotal() decimal.Decimal {
	return li.CurrentPrice().Mul(decimal.NewFromInt(int64(li.Quantity)))
}

func (li LineItem) SubtotalLabel() string {
	return "$" + li.Subtotal().StringFixed(2)
}

// Basket is an immutable value: every operation returns a new Basket.
// Count and Total are always derived from the line items.
type Basket struct {
	items []LineItem
}

func (b Basket) Items() []LineItem {
	items := make([]LineItem, len(b.items))
	copy(items, b.items)
	return items
}

func (b Basket) IsEmpty() bool {
	return len(b.items) == 0
}

func (b Basket) Count() int {
	count := 0
	for _, item := range b.items {
		count += item.Quantity
	}
	return count
}

func (b Basket) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range b.items {
		total = total.Add(item.Subtotal())
	}
	return total
}

func (b Basket) TotalLabel() string {
	return "$" + b.Total().StringFixed(2)
}

func (b Basket) indexOf(productID int) int {
	for idx, item := range b.items {
		if item.ID == productID {
			return idx
		}
	}
	return -1
}

// Add increments the quantity of an existing line item or appends a new one.
// Quantities below 1 count as 1.
func (b Basket) Add(product catalog.Product, quantity int) Basket {
	if quantity < 1 {
		quantity = 1
	}

	items := b.Items()
	idx := b.indexOf(product.ID)
	if idx >= 0 {
		items[idx].Quantity += quantity
	} else {
		items = append(items, LineItem{Product: product, Quantity: quantity})
	}
	return Basket{items: items}
}

func (b Basket) Remove(productID int) Basket {
	idx := b.indexOf(productID)
	if idx < 0 {
		return b
	}

	items := make([]LineItem, 0, len(b.items)-1)
	items = append(items, b.items[:idx]...)
	items = append(items, b.items[idx+1:]...)
	return Basket{items: items}
}

// UpdateQuantity sets an absolute quantity; zero or less removes the line item.
func (b Basket) UpdateQuantity(productID int, quantity int) Basket {
	idx := b.indexOf(productID)
	if idx < 0 {
		return b
	}
	if quantity <= 0 {
		return b.Remove(productID)
	}

	items := b.Items()
	items[idx].Quantity = quantity
	return Basket{items: items}
}

func (b Basket) Clear() Basket {
	return Basket{}
}

// Subtract lowers every line item by its quantity in ordered. Line items that drop to
// zero are removed; line items that are not in ordered stay as they are.
func (b Basket) Subtract(ordered Basket) Basket {
	result := b
	for _, o := range ordered.items {
		idx := result.indexOf(o.ID)
		if idx < 0 {
			continue
		}
		result = result.UpdateQuantity(o.ID, result.items[idx].Quantity-o.Quantity)
	}
	return result
}

// Snapshot is the persisted form of a basket.
type Snapshot struct {
	Items []LineItem      `json:"items"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

func (b Basket) Snapshot() Snapshot {
	return Snapshot{
		Items: b.Items(),
		Total: b.Total(),
		Count: b.Count(),
	}
}

// FromSnapshot rebuilds a basket from its items only; the stored count and total are not trusted.
func FromSnapshot(s Snapshot) Basket {
	b := Basket{}
	for _, item := range s.Items {
		if item.Quantity < 1 {
			continue
		}
		b = b.Add(item.Product, item.Quantity)
	}
	return b
}

type StoredBasket struct {
	UID          string
	Payload      string `datastore:",noindex"`
	LastModified time.Time
}

type BasketPageInfo struct {
	Basket  Basket
	Message string
}
