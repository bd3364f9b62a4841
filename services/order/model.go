package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MarcGrol/storefront/lib/myerrors"
	"github.com/MarcGrol/storefront/services/basket"
)

type Contact struct {
	Name  string `form:"name" json:"name"`
	Phone string `form:"phone" json:"phone"`
	Email string `form:"email" json:"email"`
}

func (c Contact) normalized() Contact {
	return Contact{
		Name:  strings.TrimSpace(c.Name),
		Phone: strings.TrimSpace(c.Phone),
		Email: strings.TrimSpace(c.Email),
	}
}

func (c Contact) validate() error {
	missing := []string{}
	if c.Name == "" {
		missing = append(missing, "name")
	}
	if c.Phone == "" {
		missing = append(missing, "phone")
	}
	if c.Email == "" {
		missing = append(missing, "email")
	}
	if len(missing) > 0 {
		return myerrors.NewInvalidInputErrorf("missing %s", strings.Join(missing, ", "))
	}
	if !strings.Contains(c.Email, "@") {
		return myerrors.NewInvalidInputErrorf("invalid email address %q", c.Email)
	}
	return nil
}

type OrderLine struct {
	ID       int             `json:"id"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// Order is the document the remote order endpoint receives.
type Order struct {
	Contact
	Items []OrderLine     `json:"items"`
	Total decimal.Decimal `json:"total"`
}

func newOrder(contact Contact, b basket.Basket) Order {
	lines := []OrderLine{}
	for _, item := range b.Items() {
		lines = append(lines, OrderLine{
			ID:       item.ID,
			Quantity: item.Quantity,
			Price:    item.CurrentPrice(),
		})
	}
	return Order{
		Contact: contact,
		Items:   lines,
		Total:   b.Total(),
	}
}

func (o Order) ItemCount() int {
	count := 0
	for _, line := range o.Items {
		count += line.Quantity
	}
	return count
}

func (o Order) TotalLabel() string {
	return "$" + o.Total.StringFixed(2)
}

// OrderRecord is what is kept of a submitted order.
type OrderRecord struct {
	UID        string
	ShopperUID string
	CreatedAt  time.Time
	ItemCount  int
	Total      string
	Payload    string `datastore:",noindex"`
}

func (r OrderRecord) String() string {
	return fmt.Sprintf("%s %s %d items $%s", r.UID, r.CreatedAt.Format(time.RFC3339), r.ItemCount, r.Total)
}

type ConfirmationPageInfo struct {
	OrderUID string
	Order    Order
}

type DiscountPageInfo struct {
	Contact Contact
}
