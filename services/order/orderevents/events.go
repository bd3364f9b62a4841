package orderevents

const (
	TopicName             = "order"
	orderSubmittedName    = TopicName + ".submitted"
	discountRequestedName = TopicName + ".discount.requested"
)

type OrderSubmitted struct {
	OrderUID   string
	ShopperUID string
	ItemCount  int
	Total      string
}

func (e OrderSubmitted) EventType() string {
	return orderSubmittedName
}

func (e OrderSubmitted) AggregateUID() string {
	return e.OrderUID
}

type DiscountRequested struct {
	RequestUID string
	Email      string
}

func (e DiscountRequested) EventType() string {
	return discountRequestedName
}

func (e DiscountRequested) AggregateUID() string {
	return e.RequestUID
}
