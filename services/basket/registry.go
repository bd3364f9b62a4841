package basket

import (
	"context"

	"github.com/MarcGrol/storefront/lib/mylog"
	"github.com/MarcGrol/storefront/lib/mystore"
	"github.com/MarcGrol/storefront/lib/mytime"
)

// Baskets gives access to the basket of each web shopper. Nothing is kept between
// requests: every store is loaded from storage when it is handed out.
type Baskets struct {
	storage mystore.Store[StoredBasket]
	nower   mytime.Nower
	logger  mylog.Logger
}

func NewBaskets(storage mystore.Store[StoredBasket], nower mytime.Nower, logger mylog.Logger) *Baskets {
	return &Baskets{
		storage: storage,
		nower:   nower,
		logger:  logger,
	}
}

func (b *Baskets) For(c context.Context, shopperUID string) *Store {
	return NewStore(c, StorageKey(shopperUID), b.storage, b.nower, b.logger)
}

func (b *Baskets) ItemCount(c context.Context, shopperUID string) int {
	if shopperUID == "" {
		return 0
	}
	current, err := readBasket(c, b.storage, StorageKey(shopperUID), b.logger)
	if err != nil {
		b.logger.Log(c, shopperUID, mylog.SeverityWarn, "Error reading basket of %s: %s", shopperUID, err)
		return 0
	}
	return current.Count()
}
