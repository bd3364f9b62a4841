package basket

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/MarcGrol/storefront/lib/mylog"
	"github.com/MarcGrol/storefront/lib/mystore"
	"github.com/MarcGrol/storefront/lib/mytime"
	"github.com/MarcGrol/storefront/services/catalog"
)

const LocalStorageKey = "basket"

// StorageKey is the fixed storage key of the basket of a web shopper.
func StorageKey(shopperUID string) string {
	return LocalStorageKey + ":" + shopperUID
}

// Store owns the basket of one shopper. Every change re-reads the persisted basket and
// writes the result back within one storage transaction. Storage failures are logged and
// never reach the caller: after a failed write the in-memory basket is authoritative until
// the next Load.
type Store struct {
	sync.Mutex
	key     string
	storage mystore.Store[StoredBasket]
	nower   mytime.Nower
	logger  mylog.Logger
	basket  Basket
	unsaved bool
}

// NewStore returns a store that is already loaded from storage.
func NewStore(c context.Context, key string, storage mystore.Store[StoredBasket], nower mytime.Nower, logger mylog.Logger) *Store {
	s := &Store{
		key:     key,
		storage: storage,
		nower:   nower,
		logger:  logger,
	}
	s.Load(c)
	return s
}

func (s *Store) Basket() Basket {
	s.Lock()
	defer s.Unlock()

	return s.basket
}

// Load replaces the in-memory basket with the persisted one, or with an empty basket
// when nothing usable is stored.
func (s *Store) Load(c context.Context) Basket {
	s.Lock()
	defer s.Unlock()

	s.unsaved = false
	b, err := readBasket(c, s.storage, s.key, s.logger)
	if err != nil {
		s.logger.Log(c, s.key, mylog.SeverityWarn, "Error reading basket %s, starting empty: %s", s.key, err)
		b = Basket{}
	}
	s.basket = b
	return s.basket
}

func (s *Store) Add(c context.Context, product catalog.Product, quantity int) Basket {
	return s.apply(c, func(b Basket) Basket {
		return b.Add(product, quantity)
	})
}

func (s *Store) Remove(c context.Context, productID int) Basket {
	return s.apply(c, func(b Basket) Basket {
		return b.Remove(productID)
	})
}

func (s *Store) UpdateQuantity(c context.Context, productID int, quantity int) Basket {
	return s.apply(c, func(b Basket) Basket {
		return b.UpdateQuantity(productID, quantity)
	})
}

func (s *Store) Clear(c context.Context) Basket {
	return s.apply(c, func(b Basket) Basket {
		return b.Clear()
	})
}

// Subtract takes the ordered line items out of the basket and keeps whatever was added since.
func (s *Store) Subtract(c context.Context, ordered Basket) Basket {
	return s.apply(c, func(b Basket) Basket {
		return b.Subtract(ordered)
	})
}

func (s *Store) apply(c context.Context, action func(b Basket) Basket) Basket {
	s.Lock()
	defer s.Unlock()

	err := s.storage.RunInTransaction(c, func(c context.Context) error {
		if !s.unsaved {
			latest, err := readBasket(c, s.storage, s.key, s.logger)
			if err != nil {
				s.logger.Log(c, s.key, mylog.SeverityWarn, "Error reading basket %s, using the one in memory: %s", s.key, err)
			} else {
				s.basket = latest
			}
		}

		s.basket = action(s.basket)
		s.unsaved = !s.write(c, s.basket)
		return nil
	})
	if err != nil {
		s.logger.Log(c, s.key, mylog.SeverityError, "Error committing basket %s: %s", s.key, err)
		s.unsaved = true
	}

	return s.basket
}

// readBasket returns an error only when storage cannot be reached. Absent or unparsable
// baskets read as empty.
func readBasket(c context.Context, storage mystore.Store[StoredBasket], key string, logger mylog.Logger) (Basket, error) {
	stored, found, err := storage.Get(c, key)
	if err != nil {
		return Basket{}, err
	}
	if !found || stored.Payload == "" {
		return Basket{}, nil
	}

	snapshot := Snapshot{}
	err = json.Unmarshal([]byte(stored.Payload), &snapshot)
	if err != nil {
		logger.Log(c, key, mylog.SeverityWarn, "Error parsing basket %s, starting empty: %s", key, err)
		return Basket{}, nil
	}

	return FromSnapshot(snapshot), nil
}

func (s *Store) write(c context.Context, b Basket) bool {
	payload, err := json.Marshal(b.Snapshot())
	if err != nil {
		s.logger.Log(c, s.key, mylog.SeverityError, "Error serializing basket %s: %s", s.key, err)
		return false
	}

	err = s.storage.Put(c, s.key, StoredBasket{
		UID:          s.key,
		Payload:      string(payload),
		LastModified: s.nower.Now(),
	})
	if err != nil {
		s.logger.Log(c, s.key, mylog.SeverityError, "Error persisting basket %s: %s", s.key, err)
		return false
	}
	return true
}
