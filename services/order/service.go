package order

import (
	"github.com/MarcGrol/storefront/lib/mylog"
	"github.com/MarcGrol/storefront/lib/mypublisher"
	"github.com/MarcGrol/storefront/lib/mystore"
	"github.com/MarcGrol/storefront/lib/mytime"
	"github.com/MarcGrol/storefront/lib/myuuid"
)

type Service struct {
	sender     OrderSender
	orderStore mystore.Store[OrderRecord]
	publisher  mypublisher.Publisher
	nower      mytime.Nower
	uuider     myuuid.UUIDer
	logger     mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewService(sender OrderSender, orderStore mystore.Store[OrderRecord], pub mypublisher.Publisher, nower mytime.Nower, uuider myuuid.UUIDer, logger mylog.Logger) *Service {
	return &Service{
		sender:     sender,
		orderStore: orderStore,
		publisher:  pub,
		nower:      nower,
		uuider:     uuider,
		logger:     logger,
	}
}
