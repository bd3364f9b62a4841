package mypubsub

import (
	"context"

	"github.com/MarcGrol/storefront/lib/mylog"
)

//go:generate mockgen -source=pubsub_api.go -package mypubsub -destination pubsub_mock.go PubSub
type PubSub interface {
	Publish(c context.Context, topic string, data string) error
	CreateTopic(c context.Context, topic string) error
}

var New func(c context.Context, logger mylog.Logger) (PubSub, func(), error)
