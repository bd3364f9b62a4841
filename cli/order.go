package cli

import (
	"context"
	"fmt"

	"github.com/gorilla/mux"
	"github.com/spf13/cobra"

	"github.com/MarcGrol/storefront/lib/mypublisher"
	"github.com/MarcGrol/storefront/lib/mypubsub"
	"github.com/MarcGrol/storefront/lib/myqueue"
	"github.com/MarcGrol/storefront/lib/mytime"
	"github.com/MarcGrol/storefront/lib/myuuid"
	"github.com/MarcGrol/storefront/services/order"
	"github.com/MarcGrol/storefront/services/order/orderevents"
)

func init() {
	contact := order.Contact{}
	orderCmd := &cobra.Command{
		Use:   "order",
		Short: "Order the contents of the local basket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cmd.Context()
			store, err := localBasket(c)
			if err != nil {
				return err
			}

			service, cleanup, err := localOrderService(c)
			if err != nil {
				return err
			}
			defer cleanup()

			orderUID, placed, err := service.Submit(c, localShopperUID, contact, store)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Order %s placed: %d items, total %s\n", orderUID, placed.ItemCount(), placed.TotalLabel())
			return nil
		},
	}
	orderCmd.Flags().StringVar(&contact.Name, "name", "", "name of the shopper")
	orderCmd.Flags().StringVar(&contact.Phone, "phone", "", "phone number of the shopper")
	orderCmd.Flags().StringVar(&contact.Email, "email", "", "email address of the shopper")
	rootCmd.AddCommand(orderCmd)

	ordersCmd := &cobra.Command{
		Use:   "orders",
		Short: "List the orders placed from this machine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cmd.Context()
			service, cleanup, err := localOrderService(c)
			if err != nil {
				return err
			}
			defer cleanup()

			orders, err := service.ListOrders(c, localShopperUID)
			if err != nil {
				return err
			}
			for _, o := range orders {
				fmt.Fprintln(cmd.OutOrStdout(), o.String())
			}
			return nil
		},
	}
	rootCmd.AddCommand(ordersCmd)
}

func localOrderService(c context.Context) (*order.Service, func(), error) {
	remoteDependencies()
	err := openOrderStorage(c)
	if err != nil {
		return nil, func() {}, err
	}

	publisher, cleanup, err := newPublisher(c, mux.NewRouter())
	if err != nil {
		return nil, func() {}, err
	}

	return order.NewService(orderSender, orderStorage, publisher, mytime.RealNower{}, myuuid.RealUUIDer{}, logger), cleanup, nil
}

// newPublisher wires the outbox publisher; its trigger endpoint is registered on router.
func newPublisher(c context.Context, router *mux.Router) (*mypublisher.TransactionalPublisher, func(), error) {
	pubsub, pubsubCleanup, err := mypubsub.New(c, logger)
	if err != nil {
		return nil, func() {}, err
	}

	queue, queueCleanup, err := myqueue.New(c, router, logger)
	if err != nil {
		pubsubCleanup()
		return nil, func() {}, err
	}

	publisher, storeCleanup, err := mypublisher.New(c, pubsub, queue, mytime.RealNower{}, logger)
	if err != nil {
		queueCleanup()
		pubsubCleanup()
		return nil, func() {}, err
	}
	publisher.RegisterEndpoints(c, router)

	err = publisher.CreateTopic(c, orderevents.TopicName)
	if err != nil {
		storeCleanup()
		queueCleanup()
		pubsubCleanup()
		return nil, func() {}, err
	}

	return publisher, func() {
		storeCleanup()
		queueCleanup()
		pubsubCleanup()
	}, nil
}
