// Package cli provides the cobra commands of the storefront binary.
package cli

import (
	"context"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/MarcGrol/storefront/lib/myconfig"
	"github.com/MarcGrol/storefront/lib/myhttpclient"
	"github.com/MarcGrol/storefront/lib/mylog"
	"github.com/MarcGrol/storefront/lib/mystore"
	"github.com/MarcGrol/storefront/services/basket"
	"github.com/MarcGrol/storefront/services/catalog"
	"github.com/MarcGrol/storefront/services/order"
)

const localShopperUID = "local"

var (
	settings = myconfig.New()
	cfg      myconfig.Config
	logger   = mylog.New("cli")

	// tests inject these; otherwise they are created from cfg on first use
	catalogAPI    catalog.API
	orderSender   order.OrderSender
	basketStorage mystore.Store[basket.StoredBasket]
	orderStorage  mystore.Store[order.OrderRecord]

	rootCmd = &cobra.Command{
		Use:           "storefront",
		Short:         "Garden storefront: catalog, basket and orders",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			err := myconfig.BindFlags(settings, cmd.Flags())
			if err != nil {
				return err
			}

			cfg, err = myconfig.Load(cmd.Context(), settings)
			return err
		},
	}
)

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (yaml, json or toml)")
	rootCmd.PersistentFlags().String("api-base-url", "", "base url of the remote shop api")
	rootCmd.PersistentFlags().String("basket-file", "", "file that holds the local basket")
	rootCmd.PersistentFlags().Int("http-retries", 0, "attempts per catalog request")
}

// Execute runs the command line on a context that the caller may cancel.
func Execute(c context.Context) error {
	return rootCmd.ExecuteContext(c)
}

func remoteDependencies() {
	sender := myhttpclient.New(logger)

	if catalogAPI == nil {
		catalogAPI = catalog.NewAPIClient(cfg.APIBaseURL, sender, cfg.HTTPRetries, logger)
	}
	if orderSender == nil {
		orderSender = order.NewAPIClient(cfg.APIBaseURL, sender, logger)
	}
}

// openBasketStorage opens the basket file; an unparsable file is moved aside by the file store.
func openBasketStorage(c context.Context) {
	if basketStorage != nil {
		return
	}
	store, _, err := mystore.NewFileStore[basket.StoredBasket](c, cfg.BasketFile)
	if err != nil {
		// an unreadable basket file must not block the shopper
		logger.Log(c, basket.LocalStorageKey, mylog.SeverityWarn, "Error opening basket file, using a fresh basket: %s", err)
		basketStorage, _, _ = mystore.NewInMemoryStore[basket.StoredBasket](c)
		return
	}
	basketStorage = store
}

func openOrderStorage(c context.Context) error {
	if orderStorage != nil {
		return nil
	}
	store, _, err := mystore.NewFileStore[order.OrderRecord](c, ordersFile(cfg.BasketFile))
	if err != nil {
		return err
	}
	orderStorage = store
	return nil
}

func ordersFile(basketFile string) string {
	return filepath.Join(filepath.Dir(basketFile), "orders.json")
}
