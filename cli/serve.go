package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/spf13/cobra"

	"github.com/MarcGrol/storefront/lib/myhttpclient"
	"github.com/MarcGrol/storefront/lib/mylog"
	"github.com/MarcGrol/storefront/lib/mystore"
	"github.com/MarcGrol/storefront/lib/mytime"
	"github.com/MarcGrol/storefront/lib/myuuid"
	"github.com/MarcGrol/storefront/services/basket"
	"github.com/MarcGrol/storefront/services/catalog"
	"github.com/MarcGrol/storefront/services/order"
	"github.com/MarcGrol/storefront/services/warmup"
)

const shutdownTimeout = 10 * time.Second

func init() {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the storefront web server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			router := mux.NewRouter()
			cleanup, err := registerServices(c, router)
			if err != nil {
				return err
			}
			defer cleanup()

			return startWebServerBlocking(c, router, cfg.Port)
		},
	}
	serveCmd.Flags().String("port", "", "port to listen on")
	serveCmd.Flags().Duration("catalog-cache-ttl", 0, "how long fetched catalog views are reused")
	rootCmd.AddCommand(serveCmd)
}

func registerServices(c context.Context, router *mux.Router) (func(), error) {
	nower := mytime.RealNower{}
	uuider := myuuid.RealUUIDer{}
	sender := myhttpclient.New(logger)

	publisher, publisherCleanup, err := newPublisher(c, router)
	if err != nil {
		return nil, fmt.Errorf("error creating publisher: %s", err)
	}

	basketStore, basketStoreCleanup, err := mystore.New[basket.StoredBasket](c)
	if err != nil {
		publisherCleanup()
		return nil, fmt.Errorf("error creating basket store: %s", err)
	}

	orderStore, orderStoreCleanup, err := mystore.New[order.OrderRecord](c)
	if err != nil {
		basketStoreCleanup()
		publisherCleanup()
		return nil, fmt.Errorf("error creating order store: %s", err)
	}

	catalogService := catalog.NewService(catalog.NewAPIClient(cfg.APIBaseURL, sender, cfg.HTTPRetries, mylog.New("catalog")), cfg.CatalogCacheTTL, nower, mylog.New("catalog"))
	baskets := basket.NewBaskets(basketStore, nower, mylog.New("basket"))
	orderService := order.NewService(order.NewAPIClient(cfg.APIBaseURL, sender, mylog.New("order")), orderStore, publisher, nower, uuider, mylog.New("order"))

	catalog.NewWebService(catalogService, baskets, cfg.APIBaseURL, mylog.New("catalog")).RegisterEndpoints(c, router)
	basket.NewWebService(baskets, catalogService, uuider, mylog.New("basket")).RegisterEndpoints(c, router)
	order.NewWebService(orderService, baskets, uuider, mylog.New("order")).RegisterEndpoints(c, router)
	warmup.NewService(publisher, catalogService, mylog.New("warmup")).RegisterEndpoints(c, router)

	return func() {
		orderStoreCleanup()
		basketStoreCleanup()
		publisherCleanup()
	}, nil
}

func startWebServerBlocking(c context.Context, router *mux.Router, port string) error {
	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		logger.Log(c, "", mylog.SeverityInfo, "Starting webserver on port %s (try http://localhost:%s)", port, port)
		errs <- server.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("error starting webserver on port %s: %s", port, err)
	case <-c.Done():
	}

	logger.Log(c, "", mylog.SeverityInfo, "Stopping webserver")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := server.Shutdown(shutdownCtx)
	if err != nil {
		return fmt.Errorf("error stopping webserver: %s", err)
	}
	return nil
}
