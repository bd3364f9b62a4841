package warmup

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/storefront/lib/mycontext"
	"github.com/MarcGrol/storefront/lib/myhttp"
	"github.com/MarcGrol/storefront/lib/mylog"
	"github.com/MarcGrol/storefront/services/catalog"
)

type webService struct {
	outbox   OutboxFlusher
	products ProductLister
	logger   mylog.Logger
}

// Use dependency injection to isolate the infrastructure and ease testing
func NewService(outbox OutboxFlusher, products ProductLister, logger mylog.Logger) *webService {
	return &webService{
		outbox:   outbox,
		products: products,
		logger:   logger,
	}
}

func (s webService) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/_ah/warmup", s.warmupPage()).Methods("GET")
}

// warmupPage fills the catalog cache and publishes events that were left behind by a previous instance.
func (s *webService) warmupPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		_, err := s.products.Products(c, catalog.DefaultFilters(), false)
		if err != nil {
			// the catalog is fetched again on first use
			s.logger.Log(c, "", mylog.SeverityWarn, "Error warming catalog: %s", err)
		}

		count, err := s.outbox.Flush(c)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		s.logger.Log(c, "", mylog.SeverityInfo, "Warmup published %d pending events", count)

		errorWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{
			Message: "Successfully processed warmup request",
		})
	}
}
