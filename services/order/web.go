package order

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"net/url"

	formcodec "github.com/go-playground/form/v4"
	"github.com/gorilla/mux"

	"github.com/MarcGrol/storefront/lib/mycontext"
	"github.com/MarcGrol/storefront/lib/myerrors"
	"github.com/MarcGrol/storefront/lib/myhttp"
	"github.com/MarcGrol/storefront/lib/mylog"
	"github.com/MarcGrol/storefront/lib/myuuid"
	"github.com/MarcGrol/storefront/services/basket"
)

type webService struct {
	service *Service
	baskets *basket.Baskets
	uuider  myuuid.UUIDer
	logger  mylog.Logger
}

// Use dependency injection to isolate the infrastructure and ease testing
func NewWebService(service *Service, baskets *basket.Baskets, uuider myuuid.UUIDer, logger mylog.Logger) *webService {
	return &webService{
		service: service,
		baskets: baskets,
		uuider:  uuider,
		logger:  logger,
	}
}

func (s webService) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/order", s.submitOrder()).Methods("POST")
	router.HandleFunc("/discount", s.requestDiscount()).Methods("POST")

	router.HandleFunc("/api/orders", s.listOrders()).Methods("GET")
}

//go:embed templates
var templateFolder embed.FS
var (
	confirmationPageTemplate *template.Template
	discountPageTemplate     *template.Template
)

func init() {
	confirmationPageTemplate = template.Must(template.ParseFS(templateFolder, "templates/confirmation.html"))
	discountPageTemplate = template.Must(template.ParseFS(templateFolder, "templates/discount.html"))
}

func (s webService) submitOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		contact, err := parseContactForm(r)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		shopperUID := myhttp.EnsureShopperUID(w, r, s.uuider)

		orderUID, order, err := s.service.Submit(c, shopperUID, contact, s.baskets.For(c, shopperUID))
		if err != nil {
			if myerrors.GetHTTPStatus(err) == http.StatusBadRequest {
				// let the shopper correct the form
				http.Redirect(w, r, "/basket?message="+url.QueryEscape(err.Error()), http.StatusSeeOther)
				return
			}
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		err = confirmationPageTemplate.Execute(w, ConfirmationPageInfo{
			OrderUID: orderUID,
			Order:    order,
		})
		if err != nil {
			errorWriter.WriteError(c, w, 3, myerrors.NewInternalError(err))
			return
		}
	}
}

func (s webService) requestDiscount() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		contact, err := parseContactForm(r)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		err = s.service.RequestDiscount(c, contact)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		err = discountPageTemplate.Execute(w, DiscountPageInfo{
			Contact: contact,
		})
		if err != nil {
			errorWriter.WriteError(c, w, 3, myerrors.NewInternalError(err))
			return
		}
	}
}

func (s webService) listOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		shopperUID, found := myhttp.ShopperUID(r)
		if !found {
			errorWriter.Write(c, w, http.StatusOK, []OrderRecord{})
			return
		}

		orders, err := s.service.ListOrders(c, shopperUID)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, orders)
	}
}

func parseContactForm(r *http.Request) (Contact, error) {
	err := r.ParseForm()
	if err != nil {
		return Contact{}, myerrors.NewInvalidInputError(err)
	}

	contact := Contact{}
	err = formcodec.NewDecoder().Decode(&contact, r.PostForm)
	if err != nil {
		return Contact{}, myerrors.NewInvalidInputErrorf("error decoding form: %s", err)
	}
	return contact, nil
}
