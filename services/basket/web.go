package basket

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"strconv"

	formcodec "github.com/go-playground/form/v4"
	"github.com/gorilla/mux"

	"github.com/MarcGrol/storefront/lib/mycontext"
	"github.com/MarcGrol/storefront/lib/myerrors"
	"github.com/MarcGrol/storefront/lib/myhttp"
	"github.com/MarcGrol/storefront/lib/mylog"
	"github.com/MarcGrol/storefront/lib/myuuid"
)

type itemForm struct {
	ProductID int `form:"productId"`
	Quantity  int `form:"quantity"`
}

type webService struct {
	baskets  *Baskets
	products ProductFinder
	uuider   myuuid.UUIDer
	logger   mylog.Logger
}

// Use dependency injection to isolate the infrastructure and ease testing
func NewWebService(baskets *Baskets, products ProductFinder, uuider myuuid.UUIDer, logger mylog.Logger) *webService {
	return &webService{
		baskets:  baskets,
		products: products,
		uuider:   uuider,
		logger:   logger,
	}
}

func (s webService) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/basket", s.basketPage()).Methods("GET")
	router.HandleFunc("/basket/items", s.addItem()).Methods("POST")
	router.HandleFunc("/basket/items/{productID}/quantity", s.updateQuantity()).Methods("POST")
	router.HandleFunc("/basket/items/{productID}/delete", s.removeItem()).Methods("POST")
	router.HandleFunc("/basket/clear", s.clear()).Methods("POST")

	router.HandleFunc("/api/basket", s.basketAPI()).Methods("GET")
}

//go:embed templates
var templateFolder embed.FS
var (
	basketPageTemplate *template.Template
)

func init() {
	basketPageTemplate = template.Must(template.ParseFS(templateFolder, "templates/basket.html"))
}

func (s webService) storeOf(c context.Context, w http.ResponseWriter, r *http.Request) *Store {
	return s.baskets.For(c, myhttp.EnsureShopperUID(w, r, s.uuider))
}

func (s webService) basketPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		basket := s.storeOf(c, w, r).Basket()

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		err := basketPageTemplate.Execute(w, BasketPageInfo{
			Basket:  basket,
			Message: r.URL.Query().Get("message"),
		})
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewInternalError(err))
			return
		}
	}
}

func (s webService) basketAPI() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		basket := s.storeOf(c, w, r).Basket()

		errorWriter.Write(c, w, http.StatusOK, basket.Snapshot())
	}
}

func (s webService) addItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		form, err := parseItemForm(r)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		product, err := s.products.Product(c, form.ProductID)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		basket := s.storeOf(c, w, r).Add(c, product, form.Quantity)
		s.logger.Log(c, "", mylog.SeverityInfo, "Added %d x product %d: basket holds %d items", form.Quantity, product.ID, basket.Count())

		myhttp.RedirectBack(w, r, "/basket")
	}
}

func (s webService) updateQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		productID, err := productIDOf(r)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		form, err := parseItemForm(r)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		s.storeOf(c, w, r).UpdateQuantity(c, productID, form.Quantity)

		http.Redirect(w, r, "/basket", http.StatusSeeOther)
	}
}

func (s webService) removeItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		productID, err := productIDOf(r)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		s.storeOf(c, w, r).Remove(c, productID)

		http.Redirect(w, r, "/basket", http.StatusSeeOther)
	}
}

func (s webService) clear() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)

		s.storeOf(c, w, r).Clear(c)

		http.Redirect(w, r, "/basket", http.StatusSeeOther)
	}
}

func parseItemForm(r *http.Request) (itemForm, error) {
	err := r.ParseForm()
	if err != nil {
		return itemForm{}, myerrors.NewInvalidInputError(err)
	}

	form := itemForm{}
	err = formcodec.NewDecoder().Decode(&form, r.PostForm)
	if err != nil {
		return itemForm{}, myerrors.NewInvalidInputErrorf("error decoding form: %s", err)
	}
	return form, nil
}

func productIDOf(r *http.Request) (int, error) {
	productID, err := strconv.Atoi(mux.Vars(r)["productID"])
	if err != nil {
		return 0, myerrors.NewInvalidInputErrorf("invalid product id %q", mux.Vars(r)["productID"])
	}
	return productID, nil
}
