package catalog

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/storefront/lib/mycontext"
	"github.com/MarcGrol/storefront/lib/myerrors"
	"github.com/MarcGrol/storefront/lib/myhttp"
	"github.com/MarcGrol/storefront/lib/mylog"
)

type webService struct {
	service      *Service
	baskets      BasketCounter
	imageBaseURL string
	logger       mylog.Logger
}

func NewWebService(service *Service, baskets BasketCounter, imageBaseURL string, logger mylog.Logger) *webService {
	return &webService{
		service:      service,
		baskets:      baskets,
		imageBaseURL: imageBaseURL,
		logger:       logger,
	}
}

func (s webService) RegisterEndpoints(c context.Context, router *mux.Router) {
	// Endpoints that compose the userinterface
	router.HandleFunc("/", s.homePage()).Methods("GET")
	router.HandleFunc("/categories", s.categoryListPage()).Methods("GET")
	router.HandleFunc("/categories/{categoryID}", s.categoryPage()).Methods("GET")
	router.HandleFunc("/products", s.productListPage(false)).Methods("GET")
	router.HandleFunc("/sales", s.productListPage(true)).Methods("GET")
	router.HandleFunc("/products/{productID}", s.productPage()).Methods("GET")

	// Same derived lists as json
	router.HandleFunc("/api/products", s.productListAPI()).Methods("GET")
	router.HandleFunc("/api/categories/{categoryID}/products", s.categoryProductsAPI()).Methods("GET")

	router.NotFoundHandler = s.notFoundPage()
}

//go:embed templates
var templateFolder embed.FS
var (
	homePageTemplate         *template.Template
	categoryListPageTemplate *template.Template
	productListPageTemplate  *template.Template
	productPageTemplate      *template.Template
	notFoundPageTemplate     *template.Template
)

func init() {
	homePageTemplate = template.Must(template.ParseFS(templateFolder, "templates/layout.html", "templates/home.html"))
	categoryListPageTemplate = template.Must(template.ParseFS(templateFolder, "templates/layout.html", "templates/category_list.html"))
	productListPageTemplate = template.Must(template.ParseFS(templateFolder, "templates/layout.html", "templates/product_list.html"))
	productPageTemplate = template.Must(template.ParseFS(templateFolder, "templates/layout.html", "templates/product.html"))
	notFoundPageTemplate = template.Must(template.ParseFS(templateFolder, "templates/layout.html", "templates/notfound.html"))
}

func (s webService) basketCount(c context.Context, r *http.Request) int {
	shopperUID, found := myhttp.ShopperUID(r)
	if !found {
		return 0
	}
	return s.baskets.ItemCount(c, shopperUID)
}

func (s webService) homePage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		categories, err := s.service.Categories(c)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		sales, err := s.service.Sales(c, homePageSales)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		render(c, w, errorWriter, homePageTemplate, HomePageInfo{
			Categories:   categories,
			Sales:        sales,
			BasketCount:  s.basketCount(c, r),
			ImageBaseURL: s.imageBaseURL,
		})
	}
}

func (s webService) categoryListPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		categories, err := s.service.Categories(c)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		render(c, w, errorWriter, categoryListPageTemplate, CategoryListPageInfo{
			Categories:   categories,
			BasketCount:  s.basketCount(c, r),
			ImageBaseURL: s.imageBaseURL,
		})
	}
}

func (s webService) categoryPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		categoryID, err := intVar(r, "categoryID")
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		filters := ParseFilters(r.URL.Query())
		view, err := s.service.CategoryProducts(c, categoryID, filters, false)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		render(c, w, errorWriter, productListPageTemplate, ProductListPageInfo{
			Title:        view.Category.Title,
			Action:       fmt.Sprintf("/categories/%d", categoryID),
			Filters:      filters,
			Products:     view.Products,
			BasketCount:  s.basketCount(c, r),
			ImageBaseURL: s.imageBaseURL,
		})
	}
}

func (s webService) productListPage(salesOnly bool) http.HandlerFunc {
	title, action := "All products", "/products"
	if salesOnly {
		title, action = "Discounted items", "/sales"
	}

	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		filters := ParseFilters(r.URL.Query())
		products, err := s.service.Products(c, filters, salesOnly)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		render(c, w, errorWriter, productListPageTemplate, ProductListPageInfo{
			Title:        title,
			Action:       action,
			SalesOnly:    salesOnly,
			Filters:      filters,
			Products:     products,
			BasketCount:  s.basketCount(c, r),
			ImageBaseURL: s.imageBaseURL,
		})
	}
}

func (s webService) productPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		productID, err := intVar(r, "productID")
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		product, err := s.service.Product(c, productID)
		if myerrors.IsNotFound(err) {
			s.notFoundPage()(w, r)
			return
		}
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		render(c, w, errorWriter, productPageTemplate, ProductPageInfo{
			Product:      product,
			BasketCount:  s.basketCount(c, r),
			ImageBaseURL: s.imageBaseURL,
		})
	}
}

func (s webService) productListAPI() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		products, err := s.service.Products(c, ParseFilters(r.URL.Query()), r.URL.Query().Get("sales") == "true")
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, products)
	}
}

func (s webService) categoryProductsAPI() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		categoryID, err := intVar(r, "categoryID")
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		view, err := s.service.CategoryProducts(c, categoryID, ParseFilters(r.URL.Query()), r.URL.Query().Get("sales") == "true")
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, view)
	}
}

func intVar(r *http.Request, name string) (int, error) {
	value, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil {
		return 0, myerrors.NewInvalidInputErrorf("invalid %s %q", name, mux.Vars(r)[name])
	}
	return value, nil
}

func (s webService) notFoundPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)

		s.logger.Log(c, "", mylog.SeverityInfo, "No page at %s", r.URL.Path)

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		err := notFoundPageTemplate.ExecuteTemplate(w, "layout", NotFoundPageInfo{
			BasketCount: s.basketCount(c, r),
		})
		if err != nil {
			s.logger.Log(c, "", mylog.SeverityError, "Error rendering not-found page: %s", err)
			return
		}
	}
}

func render(c context.Context, w http.ResponseWriter, errorWriter myhttp.ResponseWriter, tmpl *template.Template, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := tmpl.ExecuteTemplate(w, "layout", data)
	if err != nil {
		errorWriter.WriteError(c, w, 9, myerrors.NewInternalError(err))
		return
	}
}
