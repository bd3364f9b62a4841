package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/MarcGrol/storefront/lib/myerrors"
	"github.com/MarcGrol/storefront/lib/myhttpclient"
	"github.com/MarcGrol/storefront/lib/mylog"
	"github.com/MarcGrol/storefront/lib/myretry"
)

const defaultCategoryName = "Category"

var errTransient = errors.New("transient")

type apiClient struct {
	baseURL string
	sender  myhttpclient.HTTPSender
	retry   myretry.RetryConfig
	logger  mylog.Logger
}

func NewAPIClient(baseURL string, sender myhttpclient.HTTPSender, attempts int, logger mylog.Logger) API {
	return &apiClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		sender:  sender,
		retry: myretry.RetryConfig{
			MaxAttempts: attempts,
			Backoff:     myretry.ExponentialBackoff(50 * time.Millisecond),
			ShouldRetry: func(err error) bool {
				return errors.Is(err, errTransient)
			},
		},
		logger: logger,
	}
}

func (cl *apiClient) ListCategories(c context.Context) ([]Category, error) {
	body, err := cl.get(c, "/categories/all")
	if err != nil {
		return nil, err
	}

	categories := []Category{}
	err = json.Unmarshal(body, &categories)
	if err != nil {
		return nil, myerrors.NewUnavailableError(fmt.Errorf("error parsing categories: %s", err))
	}
	return categories, nil
}

func (cl *apiClient) ListProducts(c context.Context) ([]Product, error) {
	body, err := cl.get(c, "/products/all")
	if err != nil {
		return nil, err
	}

	view, err := parseProductList(body)
	if err != nil {
		return nil, myerrors.NewUnavailableError(fmt.Errorf("error parsing products: %s", err))
	}
	return view.Products, nil
}

func (cl *apiClient) GetCategoryProducts(c context.Context, categoryID int) (CategoryProducts, error) {
	body, err := cl.get(c, fmt.Sprintf("/categories/%d", categoryID))
	if err != nil {
		return CategoryProducts{}, err
	}

	view, err := parseProductList(body)
	if err != nil {
		return CategoryProducts{}, myerrors.NewUnavailableError(fmt.Errorf("error parsing category %d: %s", categoryID, err))
	}
	view.Category.ID = categoryID

	return view, nil
}

func (cl *apiClient) GetProduct(c context.Context, productID int) (Product, error) {
	body, err := cl.get(c, fmt.Sprintf("/products/%d", productID))
	if err != nil {
		return Product{}, err
	}

	product, found, err := parseProduct(body)
	if err != nil {
		return Product{}, myerrors.NewUnavailableError(fmt.Errorf("error parsing product %d: %s", productID, err))
	}
	if !found {
		return Product{}, myerrors.NewNotFoundError(fmt.Errorf("product %d not found", productID))
	}
	return product, nil
}

func (cl *apiClient) get(c context.Context, path string) ([]byte, error) {
	url := cl.baseURL + path

	body, err := myretry.DoWithResult(c, cl.retry, func() ([]byte, error) {
		status, body, err := cl.sender.Send(c, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", errTransient, err)
		}
		if status == http.StatusNotFound {
			return nil, myerrors.NewNotFoundError(fmt.Errorf("%s not found", url))
		}
		if status >= 500 {
			cl.logger.Log(c, "", mylog.SeverityWarn, "GET %s returned %d", url, status)
			return nil, fmt.Errorf("%w: status %d", errTransient, status)
		}
		if status < 200 || status >= 300 {
			return nil, fmt.Errorf("unexpected status %d", status)
		}
		return body, nil
	})
	if err != nil {
		if myerrors.IsNotFound(err) {
			return nil, err
		}
		return nil, myerrors.NewUnavailableError(fmt.Errorf("error fetching %s: %w", url, err))
	}

	return body, nil
}

type namedItem struct {
	Title string `json:"title"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

func (n *namedItem) label() string {
	if n == nil {
		return ""
	}
	if n.Title != "" {
		return n.Title
	}
	return n.Name
}

type productListEnvelope struct {
	Category *namedItem        `json:"category"`
	Data     []json.RawMessage `json:"data"`
	Products []json.RawMessage `json:"products"`
	Title    string            `json:"title"`
	Name     string            `json:"name"`
}

type embeddedCategory struct {
	Category *namedItem `json:"category"`
}

// parseProductList accepts a bare array, {data:[...]} or {products:[...]}.
func parseProductList(body []byte) (CategoryProducts, error) {
	var raw []json.RawMessage
	envelope := productListEnvelope{}

	if isJSONArray(body) {
		err := json.Unmarshal(body, &raw)
		if err != nil {
			return CategoryProducts{}, err
		}
	} else {
		err := json.Unmarshal(body, &envelope)
		if err != nil {
			return CategoryProducts{}, err
		}
		raw = envelope.Data
		if raw == nil {
			raw = envelope.Products
		}
	}

	products := make([]Product, 0, len(raw))
	for _, r := range raw {
		p := Product{}
		err := json.Unmarshal(r, &p)
		if err != nil {
			return CategoryProducts{}, err
		}
		products = append(products, p)
	}

	view := CategoryProducts{
		Category: Category{Title: categoryName(envelope, raw)},
		Products: products,
	}
	if envelope.Category != nil {
		view.Category.Image = envelope.Category.Image
	}
	return view, nil
}

func categoryName(envelope productListEnvelope, raw []json.RawMessage) string {
	if envelope.Category.label() != "" {
		return envelope.Category.label()
	}
	if len(raw) > 0 {
		first := embeddedCategory{}
		if json.Unmarshal(raw[0], &first) == nil && first.Category.label() != "" {
			return first.Category.label()
		}
	}
	if envelope.Title != "" {
		return envelope.Title
	}
	if envelope.Name != "" {
		return envelope.Name
	}
	return defaultCategoryName
}

// parseProduct accepts a single object or an array holding it.
func parseProduct(body []byte) (Product, bool, error) {
	if isJSONArray(body) {
		products := []Product{}
		err := json.Unmarshal(body, &products)
		if err != nil {
			return Product{}, false, err
		}
		if len(products) == 0 {
			return Product{}, false, nil
		}
		return products[0], true, nil
	}

	product := Product{}
	err := json.Unmarshal(body, &product)
	if err != nil {
		return Product{}, false, err
	}
	return product, true, nil
}

func isJSONArray(body []byte) bool {
	trimmed := bytes.TrimSpace(body)
	return len(trimmed) > 0 && trimmed[0] == '['
}
