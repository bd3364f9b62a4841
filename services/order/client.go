package order

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/MarcGrol/storefront/lib/myerrors"
	"github.com/MarcGrol/storefront/lib/myhttpclient"
	"github.com/MarcGrol/storefront/lib/mylog"
)

type apiClient struct {
	baseURL string
	sender  myhttpclient.HTTPSender
	logger  mylog.Logger
}

func NewAPIClient(baseURL string, sender myhttpclient.HTTPSender, logger mylog.Logger) OrderSender {
	return &apiClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		sender:  sender,
		logger:  logger,
	}
}

func (cl *apiClient) SendOrder(c context.Context, order Order) error {
	return cl.post(c, "/order/send", order)
}

func (cl *apiClient) RequestDiscount(c context.Context, contact Contact) error {
	return cl.post(c, "/sale/send", contact)
}

// post is sent once: the remote endpoints are not idempotent.
func (cl *apiClient) post(c context.Context, path string, request any) error {
	url := cl.baseURL + path

	body, err := json.Marshal(request)
	if err != nil {
		return myerrors.NewInternalError(fmt.Errorf("error serializing request for %s: %s", url, err))
	}

	status, _, err := cl.sender.Send(c, http.MethodPost, url, body)
	if err != nil {
		return myerrors.NewUnavailableError(fmt.Errorf("error posting %s: %s", url, err))
	}
	if status < 200 || status >= 300 {
		return myerrors.NewUnavailableError(fmt.Errorf("error posting %s: http status %d", url, status))
	}

	cl.logger.Log(c, "", mylog.SeverityDebug, "Posted %s", url)

	return nil
}
