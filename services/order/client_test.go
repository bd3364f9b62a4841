package order

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/storefront/lib/myerrors"
	"github.com/MarcGrol/storefront/lib/myhttpclient"
	"github.com/MarcGrol/storefront/lib/mylog"
)

const baseURL = "http://api.local:3333"

func TestAPIClient(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	c := context.TODO()

	setupClient := func() (OrderSender, *myhttpclient.MockHTTPSender) {
		sender := myhttpclient.NewMockHTTPSender(ctrl)
		return NewAPIClient(baseURL+"/", sender, mylog.New("test")), sender
	}

	order := Order{
		Contact: contact,
		Items: []OrderLine{
			{ID: 1, Quantity: 2, Price: decimal.NewFromInt(80)},
			{ID: 2, Quantity: 1, Price: decimal.RequireFromString("12.5")},
		},
		Total: decimal.RequireFromString("172.5"),
	}

	t.Run("Send order", func(t *testing.T) {
		// given
		sut, sender := setupClient()
		sender.EXPECT().Send(gomock.Any(), http.MethodPost, baseURL+"/order/send", gomock.Any()).
			DoAndReturn(func(c context.Context, method string, url string, body []byte) (int, []byte, error) {
				assert.JSONEq(t, `{
					"name":"Marc","phone":"+31612345678","email":"marc@home.nl",
					"items":[{"id":1,"quantity":2,"price":80},{"id":2,"quantity":1,"price":12.5}],
					"total":172.5
				}`, string(body))
				return 200, []byte(`{"status":"OK"}`), nil
			})

		// when
		err := sut.SendOrder(c, order)

		// then
		assert.NoError(t, err)
	})

	t.Run("Send order is not retried", func(t *testing.T) {
		// given
		sut, sender := setupClient()
		sender.EXPECT().Send(gomock.Any(), http.MethodPost, baseURL+"/order/send", gomock.Any()).Return(502, nil, nil)

		// when
		err := sut.SendOrder(c, order)

		// then
		assert.Error(t, err)
		assert.Equal(t, 503, myerrors.GetHTTPStatus(err))
	})

	t.Run("Send order transport error", func(t *testing.T) {
		// given
		sut, sender := setupClient()
		sender.EXPECT().Send(gomock.Any(), http.MethodPost, baseURL+"/order/send", gomock.Any()).Return(0, nil, errors.New("connection refused"))

		// when
		err := sut.SendOrder(c, order)

		// then
		assert.Equal(t, 503, myerrors.GetHTTPStatus(err))
		assert.Contains(t, err.Error(), "connection refused")
	})

	t.Run("Request discount", func(t *testing.T) {
		// given
		sut, sender := setupClient()
		sender.EXPECT().Send(gomock.Any(), http.MethodPost, baseURL+"/sale/send", gomock.Any()).
			DoAndReturn(func(c context.Context, method string, url string, body []byte) (int, []byte, error) {
				assert.JSONEq(t, `{"name":"Marc","phone":"+31612345678","email":"marc@home.nl"}`, string(body))
				return 201, nil, nil
			})

		// when
		err := sut.RequestDiscount(c, contact)

		// then
		assert.NoError(t, err)
	})
}
