package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/storefront/lib/myerrors"
	"github.com/MarcGrol/storefront/lib/mystore"
	"github.com/MarcGrol/storefront/services/basket"
	"github.com/MarcGrol/storefront/services/catalog"
	"github.com/MarcGrol/storefront/services/order"
)

var (
	spade = catalog.Product{ID: 1, Title: "Spade", Price: decimal.NewFromInt(20)}
	rake  = catalog.Product{ID: 2, Title: "Rake", Price: decimal.NewFromInt(30), DiscontPrice: decimal.NewNullDecimal(decimal.NewFromInt(15))}
)

func setup(t *testing.T, ctrl *gomock.Controller) (*catalog.MockAPI, *order.MockOrderSender) {
	c := context.TODO()
	api := catalog.NewMockAPI(ctrl)
	sender := order.NewMockOrderSender(ctrl)

	catalogAPI = api
	orderSender = sender
	basketStorage, _, _ = mystore.NewInMemoryStore[basket.StoredBasket](c)
	orderStorage, _, _ = mystore.NewInMemoryStore[order.OrderRecord](c)

	t.Cleanup(func() {
		catalogAPI = nil
		orderSender = nil
		basketStorage = nil
		orderStorage = nil
		rootCmd.SetArgs(nil)
	})

	return api, sender
}

// resetFlags undoes flag values of earlier runs: cobra keeps them between executions.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func run(args ...string) (string, error) {
	resetFlags(rootCmd)
	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetArgs(args)
	err := Execute(context.TODO())
	return out.String(), err
}

func TestProductsCommand(t *testing.T) {

	t.Run("Sorted by price", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		api, _ := setup(t, ctrl)
		api.EXPECT().ListProducts(gomock.Any()).Return([]catalog.Product{spade, rake}, nil)

		// when
		out, err := run("products", "--sort", "price-low-high")

		// then
		assert.NoError(t, err)
		assert.Equal(t, "2 | Rake | $15.00 (was $30.00, -50%)\n1 | Spade | $20.00\n", out)
	})

	t.Run("Discounted within price range", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		api, _ := setup(t, ctrl)
		api.EXPECT().ListProducts(gomock.Any()).Return([]catalog.Product{spade, rake}, nil)

		// when
		out, err := run("products", "--discounted", "--price-from", "10", "--price-to", "abc")

		// then
		assert.NoError(t, err)
		assert.Equal(t, "2 | Rake | $15.00 (was $30.00, -50%)\n", out)
	})

	t.Run("Category", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		api, _ := setup(t, ctrl)
		api.EXPECT().GetCategoryProducts(gomock.Any(), 3).Return(catalog.CategoryProducts{
			Category: catalog.Category{ID: 3, Title: "Tools"},
			Products: []catalog.Product{spade},
		}, nil)

		// when
		out, err := run("products", "--category", "3")

		// then
		assert.NoError(t, err)
		assert.Equal(t, "Tools\n1 | Spade | $20.00\n", out)
	})

	t.Run("Remote down", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		api, _ := setup(t, ctrl)
		api.EXPECT().ListProducts(gomock.Any()).Return(nil, myerrors.NewUnavailableError(errors.New("connection refused")))

		// when
		_, err := run("products")

		// then
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "connection refused")
	})
}

func TestBasketCommands(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// given
	api, _ := setup(t, ctrl)
	api.EXPECT().GetProduct(gomock.Any(), 1).Return(spade, nil).Times(2)
	api.EXPECT().GetProduct(gomock.Any(), 2).Return(rake, nil)

	t.Run("Empty", func(t *testing.T) {
		out, err := run("basket", "show")

		assert.NoError(t, err)
		assert.Equal(t, "Basket is empty\n", out)
	})

	t.Run("Add", func(t *testing.T) {
		_, err := run("basket", "add", "1", "--quantity", "1")
		assert.NoError(t, err)
		_, err = run("basket", "add", "1", "--quantity", "2")
		assert.NoError(t, err)
		out, err := run("basket", "add", "2", "--quantity", "1")
		assert.NoError(t, err)

		assert.Equal(t, "1 | Spade | 3 x $20.00 | $60.00\n2 | Rake | 1 x $15.00 | $15.00\n4 items, total $75.00\n", out)
	})

	t.Run("Survives restart", func(t *testing.T) {
		out, err := run("basket", "show")

		assert.NoError(t, err)
		assert.Contains(t, out, "4 items, total $75.00")
	})

	t.Run("Update", func(t *testing.T) {
		out, err := run("basket", "update", "2", "4")

		assert.NoError(t, err)
		assert.Contains(t, out, "7 items, total $120.00")
	})

	t.Run("Remove", func(t *testing.T) {
		out, err := run("basket", "remove", "1")

		assert.NoError(t, err)
		assert.Equal(t, "2 | Rake | 4 x $15.00 | $60.00\n4 items, total $60.00\n", out)
	})

	t.Run("Invalid product id", func(t *testing.T) {
		_, err := run("basket", "remove", "spade")

		assert.Error(t, err)
		assert.Equal(t, 400, myerrors.GetHTTPStatus(err))
	})

	t.Run("Clear", func(t *testing.T) {
		out, err := run("basket", "clear")

		assert.NoError(t, err)
		assert.Equal(t, "Basket is empty\n", out)
	})
}

func TestCorruptLocalFiles(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// given
	api, _ := setup(t, ctrl)
	api.EXPECT().GetProduct(gomock.Any(), 1).Return(spade, nil)

	dir := t.TempDir()
	basketFile := filepath.Join(dir, "basket.json")
	assert.NoError(t, os.WriteFile(basketFile, []byte(`{"basket": {trunc`), 0o644))
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "orders.json"), []byte(`{oops`), 0o644))
	basketStorage = nil
	orderStorage = nil

	t.Run("Basket starts empty and is rewritten", func(t *testing.T) {
		out, err := run("basket", "add", "1", "--basket-file", basketFile)
		assert.NoError(t, err)
		assert.Equal(t, "1 | Spade | 1 x $20.00 | $20.00\n1 items, total $20.00\n", out)

		data, err := os.ReadFile(basketFile)
		assert.NoError(t, err)
		assert.NotContains(t, string(data), "trunc")

		kept, err := os.ReadFile(basketFile + ".corrupt")
		assert.NoError(t, err)
		assert.Equal(t, `{"basket": {trunc`, string(kept))
	})

	t.Run("Rewritten basket survives restart", func(t *testing.T) {
		basketStorage = nil

		out, err := run("basket", "show", "--basket-file", basketFile)

		assert.NoError(t, err)
		assert.Equal(t, "1 | Spade | 1 x $20.00 | $20.00\n1 items, total $20.00\n", out)
	})

	t.Run("Order history starts empty", func(t *testing.T) {
		out, err := run("orders", "--basket-file", basketFile)

		assert.NoError(t, err)
		assert.Empty(t, out)
	})
}

func TestOrderCommand(t *testing.T) {

	t.Run("Success empties basket", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		api, sender := setup(t, ctrl)
		api.EXPECT().GetProduct(gomock.Any(), 1).Return(spade, nil)
		sender.EXPECT().SendOrder(gomock.Any(), gomock.Any()).Return(nil)
		_, err := run("basket", "add", "1", "--quantity", "2")
		assert.NoError(t, err)

		// when
		out, err := run("order", "--name", "Marc", "--phone", "0612345678", "--email", "marc@home.nl")

		// then
		assert.NoError(t, err)
		assert.Contains(t, out, "2 items, total $40.00")

		out, err = run("basket", "show")
		assert.NoError(t, err)
		assert.Equal(t, "Basket is empty\n", out)

		out, err = run("orders")
		assert.NoError(t, err)
		assert.Contains(t, out, "2 items $40.00")
	})

	t.Run("Remote failure keeps basket", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		api, sender := setup(t, ctrl)
		api.EXPECT().GetProduct(gomock.Any(), 1).Return(spade, nil)
		sender.EXPECT().SendOrder(gomock.Any(), gomock.Any()).Return(myerrors.NewUnavailableError(errors.New("down")))
		_, err := run("basket", "add", "1", "--quantity", "2")
		assert.NoError(t, err)

		// when
		_, err = run("order", "--name", "Marc", "--phone", "0612345678", "--email", "marc@home.nl")

		// then
		assert.Error(t, err)
		out, err := run("basket", "show")
		assert.NoError(t, err)
		assert.Contains(t, out, "2 items, total $40.00")
	})

	t.Run("Missing contact details", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		api, _ := setup(t, ctrl)
		api.EXPECT().GetProduct(gomock.Any(), 1).Return(spade, nil)
		_, err := run("basket", "add", "1", "--quantity", "1")
		assert.NoError(t, err)

		// when
		_, err = run("order", "--name", "Marc")

		// then
		assert.Error(t, err)
		assert.Equal(t, 400, myerrors.GetHTTPStatus(err))
	})
}
