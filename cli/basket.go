package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/MarcGrol/storefront/lib/myerrors"
	"github.com/MarcGrol/storefront/lib/mytime"
	"github.com/MarcGrol/storefront/services/basket"
)

func init() {
	basketCmd := &cobra.Command{
		Use:   "basket",
		Short: "Show and change the local basket",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the basket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := localBasket(cmd.Context())
			if err != nil {
				return err
			}
			printBasket(cmd.OutOrStdout(), store.Basket())
			return nil
		},
	}
	basketCmd.AddCommand(showCmd)

	var quantity int
	addCmd := &cobra.Command{
		Use:   "add <productID>",
		Short: "Add a product to the basket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cmd.Context()
			productID, err := parseProductID(args[0])
			if err != nil {
				return err
			}
			store, err := localBasket(c)
			if err != nil {
				return err
			}

			product, err := catalogAPI.GetProduct(c, productID)
			if err != nil {
				return err
			}

			printBasket(cmd.OutOrStdout(), store.Add(c, product, quantity))
			return nil
		},
	}
	addCmd.Flags().IntVar(&quantity, "quantity", 1, "number of items to add")
	basketCmd.AddCommand(addCmd)

	removeCmd := &cobra.Command{
		Use:   "remove <productID>",
		Short: "Remove a product from the basket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cmd.Context()
			productID, err := parseProductID(args[0])
			if err != nil {
				return err
			}
			store, err := localBasket(c)
			if err != nil {
				return err
			}

			printBasket(cmd.OutOrStdout(), store.Remove(c, productID))
			return nil
		},
	}
	basketCmd.AddCommand(removeCmd)

	updateCmd := &cobra.Command{
		Use:   "update <productID> <quantity>",
		Short: "Set the quantity of a product; zero removes it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cmd.Context()
			productID, err := parseProductID(args[0])
			if err != nil {
				return err
			}
			newQuantity, err := strconv.Atoi(args[1])
			if err != nil {
				return myerrors.NewInvalidInputErrorf("invalid quantity %q", args[1])
			}
			store, err := localBasket(c)
			if err != nil {
				return err
			}

			printBasket(cmd.OutOrStdout(), store.UpdateQuantity(c, productID, newQuantity))
			return nil
		},
	}
	basketCmd.AddCommand(updateCmd)

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Empty the basket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cmd.Context()
			store, err := localBasket(c)
			if err != nil {
				return err
			}

			printBasket(cmd.OutOrStdout(), store.Clear(c))
			return nil
		},
	}
	basketCmd.AddCommand(clearCmd)

	rootCmd.AddCommand(basketCmd)
}

func localBasket(c context.Context) (*basket.Store, error) {
	remoteDependencies()
	openBasketStorage(c)
	return basket.NewStore(c, basket.LocalStorageKey, basketStorage, mytime.RealNower{}, logger), nil
}

func parseProductID(arg string) (int, error) {
	productID, err := strconv.Atoi(arg)
	if err != nil {
		return 0, myerrors.NewInvalidInputErrorf("invalid product id %q", arg)
	}
	return productID, nil
}

func printBasket(w io.Writer, b basket.Basket) {
	if b.IsEmpty() {
		fmt.Fprintln(w, "Basket is empty")
		return
	}
	for _, item := range b.Items() {
		fmt.Fprintf(w, "%d | %s | %d x %s | %s\n", item.ID, item.Title, item.Quantity, item.CurrentPriceLabel(), item.SubtotalLabel())
	}
	fmt.Fprintf(w, "%d items, total %s\n", b.Count(), b.TotalLabel())
}
