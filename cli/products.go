package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/MarcGrol/storefront/lib/mytime"
	"github.com/MarcGrol/storefront/services/catalog"
)

func init() {
	var categoryID int
	var salesOnly bool
	var output string
	filters := catalog.DefaultFilters()

	productsCmd := &cobra.Command{
		Use:   "products",
		Short: "List products, filtered and sorted",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cmd.Context()
			remoteDependencies()

			service := catalog.NewService(catalogAPI, cfg.CatalogCacheTTL, mytime.RealNower{}, logger)

			var products []catalog.Product
			if cmd.Flags().Changed("category") {
				view, err := service.CategoryProducts(c, categoryID, filters, salesOnly)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n", view.Category.Title)
				products = view.Products
			} else {
				var err error
				products, err = service.Products(c, filters, salesOnly)
				if err != nil {
					return err
				}
			}

			if output == "json" {
				return writeJSON(cmd.OutOrStdout(), products)
			}
			for _, p := range products {
				fmt.Fprintln(cmd.OutOrStdout(), productLine(p))
			}
			return nil
		},
	}
	productsCmd.Flags().IntVar(&categoryID, "category", 0, "only products of this category")
	productsCmd.Flags().StringVar(&filters.PriceFrom, "price-from", "", "minimum current price")
	productsCmd.Flags().StringVar(&filters.PriceTo, "price-to", "", "maximum current price")
	productsCmd.Flags().BoolVar(&filters.DiscountedOnly, "discounted", false, "only discounted products")
	productsCmd.Flags().BoolVar(&salesOnly, "sales", false, "sales view: discounted products only")
	productsCmd.Flags().StringVar((*string)(&filters.SortBy), "sort", string(catalog.SortDefault), "default|newest|price-high-low|price-low-high")
	productsCmd.Flags().StringVar(&output, "output", "", "output format: text|json")
	rootCmd.AddCommand(productsCmd)
}

func productLine(p catalog.Product) string {
	if p.HasDiscount() {
		return fmt.Sprintf("%d | %s | %s (was %s, -%d%%)", p.ID, p.Title, p.CurrentPriceLabel(), p.PriceLabel(), p.DiscountPercentage())
	}
	return fmt.Sprintf("%d | %s | %s", p.ID, p.Title, p.CurrentPriceLabel())
}

func writeJSON(w io.Writer, value any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}
