// List command for the basket CLI.
package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/basket/internal/cart"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the items in the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withCart(cmd.Context(), func(ctx context.Context) error {
				products, err := cart.Products(ctx)
				if err != nil {
					return sysError(err)
				}
				if len(products) == 0 && !a.flags.jsonMode {
					fmt.Fprintln(a.out, "cart is empty")
					return nil
				}
				return a.printItems(products)
			})
		},
	}
}
