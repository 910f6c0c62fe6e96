// Inc and dec commands for the basket CLI.
package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/basket/internal/cart"
)

func newIncCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inc <id>",
		Short: "Increase the quantity of an item by one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.adjust(cmd.Context(), args[0], cart.Increment)
		},
	}
}

func newDecCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dec <id>",
		Short: "Decrease the quantity of an item by one",
		Long: `Dec lowers the quantity of an item by one. The quantity never drops
below 1; dec on an item at 1 leaves it unchanged.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.adjust(cmd.Context(), args[0], cart.Decrement)
		},
	}
}

// adjust applies op to id and prints the item. Ids not in the cart are
// reported but are not an error.
func (a *app) adjust(ctx context.Context, id string, op func(context.Context, string) error) error {
	return a.withCart(ctx, func(ctx context.Context) error {
		if err := op(ctx, id); err != nil {
			return sysError(err)
		}
		return a.printItem(ctx, id)
	})
}
