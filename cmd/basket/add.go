// Add command for the basket CLI.
package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/basket/internal/cart"
	"github.com/mesh-intelligence/basket/pkg/types"
)

// generatedID is the id argument that asks add to generate an ID.
const generatedID = "-"

func newAddCmd(a *app) *cobra.Command {
	var item types.NewItem

	cmd := &cobra.Command{
		Use:   "add <id>",
		Short: "Add an item to the cart",
		Long: `Add puts an item in the cart with quantity 1. Adding an item that is
already in the cart increments its quantity instead.

Pass "-" as the id to generate one.

Example:
  basket add sku-42 --title "Coffee mug" --price 12.50 --image-url https://img/mug.png
  basket add - --title "Gift card" --price 25`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item.ID = args[0]
			if item.ID == generatedID {
				item.ID = newItemID()
			}
			if err := item.Validate(); err != nil {
				return userError(fmt.Errorf("add %q: %w", args[0], err))
			}

			return a.withCart(cmd.Context(), func(ctx context.Context) error {
				if err := cart.AddToCart(ctx, item); err != nil {
					return sysError(fmt.Errorf("add: %w", err))
				}
				return a.printItem(ctx, item.ID)
			})
		},
	}

	cmd.Flags().StringVar(&item.Title, "title", "", "display title")
	cmd.Flags().StringVar(&item.ImageURL, "image-url", "", "image reference")
	cmd.Flags().Float64Var(&item.Price, "price", 0, "unit price")
	return cmd
}

// newItemID returns a time-ordered UUID, falling back to v4.
func newItemID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
