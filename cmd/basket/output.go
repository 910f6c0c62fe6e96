// Output helpers for basket CLI commands.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/mesh-intelligence/basket/internal/cart"
	"github.com/mesh-intelligence/basket/pkg/types"
)

// printItem prints the cart line for id, or a note when id is not in the cart.
func (a *app) printItem(ctx context.Context, id string) error {
	products, err := cart.Products(ctx)
	if err != nil {
		return sysError(err)
	}
	for _, p := range products {
		if p.ID == id {
			return a.printItems([]types.CartItem{p})
		}
	}
	fmt.Fprintf(a.errOut, "item %q is not in the cart\n", id)
	return nil
}

// printItems writes items as JSON in --json mode, otherwise as a table.
func (a *app) printItems(items []types.CartItem) error {
	if a.flags.jsonMode {
		return a.printJSON(items)
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tPRICE\tQTY")
	for _, p := range items {
		fmt.Fprintf(tw, "%s\t%s\t%.2f\t%d\n", p.ID, p.Title, p.Price, p.Quantity)
	}
	return tw.Flush()
}

func (a *app) printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return sysError(fmt.Errorf("marshal JSON: %w", err))
	}
	fmt.Fprintln(a.out, string(out))
	return nil
}
