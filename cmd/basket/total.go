// Total command for the basket CLI.
package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/basket/internal/cart"
)

// totalJSON is the --json output of the total command.
type totalJSON struct {
	Lines int    `json:"lines"`
	Units int    `json:"units"`
	Total string `json:"total"`
}

func newTotalCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "total",
		Short: "Print the number of items and the cart total",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withCart(cmd.Context(), func(ctx context.Context) error {
				s, err := cart.FromContext(ctx)
				if err != nil {
					return sysError(err)
				}
				t := totalJSON{
					Lines: len(s.Products()),
					Units: s.Count(),
					Total: s.Total().StringFixed(2),
				}
				if a.flags.jsonMode {
					return a.printJSON(t)
				}
				fmt.Fprintf(a.out, "%d items (%d units), total %s\n", t.Lines, t.Units, t.Total)
				return nil
			})
		},
	}
}
