// Init command for the basket CLI.
package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/basket/internal/cart"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the configuration and open the storage backend",
		Long: `Init writes a default config.yaml if none exists and opens the configured
backend once, creating the data directory and database as needed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.storeConfig()
			if err != nil {
				return err
			}
			return a.withCart(cmd.Context(), func(ctx context.Context) error {
				products, err := cart.Products(ctx)
				if err != nil {
					return sysError(err)
				}
				fmt.Fprintf(a.out, "basket initialized (backend %s, %s, %d items)\n",
					cfg.Backend, cfg.DataDir, len(products))
				return nil
			})
		},
	}
}
