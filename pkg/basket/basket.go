// Package basket is the public entry point to the Basket cart store.
//
// Example:
//
//	p := basket.NewProvider(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: dataDir,
//	})
//	ctx, err := p.Mount(ctx)
//	if err != nil {
//	    return err
//	}
//	defer p.Unmount(ctx)
//	err = cart.AddToCart(ctx, types.NewItem{ID: "sku-1", Title: "Mug", Price: 12.5})
package basket

import (
	"github.com/mesh-intelligence/basket/internal/cart"
	"github.com/mesh-intelligence/basket/pkg/types"
)

// Version is the release of the basket module and CLI.
const Version = "v0.1.0"

// NewProvider returns an unmounted cart provider for cfg.
func NewProvider(cfg types.Config) *cart.Provider {
	return &cart.Provider{Config: cfg}
}
