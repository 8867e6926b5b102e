package catalog

import (
	"github.com/gmkumar2005/disintegrate/internal/demo/bank"
	"github.com/gmkumar2005/disintegrate/internal/demo/cart"
)

// Builtin returns the demo domains shipped with the CLI.
func Builtin() *Catalog {
	return New(
		Bind("bank", bank.Codec(), bank.Registry(), bank.Summary()),
		Bind("cart", cart.Codec(), cart.Registry(), cart.Summary()),
	)
}
