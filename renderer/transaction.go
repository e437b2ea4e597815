package renderer

import (
	"fmt"

	"github.com/ferd/folio"
)

// Transaction renders a transaction confirmation to a string.
func Transaction(tx folio.Transaction) string {
	switch tx.Side {
	case folio.Buy:
		return fmt.Sprintf("Bought %d %s at %s", tx.Quantity, tx.Symbol, tx.Price)
	case folio.Sell:
		return fmt.Sprintf("Sold %d %s at %s", tx.Quantity, tx.Symbol, tx.Price)
	default:
		return tx.String()
	}
}
