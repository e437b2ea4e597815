package folio

import (
	"errors"
	"fmt"
)

// ErrInsufficientQuantity is returned when a sell exceeds the held quantity.
var ErrInsufficientQuantity = errors.New("insufficient quantity")

// Holding is the position in a single symbol: the number of shares currently
// held and their weighted average cost per share.
//
// AverageCost is meaningful only while Quantity > 0. The ledger removes a
// holding the moment its quantity reaches zero, so a holding stored in a
// ledger always has a positive quantity.
type Holding struct {
	Quantity    int64 `json:"quantity"`
	AverageCost Money `json:"averageCost"`
}

// Apply updates the holding under a single transaction of its symbol.
//
// A buy folds the transaction into the running weighted average:
//
//	newAvg = (qty·avg + txQty·txPrice) / (qty + txQty)
//
// recomputed from scratch on every buy rather than tracked as lots. A sell
// only decreases the quantity; the cost basis of the remaining shares never
// changes. Selling more than held fails with ErrInsufficientQuantity and
// leaves the holding untouched.
func (h *Holding) Apply(tx Transaction) error {
	switch tx.Side {
	case Buy:
		newQuantity := h.Quantity + tx.Quantity
		cost := h.AverageCost.MulQty(h.Quantity).Add(tx.Price.MulQty(tx.Quantity))
		h.AverageCost = cost.DivQty(newQuantity)
		h.Quantity = newQuantity
	case Sell:
		if tx.Quantity > h.Quantity {
			return fmt.Errorf("cannot sell %d of %s, holding only %d: %w",
				tx.Quantity, tx.Symbol, h.Quantity, ErrInsufficientQuantity)
		}
		h.Quantity -= tx.Quantity
	default:
		return fmt.Errorf("unsupported transaction side: %q", tx.Side)
	}
	return nil
}

func (h Holding) Equal(o Holding) bool {
	return h.Quantity == o.Quantity && h.AverageCost.Equal(o.AverageCost)
}

// MarshalJSON implements the json.Marshaler interface for Holding, with a
// stable key order.
func (h Holding) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("quantity", h.Quantity)
	w.Append("averageCost", h.AverageCost)
	return w.MarshalJSON()
}
