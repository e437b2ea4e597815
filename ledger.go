package folio

import (
	"errors"
	"fmt"
	"iter"
	"maps"
	"slices"
)

// ErrNoSuchHolding is returned when a sell names a symbol the ledger does not
// hold: you cannot sell an investment you don't own.
var ErrNoSuchHolding = errors.New("no such holding")

// Ledger is the aggregate accounting state of one portfolio.
//
// TotalAssets tracks the cumulative cost basis of the remaining positions plus
// the net cash movement of every completed sell; it is not a literal cash
// balance (see Apply). RealizedPnL accumulates the profit locked in by sells.
// Every symbol present in holdings has a positive quantity.
//
// Ledger is a plain value with no locking of its own; the AccountingSystem
// serializes access to the one live instance of the process.
type Ledger struct {
	totalAssets Money
	realizedPnL Money
	holdings    map[string]Holding
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{holdings: make(map[string]Holding)}
}

func (l *Ledger) TotalAssets() Money { return l.totalAssets }
func (l *Ledger) RealizedPnL() Money { return l.realizedPnL }

// Holding returns the holding for a symbol, normalizing it first.
func (l *Ledger) Holding(symbol string) (Holding, bool) {
	h, ok := l.holdings[NormalizeSymbol(symbol)]
	return h, ok
}

// Position returns the quantity currently held of a symbol, zero if unheld.
func (l *Ledger) Position(symbol string) int64 {
	return l.holdings[NormalizeSymbol(symbol)].Quantity
}

// Symbols returns the held symbols in sorted order.
func (l *Ledger) Symbols() []string {
	symbols := slices.Collect(maps.Keys(l.holdings))
	slices.Sort(symbols)
	return symbols
}

// Holdings returns an iterator over the held symbols and their holdings in
// sorted symbol order.
func (l *Ledger) Holdings() iter.Seq2[string, Holding] {
	return func(yield func(string, Holding) bool) {
		for _, symbol := range l.Symbols() {
			if !yield(symbol, l.holdings[symbol]) {
				return
			}
		}
	}
}

// Apply validates tx and applies it to the ledger, keeping the aggregate
// totals consistent. On any error the ledger is left exactly as it was: all
// checks that can fail run before the first field is written.
//
// A buy adds the transaction amount to TotalAssets. A sell removes the sold
// position from TotalAssets at its pre-sell average cost, books the difference
// between proceeds and that cost into RealizedPnL, and deletes the holding if
// its quantity reached zero.
func (l *Ledger) Apply(tx Transaction) error {
	tx, err := tx.Validate()
	if err != nil {
		return err
	}

	holding, exists := l.holdings[tx.Symbol]
	if tx.Side == Sell && !exists {
		return fmt.Errorf("cannot sell %s: %w", tx.Symbol, ErrNoSuchHolding)
	}

	// averageCost before the transaction; sells never alter it, so for the
	// realized-PnL arithmetic below this is the pre-sell cost basis.
	preCost := holding.AverageCost

	if err := holding.Apply(tx); err != nil {
		return err
	}

	switch tx.Side {
	case Buy:
		l.totalAssets = l.totalAssets.Add(tx.Amount())
	case Sell:
		proceeds := tx.Price.MulQty(tx.Quantity)
		basis := preCost.MulQty(tx.Quantity)
		l.realizedPnL = l.realizedPnL.Add(proceeds.Sub(basis))
		l.totalAssets = l.totalAssets.Add(basis).Sub(proceeds)
	}

	if holding.Quantity == 0 {
		delete(l.holdings, tx.Symbol)
	} else {
		l.holdings[tx.Symbol] = holding
	}
	return nil
}

// IndividualPnL computes the unrealized profit-and-loss of one symbol at the
// given current price: (price − averageCost) × quantity. It returns zero for
// a symbol that is not held.
func (l *Ledger) IndividualPnL(symbol string, currentPrice Money) Money {
	h, ok := l.holdings[NormalizeSymbol(symbol)]
	if !ok {
		return Money{}
	}
	return currentPrice.Sub(h.AverageCost).MulQty(h.Quantity)
}

// UnrealizedPnL sums IndividualPnL over every held symbol using the supplied
// prices. A symbol missing from prices contributes at a price of zero, which
// understates the result; callers wanting a meaningful figure must supply a
// price for every held symbol.
func (l *Ledger) UnrealizedPnL(currentPrices map[string]Money) Money {
	var total Money
	for symbol := range l.holdings {
		total = total.Add(l.IndividualPnL(symbol, currentPrices[symbol]))
	}
	return total
}

// PnLPercent returns the total unrealized profit-and-loss as a percentage of
// TotalAssets. A ledger with no basis to compute against (TotalAssets zero)
// yields 0 rather than an error or a division by zero.
func (l *Ledger) PnLPercent(currentPrices map[string]Money) Percent {
	if l.totalAssets.IsZero() {
		return 0
	}
	ratio := l.UnrealizedPnL(currentPrices).Div(l.totalAssets)
	return Percent(ratio.InexactFloat64() * 100)
}

// Reset clears the ledger back to its empty state.
func (l *Ledger) Reset() {
	l.totalAssets = Money{}
	l.realizedPnL = Money{}
	l.holdings = make(map[string]Holding)
}

// Clone returns a deep copy of the ledger.
func (l *Ledger) Clone() *Ledger {
	return &Ledger{
		totalAssets: l.totalAssets,
		realizedPnL: l.realizedPnL,
		holdings:    maps.Clone(l.holdings),
	}
}

// Equal reports whether two ledgers carry the same totals and holdings.
func (l *Ledger) Equal(o *Ledger) bool {
	if !l.totalAssets.Equal(o.totalAssets) || !l.realizedPnL.Equal(o.realizedPnL) {
		return false
	}
	if len(l.holdings) != len(o.holdings) {
		return false
	}
	for symbol, h := range l.holdings {
		oh, ok := o.holdings[symbol]
		if !ok || !h.Equal(oh) {
			return false
		}
	}
	return true
}
