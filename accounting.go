package folio

import (
	"fmt"
	"log"
	"maps"
	"sync"
)

// AccountingSystem owns the one live Ledger of the process and its store. It
// is the only component allowed to mutate the ledger, and it exposes exactly
// two capability sets: mutators (ProcessTransaction, Reset) and readers
// (Snapshot, PnL). Mutators are serialized against each other and against
// persistence; readers take snapshots under a shared lock and never block on
// the price source.
type AccountingSystem struct {
	mu     sync.RWMutex
	ledger *Ledger
	store  *LedgerStore
}

// NewAccountingSystem restores the ledger from the store and returns the
// system plus the load status, so callers can tell a fresh ledger from a
// recovered one.
func NewAccountingSystem(store *LedgerStore) (*AccountingSystem, LoadStatus) {
	ledger, status := store.Load()
	if status == StatusRecovered {
		log.Printf("accounting: ledger state was recovered, previous data is lost")
	}
	return &AccountingSystem{ledger: ledger, store: store}, status
}

// ProcessTransaction validates tx, applies it, persists the resulting state
// and returns a snapshot of it. The transaction is applied to a clone that is
// swapped in only after a successful save, so neither the in-memory nor the
// persisted state can end up partially mutated.
func (as *AccountingSystem) ProcessTransaction(tx Transaction) (*LedgerSnapshot, error) {
	as.mu.Lock()
	defer as.mu.Unlock()

	next := as.ledger.Clone()
	if err := next.Apply(tx); err != nil {
		return nil, err
	}
	if err := as.store.Save(next); err != nil {
		return nil, fmt.Errorf("could not persist ledger: %w", err)
	}
	as.ledger = next
	return snapshotOf(next), nil
}

// Reset clears the ledger and persists the empty state.
func (as *AccountingSystem) Reset() (*LedgerSnapshot, error) {
	as.mu.Lock()
	defer as.mu.Unlock()

	next := NewLedger()
	if err := as.store.Save(next); err != nil {
		return nil, fmt.Errorf("could not persist ledger: %w", err)
	}
	as.ledger = next
	return snapshotOf(next), nil
}

// Snapshot returns a copy of the current ledger state.
func (as *AccountingSystem) Snapshot() *LedgerSnapshot {
	as.mu.RLock()
	defer as.mu.RUnlock()
	return snapshotOf(as.ledger)
}

// Symbols returns the currently held symbols. Callers use it to know which
// prices to fetch before a PnL query, outside any ledger lock.
func (as *AccountingSystem) Symbols() []string {
	as.mu.RLock()
	defer as.mu.RUnlock()
	return as.ledger.Symbols()
}

// PnL evaluates the ledger against the supplied current prices. Fetching
// those prices is the caller's business (it is external, high-latency I/O and
// must not hold the ledger lock).
func (as *AccountingSystem) PnL(currentPrices map[string]Money) *PnLReport {
	as.mu.RLock()
	ledger := as.ledger.Clone()
	as.mu.RUnlock()

	report := &PnLReport{
		PnLPercent:  ledger.PnLPercent(currentPrices),
		RealizedPnL: ledger.RealizedPnL(),
		TotalAssets: ledger.TotalAssets(),
		PricesUsed:  maps.Clone(currentPrices),
	}
	for symbol, h := range ledger.Holdings() {
		price := currentPrices[symbol]
		report.Holdings = append(report.Holdings, HoldingLine{
			Symbol:      symbol,
			Quantity:    h.Quantity,
			AverageCost: h.AverageCost,
			Price:       price,
			MarketValue: price.MulQty(h.Quantity),
			PnL:         ledger.IndividualPnL(symbol, price),
		})
	}
	return report
}
