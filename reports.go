package folio

import (
	"maps"
	"slices"
)

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := slices.Collect(maps.Keys(m))
	slices.Sort(keys)
	return keys
}

// Report types are plain data handed to the renderer package and to the HTTP
// API; all computation happens in the ledger.

// LedgerSnapshot is a point-in-time copy of the ledger state, returned by
// every operation that mutates or reads the ledger.
type LedgerSnapshot struct {
	TotalAssets Money              `json:"totalAssets"`
	RealizedPnL Money              `json:"realizedPnL"`
	Holdings    map[string]Holding `json:"holdings"`
}

func snapshotOf(l *Ledger) *LedgerSnapshot {
	s := &LedgerSnapshot{
		TotalAssets: l.TotalAssets(),
		RealizedPnL: l.RealizedPnL(),
		Holdings:    make(map[string]Holding, len(l.Symbols())),
	}
	for symbol, h := range l.Holdings() {
		s.Holdings[symbol] = h
	}
	return s
}

// Symbols returns the held symbols in sorted order.
func (s *LedgerSnapshot) Symbols() []string { return sortedKeys(s.Holdings) }

// MarshalJSON implements the json.Marshaler interface for LedgerSnapshot with
// holdings in sorted symbol order.
func (s LedgerSnapshot) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("totalAssets", s.TotalAssets)
	w.Append("realizedPnL", s.RealizedPnL)

	var holdings jsonObjectWriter
	for _, symbol := range sortedKeys(s.Holdings) {
		holdings.Append(symbol, s.Holdings[symbol])
	}
	holdingsBytes, err := holdings.MarshalJSON()
	if err != nil {
		return nil, err
	}
	w.WriteString(`"holdings":`)
	w.Write(holdingsBytes)
	w.WriteString(",")
	return w.MarshalJSON()
}

// HoldingLine is one row of a PnL report: a holding evaluated at a supplied
// current price.
type HoldingLine struct {
	Symbol      string `json:"symbol"`
	Quantity    int64  `json:"quantity"`
	AverageCost Money  `json:"averageCost"`
	Price       Money  `json:"price"`
	MarketValue Money  `json:"marketValue"`
	PnL         Money  `json:"pnl"`
}

// PnLReport is the result of a PnL query: the portfolio-level unrealized
// percentage, the cumulative realized figure, and the per-holding breakdown
// at the prices that were actually used.
type PnLReport struct {
	PnLPercent  Percent          `json:"pnlPercent"`
	RealizedPnL Money            `json:"realizedPnL"`
	TotalAssets Money            `json:"totalAssets"`
	Holdings    []HoldingLine    `json:"holdings"`
	PricesUsed  map[string]Money `json:"pricesUsed"`
}
