package folio

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// The persisted record is a single JSON document:
//
//	{"totalAssets":..., "realizedPnL":..., "holdings":{"SYM":{"quantity":..,"averageCost":..}, ...}}
//
// Keys are written in a canonical order so that the same ledger state always
// persists to the same bytes.

// EncodeLedger writes the full ledger state to w.
func EncodeLedger(w io.Writer, ledger *Ledger) error {
	var holdings jsonObjectWriter
	for symbol, h := range ledger.Holdings() {
		holdings.Append(symbol, h)
	}

	var doc jsonObjectWriter
	doc.Append("totalAssets", ledger.totalAssets)
	doc.Append("realizedPnL", ledger.realizedPnL)
	doc.Append("holdings", &holdings)

	data, err := doc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal ledger: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write ledger: %w", err)
	}
	return nil
}

// DecodeLedger reads a persisted ledger record from r. Holdings with a
// non-positive quantity are rejected: the record does not deserialize cleanly
// and the caller falls back to an empty ledger.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	var temp struct {
		TotalAssets Money              `json:"totalAssets"`
		RealizedPnL Money              `json:"realizedPnL"`
		Holdings    map[string]Holding `json:"holdings"`
	}
	if err := json.NewDecoder(r).Decode(&temp); err != nil {
		return nil, fmt.Errorf("could not decode ledger record: %w", err)
	}

	ledger := NewLedger()
	ledger.totalAssets = temp.TotalAssets
	ledger.realizedPnL = temp.RealizedPnL
	for symbol, h := range temp.Holdings {
		if h.Quantity <= 0 {
			return nil, fmt.Errorf("ledger record holds %q with non-positive quantity %d", symbol, h.Quantity)
		}
		ledger.holdings[NormalizeSymbol(symbol)] = h
	}
	return ledger, nil
}
