package renderer

import (
	"github.com/ferd/folio"
)

// Holdings is a struct to represent the holdings report data in json.
// Amounts keep the exact Money type so they carry their own formatting
// (String, SignedString).
type Holdings struct {
	// TotalAssets is the cost basis of everything currently held.
	TotalAssets folio.Money `json:"totalAssets"`
	// RealizedPnL is the cumulative realized profit and loss.
	RealizedPnL folio.Money `json:"realizedPnL"`
	// Positions lists the open positions in symbol order.
	Positions []HoldingPosition `json:"positions"`
}

// HoldingPosition is a single open position.
type HoldingPosition struct {
	Symbol      string      `json:"symbol"`
	Quantity    int64       `json:"quantity"`
	AverageCost folio.Money `json:"averageCost"`
	CostBasis   folio.Money `json:"costBasis"`
}

// NewHoldings creates a Holdings report from a ledger snapshot.
func NewHoldings(s *folio.LedgerSnapshot) *Holdings {
	h := &Holdings{
		TotalAssets: s.TotalAssets,
		RealizedPnL: s.RealizedPnL,
		Positions:   make([]HoldingPosition, 0, len(s.Holdings)),
	}
	for _, symbol := range s.Symbols() {
		pos := s.Holdings[symbol]
		h.Positions = append(h.Positions, HoldingPosition{
			Symbol:      symbol,
			Quantity:    pos.Quantity,
			AverageCost: pos.AverageCost,
			CostBasis:   pos.AverageCost.MulQty(pos.Quantity),
		})
	}
	return h
}
