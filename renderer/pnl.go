package renderer

import (
	"github.com/ferd/folio"
)

// PnLMarkdown renders a profit-and-loss report as a markdown document. Rows
// come already sorted from the accounting system.
func PnLMarkdown(report *folio.PnLReport) string {
	r := newRenderer()
	r.Printf("# Profit & Loss\n\n")

	if len(report.Holdings) == 0 {
		r.Printf("No open positions.\n\n")
	} else {
		r.Printf("| Symbol | Quantity | Avg Cost | Price | Market Value | PnL |\n")
		r.Printf("|:---|---:|---:|---:|---:|---:|\n")
		var unrealized folio.Money
		for _, line := range report.Holdings {
			r.Printf("| %s | %d | %s | %s | %s | %s |\n",
				line.Symbol, line.Quantity, line.AverageCost, line.Price,
				line.MarketValue, line.PnL.SignedString())
			unrealized = unrealized.Add(line.PnL)
		}
		r.Printf("\n")
		r.Printf("- Unrealized PnL: %s\n", unrealized.SignedString())
	}

	r.Printf("- Realized PnL: %s\n", report.RealizedPnL.SignedString())
	r.Printf("- Total Assets: %s\n", report.TotalAssets)
	r.Printf("- Return: %s\n", report.PnLPercent.SignedString())
	return r.String()
}
