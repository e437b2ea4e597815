package renderer

// HoldingsMarkdown renders the holdings report as a markdown document.
func HoldingsMarkdown(h *Holdings) string {
	r := newRenderer()
	r.Printf("# Holdings\n\n")

	if len(h.Positions) == 0 {
		r.Printf("No open positions.\n\n")
	} else {
		r.Printf("| Symbol | Quantity | Avg Cost | Cost Basis |\n")
		r.Printf("|:---|---:|---:|---:|\n")
		for _, p := range h.Positions {
			r.Printf("| %s | %d | %s | %s |\n", p.Symbol, p.Quantity, p.AverageCost, p.CostBasis)
		}
		r.Printf("\n")
	}

	r.Printf("- Total Assets: %s\n", h.TotalAssets)
	r.Printf("- Realized PnL: %s\n", h.RealizedPnL.SignedString())
	return r.String()
}
