package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"github.com/ferd/folio/renderer"
)

type pnlCmd struct{}

func (*pnlCmd) Name() string     { return "pnl" }
func (*pnlCmd) Synopsis() string { return "evaluate positions against live market prices" }
func (*pnlCmd) Usage() string {
	return `pnl

  Fetches the latest price for every held symbol and reports the unrealized
  profit per position, the portfolio return percentage and the realized
  figure. Requires provider credentials, see 'fol topic credentials'.
`
}

func (c *pnlCmd) SetFlags(f *flag.FlagSet) {}

func (c *pnlCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := appConfig()
	if err != nil {
		return fail(err)
	}
	prices, err := openPriceSource(cfg)
	if err != nil {
		return fail(err)
	}

	accounts := openAccounts(cfg)
	current, err := prices.LatestPrices(ctx, accounts.Symbols())
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.PnLMarkdown(accounts.PnL(current)))
	return subcommands.ExitSuccess
}
